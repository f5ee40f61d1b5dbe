package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"todoTracker/internal/handlers/dto"
	"todoTracker/internal/logger"
	"todoTracker/internal/models/task"
	"todoTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// parseID разбирает {id} из пути и проверяет диапазон до любых других проверок запроса
func parseID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	if raw == "" {
		return 0, service.NewNullArgument("Id must be provided.")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, service.NewInvalidArgument("Id %s is out of range. Valid ids are 1..%d.", raw, task.MaxID)
		}
		return 0, service.NewInvalidArgument("Id %q is not a valid integer.", raw)
	}
	if err := service.CheckID(id); err != nil {
		return 0, err
	}
	return id, nil
}

func decodeTask(w http.ResponseWriter, r *http.Request) (*task.Task, error) {
	var request *dto.TaskRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		var dateErr *task.DateError
		switch {
		case errors.Is(err, io.EOF):
			return nil, service.NewNullArgument("Request body must not be empty.")
		case errors.As(err, &dateErr):
			return nil, service.NewMalformedDate(err, "Date %s is not a valid date. Use the yyyy-MM-dd format.", dateErr.Value)
		default:
			return nil, service.NewInvalidArgument("Request body is not a valid todo task.")
		}
	}

	if request == nil {
		return nil, service.NewNullArgument("Request body must not be null.")
	}
	return request.ToTask(), nil
}
