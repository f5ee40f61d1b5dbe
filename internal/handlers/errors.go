package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"todoTracker/internal/logger"
	"todoTracker/internal/middleware"
	"todoTracker/internal/service"

	"go.uber.org/zap"
)

// Problem тело ответа с ошибкой
type Problem struct {
	StatusCode   int    `json:"statusCode"`
	Title        string `json:"title"`
	ErrorMessage string `json:"errorMessage"`
}

type errorHandler struct {
	kind   service.Kind
	status int
	title  string
}

// ErrorTranslator единственное место, где доменные ошибки превращаются в HTTP-ответы.
// Обработчики проверяются по порядку, срабатывает первый подходящий.
type ErrorTranslator struct {
	chain    []errorHandler
	fallback errorHandler
}

func NewErrorTranslator() *ErrorTranslator {
	return &ErrorTranslator{
		chain: []errorHandler{
			{service.KindNotFound, http.StatusNotFound, "Resource Not Found"},
			{service.KindBusinessRuleViolation, http.StatusUnprocessableEntity, "Business Rule Violation Error"},
			{service.KindMalformedDate, http.StatusBadRequest, "Invalid Date Format"},
			{service.KindNullArgument, http.StatusBadRequest, "Null Argument Error"},
			{service.KindInvalidArgument, http.StatusBadRequest, "Invalid Argument Error"},
			{service.KindNullReference, http.StatusBadRequest, "Null Reference Error"},
			{service.KindConcurrencyConflict, http.StatusConflict, "Database Concurrency Error"},
			{service.KindWriteFailure, http.StatusInternalServerError, "Database Update Error"},
			{service.KindUnimplemented, http.StatusNotImplemented, "Not Implemented"},
		},
		fallback: errorHandler{service.KindUnclassified, http.StatusInternalServerError, "Internal Server Error"},
	}
}

// Translate подбирает ответ для ошибки. Для 5xx клиент получает только
// общее сообщение, подробности остаются в логе.
func (t *ErrorTranslator) Translate(err error, requestID string) Problem {
	h := t.fallback
	var matched *service.Error
	for _, candidate := range t.chain {
		if e := findKind(err, candidate.kind); e != nil {
			h, matched = candidate, e
			break
		}
	}

	problem := Problem{StatusCode: h.status, Title: h.title}
	switch {
	case h.status >= http.StatusInternalServerError:
		problem.ErrorMessage = internalMessage(requestID)
	case matched != nil:
		problem.ErrorMessage = matched.Message
	default:
		problem.ErrorMessage = http.StatusText(h.status)
	}
	return problem
}

// Write логирует ошибку и пишет ответ
func (t *ErrorTranslator) Write(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	problem := t.Translate(err, requestID)

	fields := []zap.Field{
		logger.RequestID(requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("http_status", problem.StatusCode),
		zap.String("kind", service.KindOf(err).String()),
	}
	logger.Log(logger.StatusLevel(problem.StatusCode), "HTTP: Ошибка запроса", append(fields, zap.Error(err))...)

	writeProblem(w, problem)
}

func findKind(err error, kind service.Kind) *service.Error {
	for err != nil {
		if e, ok := err.(*service.Error); ok && e.Kind == kind {
			return e
		}
		err = errors.Unwrap(err)
	}
	return nil
}

func internalMessage(requestID string) string {
	if requestID == "" {
		return "An unexpected error occurred while processing the request."
	}
	return fmt.Sprintf("An unexpected error occurred while processing the request. Request id: %s.", requestID)
}
