package handlers

import (
	"fmt"
	"net/http"
	"time"

	"todoTracker/internal/handlers/dto"
	"todoTracker/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const serviceName = "todo-tracker"

type TaskHandler struct {
	TaskService Service
	errors      *ErrorTranslator
}

func NewTaskHandler(taskService Service) *TaskHandler {
	return &TaskHandler{
		TaskService: taskService,
		errors:      NewErrorTranslator(),
	}
}

// Routes вешает обработчики задач и проверку здоровья на роутер
func (s *TaskHandler) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.ListTasks)
		r.Post("/", s.PostTask)
		r.Get("/{id}", s.GetTaskByID)
		r.Put("/{id}", s.UpdateTaskByID)
		r.Patch("/{id}", s.PatchTaskByID)
		r.Delete("/{id}", s.DeleteTaskByID)
	})
}

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	status, code := "ok", http.StatusOK
	if err := s.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Сервис нездоров", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	responseWithPayload(w, code,
		toPayload("service", serviceName),
		toPayload("status", status),
		toPayload("cache", s.TaskService.CacheStats()),
		toPayload("time", time.Now().UTC().Format(time.RFC3339)),
	)
}

func (s *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	tasks, err := s.TaskService.List(r.Context())
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	if len(tasks) == 0 {
		logger.Info("HTTP_OUT: Задач нет", zap.Int("http_status", http.StatusNoContent))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (s *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := parseID(r)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	found, err := s.TaskService.GetByID(r.Context(), id)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		logger.TaskID(found.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(found))
}

func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !s.requireJSON(w, r) {
		return
	}

	input, err := decodeTask(w, r)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	created, err := s.TaskService.Create(r.Context(), input)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		logger.TaskID(created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	w.Header().Set("Location", fmt.Sprintf("/tasks/%d", created.ID))
	responseWithJSON(w, http.StatusCreated, dto.FromTask(created))
}

func (s *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := parseID(r)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	if !s.requireJSON(w, r) {
		return
	}

	input, err := decodeTask(w, r)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	updated, err := s.TaskService.Update(r.Context(), id, input)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		logger.TaskID(id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(updated))
}

func (s *TaskHandler) PatchTaskByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	if _, err := s.TaskService.Patch(r.Context(), id); err != nil {
		s.errors.Write(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := parseID(r)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	removed, err := s.TaskService.Delete(r.Context(), id)
	if err != nil {
		s.errors.Write(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		logger.TaskID(id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(removed))
}

func (s *TaskHandler) requireJSON(w http.ResponseWriter, r *http.Request) bool {
	if checkContentType(r, "application/json") {
		return true
	}

	logger.Warn("HTTP: Неверный тип контента",
		zap.String("expected", "application/json"),
		zap.String("received", r.Header.Get("Content-Type")),
		zap.String("client_ip", r.RemoteAddr))

	writeProblem(w, Problem{
		StatusCode:   http.StatusUnsupportedMediaType,
		Title:        "Unsupported Media Type",
		ErrorMessage: "Content-Type must be application/json.",
	})
	return false
}
