package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/taskquest/internal/incentive"
	"github.com/dukerupert/taskquest/internal/model"
	"github.com/dukerupert/taskquest/internal/task"
)

type TaskHandler struct {
	svc    *incentive.Service
	logger *slog.Logger
}

func NewTaskHandler(svc *incentive.Service, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req incentive.NewTask
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	created, err := h.svc.CreateTask(r.Context(), actor(r), req)
	if err != nil {
		writeError(w, h.logger, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.ListTasks(r.Context(), actor(r))
	if err != nil {
		writeError(w, h.logger, "list tasks", err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		badRequest(w, "invalid id")
		return
	}

	var req incentive.TaskUpdate
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	updated, err := h.svc.UpdateTaskStatus(r.Context(), actor(r), id, req)
	if err != nil {
		writeError(w, h.logger, "update task", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type bulkRequest struct {
	Updates []task.BatchEntry `json:"updates"`
}

func (h *TaskHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	res, err := h.svc.BulkUpdate(r.Context(), actor(r), req.Updates)
	if err != nil {
		writeError(w, h.logger, "bulk update tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
