package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kovalchuka569/taskflow/internal/domain/kernel"
	"github.com/kovalchuka569/taskflow/internal/domain/todo"
	"github.com/kovalchuka569/taskflow/internal/http/response"
	"github.com/kovalchuka569/taskflow/internal/pkg/result"
	"github.com/kovalchuka569/taskflow/internal/services/todos"
)

// ErrInvalidBody is answered when a request body cannot be decoded.
var ErrInvalidBody = result.NewError("Request.InvalidBody", "Request body is not valid JSON.")

type TodoHandler struct {
	todos todos.Service
}

func NewTodoHandler(todos todos.Service) *TodoHandler {
	return &TodoHandler{todos: todos}
}

type createTodoRequest struct {
	ProjectID               uuid.UUID      `json:"projectId"`
	AuthorID                uuid.UUID      `json:"authorId"`
	Title                   string         `json:"title"`
	Description             string         `json:"description"`
	Priority                *todo.Priority `json:"priority"`
	DueDate                 time.Time      `json:"dueDate"`
	EstimatedCompletionTime time.Time      `json:"estimatedCompletionTime"`
}

type updateTitleRequest struct {
	ProjectID uuid.UUID `json:"projectId"`
	NewTitle  string    `json:"newTitle"`
}

type updateDescriptionRequest struct {
	ProjectID      uuid.UUID `json:"projectId"`
	NewDescription string    `json:"newDescription"`
}

type updatePriorityRequest struct {
	ProjectID   uuid.UUID     `json:"projectId"`
	NewPriority todo.Priority `json:"newPriority"`
}

type updateStatusRequest struct {
	ProjectID uuid.UUID   `json:"projectId"`
	NewStatus todo.Status `json:"newStatus"`
}

// GET /api/todos/:todoId
func (h *TodoHandler) Get(c *gin.Context) {
	todoID, ok := pathID(c)
	if !ok {
		return
	}
	r := h.todos.Get(c.Request.Context(), todoID)
	if r.IsFailure() {
		response.RespondErrors(c, r.Errors())
		return
	}
	response.RespondOK(c, r.Value())
}

// GET /api/todos?projectId=
func (h *TodoHandler) ListByProject(c *gin.Context) {
	projectID, ok := queryID(c, "projectId")
	if !ok {
		return
	}
	r := h.todos.ListByProject(c.Request.Context(), projectID)
	if r.IsFailure() {
		response.RespondErrors(c, r.Errors())
		return
	}
	response.RespondOK(c, r.Value())
}

// POST /api/todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if !bindBody(c, &req) {
		return
	}
	r := h.todos.Create(c.Request.Context(), todos.CreateCommand{
		ProjectID:               req.ProjectID,
		AuthorID:                req.AuthorID,
		Title:                   req.Title,
		Description:             req.Description,
		Priority:                req.Priority,
		DueDate:                 req.DueDate,
		EstimatedCompletionTime: req.EstimatedCompletionTime,
	})
	if r.IsFailure() {
		response.RespondErrors(c, r.Errors())
		return
	}
	c.Header("Location", "/api/todos/"+r.Value().ID.String())
	c.JSON(http.StatusCreated, r.Value())
}

// PATCH /api/todos/:todoId/title
func (h *TodoHandler) UpdateTitle(c *gin.Context) {
	todoID, ok := pathID(c)
	if !ok {
		return
	}
	var req updateTitleRequest
	if !bindBody(c, &req) {
		return
	}
	r := h.todos.ChangeTitle(c.Request.Context(), todos.ChangeTitleCommand{
		TodoID:    todoID,
		ProjectID: req.ProjectID,
		Title:     req.NewTitle,
	})
	response.RespondResult(c, r, http.StatusNoContent)
}

// PATCH /api/todos/:todoId/description
func (h *TodoHandler) UpdateDescription(c *gin.Context) {
	todoID, ok := pathID(c)
	if !ok {
		return
	}
	var req updateDescriptionRequest
	if !bindBody(c, &req) {
		return
	}
	r := h.todos.ChangeDescription(c.Request.Context(), todos.ChangeDescriptionCommand{
		TodoID:      todoID,
		ProjectID:   req.ProjectID,
		Description: req.NewDescription,
	})
	response.RespondResult(c, r, http.StatusNoContent)
}

// PATCH /api/todos/:todoId/priority
func (h *TodoHandler) UpdatePriority(c *gin.Context) {
	todoID, ok := pathID(c)
	if !ok {
		return
	}
	var req updatePriorityRequest
	if !bindBody(c, &req) {
		return
	}
	r := h.todos.ChangePriority(c.Request.Context(), todos.ChangePriorityCommand{
		TodoID:    todoID,
		ProjectID: req.ProjectID,
		Priority:  req.NewPriority,
	})
	response.RespondResult(c, r, http.StatusNoContent)
}

// PATCH /api/todos/:todoId/status
func (h *TodoHandler) UpdateStatus(c *gin.Context) {
	todoID, ok := pathID(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if !bindBody(c, &req) {
		return
	}
	r := h.todos.ChangeStatus(c.Request.Context(), todos.ChangeStatusCommand{
		TodoID:    todoID,
		ProjectID: req.ProjectID,
		Status:    req.NewStatus,
	})
	response.RespondResult(c, r, http.StatusNoContent)
}

// DELETE /api/todos/:todoId?projectId=
func (h *TodoHandler) Delete(c *gin.Context) {
	todoID, ok := pathID(c)
	if !ok {
		return
	}
	projectID, ok := queryID(c, "projectId")
	if !ok {
		return
	}
	r := h.todos.Delete(c.Request.Context(), todos.DeleteCommand{TodoID: todoID, ProjectID: projectID})
	response.RespondResult(c, r, http.StatusNoContent)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	return parseID(c, c.Param("todoId"))
}

func queryID(c *gin.Context, key string) (uuid.UUID, bool) {
	return parseID(c, c.Query(key))
}

// parseID only checks syntax; the service rejects the nil UUID itself.
func parseID(c *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondErrors(c, []result.Error{kernel.ErrIDIsMalformed})
		return uuid.Nil, false
	}
	return id, true
}

func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondErrors(c, []result.Error{ErrInvalidBody})
		return false
	}
	return true
}
