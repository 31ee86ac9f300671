package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-manager-api/internal/adapter/gin/middleware"
	"task-manager-api/internal/usecase/task"
)

// TaskHandler handles HTTP requests for task operations. All task routes
// sit behind the auth gate.
type TaskHandler struct {
	uc  task.Usecase
	log *zap.Logger
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(uc task.Usecase, log *zap.Logger) *TaskHandler {
	return &TaskHandler{uc: uc, log: log}
}

// CreateTaskRequest represents the HTTP request body for creating a task
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

// UpdateTaskRequest represents the HTTP request body for updating a task
type UpdateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
}

// TaskResponse represents the HTTP response for task data
type TaskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
	UserID      int64  `json:"user_id"`
}

// CreateTask handles POST /api/task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Token requerido"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create task request", zap.Error(err))
		writeBindError(c, err)
		return
	}

	resp, err := h.uc.CreateTask(c.Request.Context(), task.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		UserID:      userID,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tarea creada",
		"id":      resp.ID,
	})
}

// GetTask handles GET /api/task/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := h.taskID(c)
	if !ok {
		return
	}

	resp, err := h.uc.GetTask(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(resp))
}

// ListTasks handles GET /api/task
func (h *TaskHandler) ListTasks(c *gin.Context) {
	resp, err := h.uc.ListTasks(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponses(resp.Tasks))
}

// ListMyTasks handles GET /api/task/user, listing the authenticated user's tasks.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Token requerido"})
		return
	}

	resp, err := h.uc.ListTasksByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponses(resp.Tasks))
}

// UpdateTask handles PUT /api/task/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := h.taskID(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update task request", zap.Error(err))
		writeBindError(c, err)
		return
	}

	err := h.uc.UpdateTask(c.Request.Context(), task.UpdateTaskRequest{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Tarea actualizada"})
}

// DeleteTask handles DELETE /api/task/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := h.taskID(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteTask(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Tarea eliminada"})
}

// taskID parses the :id path parameter, writing a 400 on failure.
func (h *TaskHandler) taskID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid task ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Task ID must be a valid number",
		})
		return 0, false
	}
	return id, true
}

func toTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status,
		UserID:      t.UserID,
	}
}

func toTaskResponses(tasks []task.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = toTaskResponse(&tasks[i])
	}
	return out
}
