package task

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "task-manager-api/internal/domain/task"
	apperrors "task-manager-api/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for task data access operations.
type Repository interface {
	Create(ctx context.Context, t *domain.Task) (int64, error)               // Create a new task
	GetByID(ctx context.Context, id int64) (*domain.Task, error)             // Retrieve task by ID
	List(ctx context.Context) ([]domain.Task, error)                         // List all tasks
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)     // List tasks of one user
	Update(ctx context.Context, t *domain.Task) (int64, error)               // Update a task, returns affected rows
	Delete(ctx context.Context, id int64) (int64, error)                     // Delete a task, returns affected rows
}

// TaskUsecase implements the business logic for task management operations.
type TaskUsecase struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new instance of TaskUsecase.
func New(r Repository, log *zap.Logger) *TaskUsecase {
	return &TaskUsecase{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a human-readable error.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "datetime":
				messages = append(messages, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return apperrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// CreateTask creates a new task for the authenticated user.
func (uc *TaskUsecase) CreateTask(ctx context.Context, in CreateTaskRequest) (*CreateTaskResponse, error) {
	uc.log.Info("creating task", zap.String("title", in.Title), zap.Int64("user_id", in.UserID))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("create task validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	id, err := uc.repo.Create(ctx, &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      domain.StatusPending,
		UserID:      in.UserID,
	})
	if err != nil {
		uc.log.Error("failed to create task", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to create task", err)
	}

	return &CreateTaskResponse{ID: id}, nil
}

// GetTask retrieves a task by ID.
func (uc *TaskUsecase) GetTask(ctx context.Context, id int64) (*Task, error) {
	if id <= 0 {
		uc.log.Warn("get task validation failed", zap.Int64("id", id), zap.String("reason", "invalid id"))
		return nil, apperrors.NewValidationError("id", "invalid task id")
	}

	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.log.Error("failed to get task", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to get task", err)
	}
	if t == nil {
		return nil, apperrors.NewNotFoundError("task", "Tarea no encontrada")
	}

	return toDTO(t), nil
}

// ListTasks retrieves all tasks.
func (uc *TaskUsecase) ListTasks(ctx context.Context) (*ListTasksResponse, error) {
	tasks, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error("failed to list tasks", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to list tasks", err)
	}
	return toListResponse(tasks), nil
}

// ListTasksByUser retrieves all tasks belonging to one user.
func (uc *TaskUsecase) ListTasksByUser(ctx context.Context, userID int64) (*ListTasksResponse, error) {
	if userID <= 0 {
		return nil, apperrors.NewValidationError("user_id", "invalid user id")
	}

	tasks, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		uc.log.Error("failed to list tasks by user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to list tasks by user", err)
	}
	return toListResponse(tasks), nil
}

// UpdateTask updates an existing task. The task must exist before the
// update is attempted; a missing task is a not-found, not a no-op.
func (uc *TaskUsecase) UpdateTask(ctx context.Context, in UpdateTaskRequest) error {
	uc.log.Info("updating task", zap.Int64("id", in.ID))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("update task validation failed", zap.Error(err))
		return formatValidationError(err)
	}

	existing, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to check task existence", zap.Int64("id", in.ID), zap.Error(err))
		return apperrors.NewInternalError("failed to check task existence", err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("task", "Tarea no encontrada")
	}

	status := in.Status
	if status == "" {
		status = existing.Status
	}

	rows, err := uc.repo.Update(ctx, &domain.Task{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      status,
	})
	if err != nil {
		uc.log.Error("failed to update task", zap.Int64("id", in.ID), zap.Error(err))
		return apperrors.NewInternalError("failed to update task", err)
	}
	if rows == 0 {
		return apperrors.NewValidationError("", "No se pudo actualizar la tarea")
	}

	return nil
}

// DeleteTask deletes a task by ID. Deleting a task that no longer exists
// is a not-found.
func (uc *TaskUsecase) DeleteTask(ctx context.Context, id int64) error {
	uc.log.Info("deleting task", zap.Int64("id", id))

	if id <= 0 {
		return apperrors.NewValidationError("id", "invalid task id")
	}

	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.log.Error("failed to check task existence", zap.Int64("id", id), zap.Error(err))
		return apperrors.NewInternalError("failed to check task existence", err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("task", "Tarea no encontrada")
	}

	rows, err := uc.repo.Delete(ctx, id)
	if err != nil {
		uc.log.Error("failed to delete task", zap.Int64("id", id), zap.Error(err))
		return apperrors.NewInternalError("failed to delete task", err)
	}
	if rows == 0 {
		return apperrors.NewValidationError("", "No se pudo eliminar la tarea")
	}

	return nil
}

func toDTO(t *domain.Task) *Task {
	return &Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status,
		UserID:      t.UserID,
	}
}

func toListResponse(tasks []domain.Task) *ListTasksResponse {
	out := make([]Task, len(tasks))
	for i := range tasks {
		out[i] = *toDTO(&tasks[i])
	}
	return &ListTasksResponse{Tasks: out}
}
