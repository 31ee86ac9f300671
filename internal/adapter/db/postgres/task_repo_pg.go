package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"task-manager-api/internal/domain/task"
)

// TaskRepoPG implements the task repository interface using PostgreSQL and GORM.
type TaskRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewTaskRepoPG creates a new instance of TaskRepoPG.
func NewTaskRepoPG(db *gorm.DB, log *zap.Logger) *TaskRepoPG {
	return &TaskRepoPG{db: db, log: log}
}

// TaskSchema represents the database schema for the tasks table.
type TaskSchema struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"not null"`
	Description string
	DueDate     string `gorm:"column:due_date"`
	Status      string `gorm:"not null;default:pendiente"`
	UserID      int64  `gorm:"not null;index"`
}

// TableName specifies the table name for the TaskSchema model.
func (TaskSchema) TableName() string {
	return "tasks"
}

// Create inserts a new task into the database.
func (r *TaskRepoPG) Create(ctx context.Context, t *task.Task) (int64, error) {
	if t == nil {
		return 0, errors.New("task cannot be nil")
	}

	model := TaskSchema{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status,
		UserID:      t.UserID,
	}
	if model.Status == "" {
		model.Status = task.StatusPending
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create task in db", zap.Error(err), zap.Int64("user_id", t.UserID))
		return 0, fmt.Errorf("failed to create task: %w", err)
	}

	r.log.Info("task created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// GetByID retrieves a task from the database by its unique ID.
// Returns (nil, nil) when no task exists with that ID.
func (r *TaskRepoPG) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	var model TaskSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("task not found", zap.Int64("id", id))
			return nil, nil
		}
		r.log.Error("failed to get task from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return toDomainTask(&model), nil
}

// List retrieves all tasks from the database.
func (r *TaskRepoPG) List(ctx context.Context) ([]task.Task, error) {
	var models []TaskSchema
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		r.log.Error("failed to list tasks from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return toDomainTasks(models), nil
}

// ListByUser retrieves all tasks belonging to the given user.
func (r *TaskRepoPG) ListByUser(ctx context.Context, userID int64) ([]task.Task, error) {
	var models []TaskSchema
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&models).Error; err != nil {
		r.log.Error("failed to list tasks by user from db", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to list tasks by user: %w", err)
	}

	return toDomainTasks(models), nil
}

// Update updates a task's fields by ID and returns the number of affected rows.
func (r *TaskRepoPG) Update(ctx context.Context, t *task.Task) (int64, error) {
	if t == nil {
		return 0, errors.New("task cannot be nil")
	}

	// Column map rather than a struct update so zero values are written too
	res := r.db.WithContext(ctx).Model(&TaskSchema{}).Where("id = ?", t.ID).Updates(map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"due_date":    t.DueDate,
		"status":      t.Status,
	})
	if res.Error != nil {
		r.log.Error("failed to update task in db", zap.Error(res.Error), zap.Int64("id", t.ID))
		return 0, fmt.Errorf("failed to update task: %w", res.Error)
	}

	r.log.Info("task updated in db", zap.Int64("id", t.ID), zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}

// Delete removes a task from the database by ID and returns the number of
// affected rows.
func (r *TaskRepoPG) Delete(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, errors.New("invalid task id")
	}

	res := r.db.WithContext(ctx).Delete(&TaskSchema{}, id)
	if res.Error != nil {
		r.log.Error("failed to delete task in db", zap.Error(res.Error), zap.Int64("id", id))
		return 0, fmt.Errorf("failed to delete task: %w", res.Error)
	}

	r.log.Info("task deleted in db", zap.Int64("id", id), zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}

func toDomainTask(model *TaskSchema) *task.Task {
	return &task.Task{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		DueDate:     model.DueDate,
		Status:      model.Status,
		UserID:      model.UserID,
	}
}

func toDomainTasks(models []TaskSchema) []task.Task {
	tasks := make([]task.Task, len(models))
	for i := range models {
		tasks[i] = *toDomainTask(&models[i])
	}
	return tasks
}
