package task

import "context"

// Usecase defines the interface for task business logic operations.
type Usecase interface {
	CreateTask(ctx context.Context, in CreateTaskRequest) (*CreateTaskResponse, error)
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context) (*ListTasksResponse, error)
	ListTasksByUser(ctx context.Context, userID int64) (*ListTasksResponse, error)
	UpdateTask(ctx context.Context, in UpdateTaskRequest) error
	DeleteTask(ctx context.Context, id int64) error
}
