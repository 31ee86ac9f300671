package task

// CreateTaskRequest represents the request payload for creating a task.
// UserID comes from the authenticated request, not the client body.
type CreateTaskRequest struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"max=2000"`
	DueDate     string `validate:"omitempty,datetime=2006-01-02"`
	UserID      int64  `validate:"required"`
}

// CreateTaskResponse represents the response payload after creating a task.
type CreateTaskResponse struct {
	ID int64
}

// UpdateTaskRequest represents the request payload for updating a task.
type UpdateTaskRequest struct {
	ID          int64  `validate:"required"`
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"max=2000"`
	DueDate     string `validate:"omitempty,datetime=2006-01-02"`
	Status      string `validate:"max=50"`
}

// Task represents a task DTO for API responses.
type Task struct {
	ID          int64
	Title       string
	Description string
	DueDate     string
	Status      string
	UserID      int64
}

// ListTasksResponse represents the response payload for task listing.
type ListTasksResponse struct {
	Tasks []Task
}
