package task

// Default status assigned to newly created tasks.
const StatusPending = "pendiente"

// Task represents a task entity owned by a user.
type Task struct {
	ID          int64  `json:"id"`          // ID is the unique identifier for the task
	Title       string `json:"title"`       // Title is the short task summary
	Description string `json:"description"` // Description holds the task details
	DueDate     string `json:"due_date"`    // DueDate in YYYY-MM-DD format
	Status      string `json:"status"`      // Status is the current task state
	UserID      int64  `json:"user_id"`     // UserID is the owning user's ID
}
