package task

import "time"

// Task is the core domain entity representing a task record.
type Task struct {
	ID          string    `gorm:"primarykey;size:36" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	DueDate     Date      `gorm:"not null" json:"dueDate"`
	Completed   bool      `gorm:"not null" json:"completed"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName returns the table name for Task model.
func (Task) TableName() string {
	return "tasks"
}

// Page is a bounded slice of tasks plus total-count metadata.
type Page struct {
	Items         []Task
	Number        int
	Size          int
	TotalElements int64
	TotalPages    int
}

// First reports whether this is the first page.
func (p *Page) First() bool {
	return p.Number == 0
}

// Last reports whether no page follows this one.
func (p *Page) Last() bool {
	return p.Number+1 >= p.TotalPages
}
