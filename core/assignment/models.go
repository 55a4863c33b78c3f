package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/insta-studyhub-auto/core"
)

type (
	Priority string
	Status   string
)

// Priorities
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Statuses
const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

var (
	Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}
	Statuses   = []Status{StatusPending, StatusCompleted}
)

func (p Priority) IsValid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggle flips pending <-> completed.
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

type Assignment struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	CourseID    int          `json:"course_id"` // not enforced: orphans are tolerated
	DueDate     time.Time    `json:"due_date"`
	Priority    Priority     `json:"priority"`
	Status      Status       `json:"status"`
	Description string       `json:"description"`
	Grade       null.Float64 `json:"grade"`
	Category    string       `json:"category"`
}

func (a Assignment) IsPending() bool   { return a.Status == StatusPending }
func (a Assignment) IsCompleted() bool { return a.Status == StatusCompleted }

// IsOverdue reports whether a pending assignment is due strictly before `now`.
func (a Assignment) IsOverdue(now time.Time) bool {
	return a.IsPending() && a.DueDate.Before(now)
}

// NewAssignment contains information needed to create a new Assignment.
// New assignments are always pending and ungraded.
type NewAssignment struct {
	Title       string    `json:"title" validate:"required"`
	CourseID    int       `json:"course_id" validate:"required"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	Priority    Priority  `json:"priority" validate:"omitempty,priority"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.Category = core.CleanString(na.Category)
	na.Priority = Priority(core.CleanString(string(na.Priority), true /* lower */))
	return validate.Struct(na)
}

// Assignment builds the Assignment to be stored, applying defaults on omitted fields.
func (na NewAssignment) Assignment() Assignment {
	a := Assignment{
		Title:       na.Title,
		CourseID:    na.CourseID,
		DueDate:     na.DueDate,
		Priority:    na.Priority,
		Status:      StatusPending,
		Description: na.Description,
		Category:    na.Category,
	}
	if a.Priority == "" {
		a.Priority = PriorityMedium
	}
	return a
}

// UpdateAssignment defines what information may be provided to modify an existing Assignment.
// Only non-nil fields are applied; Grade is cleared with `ClearGrade`.
type UpdateAssignment struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	CourseID    *int       `json:"course_id" validate:"omitempty,min=1"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *Priority  `json:"priority" validate:"omitempty,priority"`
	Status      *Status    `json:"status" validate:"omitempty,status"`
	Description *string    `json:"description"`
	Grade       *float64   `json:"grade" validate:"omitempty,percent"`
	ClearGrade  bool       `json:"clear_grade"`
	Category    *string    `json:"category"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	clean := func(s *string) {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	clean(ua.Title)
	clean(ua.Description)
	clean(ua.Category)
	if ua.Priority != nil {
		*ua.Priority = Priority(core.CleanString(string(*ua.Priority), true /* lower */))
	}
	if ua.Status != nil {
		*ua.Status = Status(core.CleanString(string(*ua.Status), true /* lower */))
	}
	return validate.Struct(ua)
}

// Apply merges the set fields into `a`.
func (ua UpdateAssignment) Apply(a Assignment) Assignment {
	if ua.Title != nil {
		a.Title = *ua.Title
	}
	if ua.CourseID != nil {
		a.CourseID = *ua.CourseID
	}
	if ua.DueDate != nil {
		a.DueDate = *ua.DueDate
	}
	if ua.Priority != nil {
		a.Priority = *ua.Priority
	}
	if ua.Status != nil {
		a.Status = *ua.Status
	}
	if ua.Description != nil {
		a.Description = *ua.Description
	}
	if ua.Category != nil {
		a.Category = *ua.Category
	}
	if ua.ClearGrade {
		a.Grade = null.Float64{}
	} else if ua.Grade != nil {
		a.Grade = null.Float64From(*ua.Grade)
	}
	return a
}
