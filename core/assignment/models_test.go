package assignment

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/insta-studyhub-auto/core"
)

func newValidator() (*validator.Validate, func(err error) map[string]string) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)

	messages := func(err error) map[string]string {
		msgs := make(map[string]string)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs[fe.Field()] = fe.Translate(translator)
			}
		}
		return msgs
	}
	return validate, messages
}

func TestStatus_Toggle(t *testing.T) {
	for _, s := range Statuses {
		assert.NotEqual(t, s, s.Toggle())
		assert.Equal(t, s, s.Toggle().Toggle())
	}
	assert.Equal(t, StatusCompleted, StatusPending.Toggle())
}

func TestNewAssignment_Validate(t *testing.T) {
	validate, messages := newValidator()

	tests := []struct {
		name    string
		na      NewAssignment
		wantErr map[string]string
	}{
		{
			name:    "valid",
			na:      NewAssignment{Title: " Essay ", CourseID: 3, DueDate: now, Priority: " HIGH"},
			wantErr: map[string]string{},
		},
		{
			name:    "default priority",
			na:      NewAssignment{Title: "Essay", CourseID: 3, DueDate: now},
			wantErr: map[string]string{},
		},
		{
			name: "required",
			na:   NewAssignment{Title: "   ", DueDate: now},
			wantErr: map[string]string{
				"title":     "this field is required",
				"course_id": "this field is required",
			},
		},
		{
			name:    "priority",
			na:      NewAssignment{Title: "Essay", CourseID: 3, DueDate: now, Priority: "urgent"},
			wantErr: map[string]string{"priority": priorityText},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.na.Validate(validate)
			assert.Equal(t, tt.wantErr, messages(err))
		})
	}
}

func TestNewAssignment_Assignment(t *testing.T) {
	na := NewAssignment{Title: "Essay", CourseID: 3, DueDate: now, Description: "words"}
	assert.Equal(t, Assignment{
		Title:       "Essay",
		CourseID:    3,
		DueDate:     now,
		Priority:    PriorityMedium,
		Status:      StatusPending,
		Description: "words",
	}, na.Assignment())

	na.Priority = PriorityLow
	assert.Equal(t, PriorityLow, na.Assignment().Priority)
}

func TestUpdateAssignment_Validate(t *testing.T) {
	validate, messages := newValidator()

	status := Status(" Completed ")
	ua := UpdateAssignment{Status: &status}
	assert.NoError(t, ua.Validate(validate))
	assert.Equal(t, StatusCompleted, *ua.Status)

	bad := Status("done")
	grade := 120.0
	ua = UpdateAssignment{Status: &bad, Grade: &grade}
	assert.Equal(t, map[string]string{
		"status": statusText,
		"grade":  "grade must be between 0 and 100",
	}, messages(ua.Validate(validate)))
}

func TestUpdateAssignment_Apply(t *testing.T) {
	a := Assignment{ID: 5, Title: "Problem Set 4", CourseID: 1, DueDate: now, Priority: PriorityMedium, Status: StatusCompleted, Grade: null.Float64From(95)}

	title := "Problem Set 4 (redo)"
	due := now.Add(48 * time.Hour)
	got := UpdateAssignment{Title: &title, DueDate: &due}.Apply(a)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, due, got.DueDate)
	assert.Equal(t, 95.0, got.Grade.Float64)
	assert.Equal(t, "Problem Set 4", a.Title) // untouched

	grade := 80.0
	got = UpdateAssignment{Grade: &grade}.Apply(a)
	assert.Equal(t, null.Float64From(80), got.Grade)

	// clearing wins
	got = UpdateAssignment{Grade: &grade, ClearGrade: true}.Apply(a)
	assert.False(t, got.Grade.Valid)
}
