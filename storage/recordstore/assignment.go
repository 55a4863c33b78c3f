package recordstore

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
)

const AssignmentTable = "Assignment"

var assignmentFields = Fields(
	"Id", "title", "courseId", "dueDate", "priority", "status", "description", "grade", "category",
)

type assignmentRecord struct {
	ID          int          `json:"Id,omitempty"`
	Title       string       `json:"title"`
	CourseID    int          `json:"courseId"`
	DueDate     time.Time    `json:"dueDate"`
	Priority    string       `json:"priority"`
	Status      string       `json:"status"`
	Description string       `json:"description"`
	Grade       null.Float64 `json:"grade"`
	Category    string       `json:"category"`
}

func toAssignmentRecord(a assignment.Assignment) assignmentRecord {
	return assignmentRecord{
		ID:          a.ID,
		Title:       a.Title,
		CourseID:    a.CourseID,
		DueDate:     a.DueDate.UTC(),
		Priority:    string(a.Priority),
		Status:      string(a.Status),
		Description: a.Description,
		Grade:       a.Grade,
		Category:    a.Category,
	}
}

func (r assignmentRecord) assignment() assignment.Assignment {
	return assignment.Assignment{
		ID:          r.ID,
		Title:       r.Title,
		CourseID:    r.CourseID,
		DueDate:     r.DueDate,
		Priority:    assignment.Priority(r.Priority),
		Status:      assignment.Status(r.Status),
		Description: r.Description,
		Grade:       r.Grade,
		Category:    r.Category,
	}
}

type assignmentRepository struct {
	client *Client
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(client *Client) *assignmentRepository {
	return &assignmentRepository{client: client}
}

func (repo *assignmentRepository) fetch(ctx context.Context, where ...Where) ([]assignment.Assignment, error) {
	var records []assignmentRecord
	params := FetchParams{
		Fields:  assignmentFields,
		Where:   where,
		OrderBy: []OrderBy{{FieldName: "dueDate", SortType: "ASC"}},
	}
	if err := repo.client.Fetch(ctx, AssignmentTable, params, &records); err != nil {
		return nil, err
	}
	list := make([]assignment.Assignment, 0, len(records))
	for _, r := range records {
		list = append(list, r.assignment())
	}
	return list, nil
}

func (repo *assignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	return repo.fetch(ctx)
}

func (repo *assignmentRepository) QueryAssignmentsByCourse(ctx context.Context, courseID int) ([]assignment.Assignment, error) {
	return repo.fetch(ctx, Where{FieldName: "courseId", Operator: "EqualTo", Values: []interface{}{courseID}})
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	var r assignmentRecord
	found, err := repo.client.Get(ctx, AssignmentTable, id, &r)
	if err != nil {
		return assignment.Assignment{}, err
	}
	if !found {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return r.assignment(), nil
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	a.ID = 0
	var created assignmentRecord
	if err := repo.client.Create(ctx, AssignmentTable, toAssignmentRecord(a), &created); err != nil {
		return assignment.Assignment{}, err
	}
	return created.assignment(), nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	var updated assignmentRecord
	if err := repo.client.Update(ctx, AssignmentTable, toAssignmentRecord(a), &updated); err != nil {
		return assignment.Assignment{}, err
	}
	return updated.assignment(), nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id int) (bool, error) {
	if _, err := repo.GetAssignmentByID(ctx, id); err != nil {
		return false, err
	}
	if err := repo.client.Delete(ctx, AssignmentTable, id); err != nil {
		return false, err
	}
	return true, nil
}
