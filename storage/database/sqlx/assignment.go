package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
)

const (
	assignmentSelect = `SELECT "id", "title", "course_id", "due_date", "priority", "status", "description", "grade",
       "category" FROM "assignments"`
	assignmentOrder  = ` ORDER BY "due_date" ASC, "id" ASC`
	assignmentInsert = `INSERT INTO "assignments" ("title", "course_id", "due_date", "priority", "status", "description",
       "grade", "category")
VALUES (:title, :course_id, :due_date, :priority, :status, :description, :grade, :category)
RETURNING "id"`
	assignmentUpdate = `UPDATE "assignments"
SET "title" = :title, "course_id" = :course_id, "due_date" = :due_date, "priority" = :priority,
    "status" = :status, "description" = :description, "grade" = :grade, "category" = :category
WHERE "id" = :id`
)

type assignmentRow struct {
	ID          int          `db:"id"`
	Title       string       `db:"title"`
	CourseID    int          `db:"course_id"`
	DueDate     time.Time    `db:"due_date"`
	Priority    string       `db:"priority"`
	Status      string       `db:"status"`
	Description string       `db:"description"`
	Grade       null.Float64 `db:"grade"`
	Category    string       `db:"category"`
}

func toAssignmentRow(a assignment.Assignment) assignmentRow {
	return assignmentRow{
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

func (row assignmentRow) assignment() assignment.Assignment {
	return assignment.Assignment{
		ID:          row.ID,
		Title:       row.Title,
		CourseID:    row.CourseID,
		DueDate:     row.DueDate,
		Priority:    assignment.Priority(row.Priority),
		Status:      assignment.Status(row.Status),
		Description: row.Description,
		Grade:       row.Grade,
		Category:    row.Category,
	}
}

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sqlx.DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

func (repo assignmentRepository) selectAll(ctx context.Context, q string, args ...interface{}) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	list := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.assignment())
	}
	return list, nil
}

func (repo assignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	return repo.selectAll(ctx, assignmentSelect+assignmentOrder)
}

func (repo assignmentRepository) QueryAssignmentsByCourse(ctx context.Context, courseID int) ([]assignment.Assignment, error) {
	return repo.selectAll(ctx, assignmentSelect+` WHERE "course_id" = ?`+assignmentOrder, courseID)
}

func (repo assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	var row assignmentRow
	if err := repo.db.GetContext(ctx, &row, repo.db.Rebind(assignmentSelect+` WHERE "id" = ?`), id); err != nil {
		if isNoRows(err) {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "finding assignment by ID")
	}
	return row.assignment(), nil
}

func (repo assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	row := toAssignmentRow(a)
	q, args, err := repo.db.BindNamed(assignmentInsert, row)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "binding assignment")
	}
	if err = repo.db.QueryRowxContext(ctx, q, args...).Scan(&row.ID); err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return row.assignment(), nil
}

func (repo assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	row := toAssignmentRow(a)
	res, err := repo.db.NamedExecContext(ctx, assignmentUpdate, row)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	if cnt, err := res.RowsAffected(); err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	} else if cnt == 0 {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return row.assignment(), nil
}

func (repo assignmentRepository) DeleteAssignment(ctx context.Context, id int) (bool, error) {
	ok, err := deleteByID(ctx, repo.db, "assignments", id)
	if err != nil {
		return false, errors.Wrap(err, "deleting assignment")
	}
	if !ok {
		return false, assignment.ErrNotFound
	}
	return true, nil
}
