package boiledrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/queries"
	"github.com/volatiletech/sqlboiler/v4/queries/qm"

	"github.com/apper-canvas/insta-studyhub-auto/core"
	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
)

// assignmentRow is a row of the "assignments" table.
type assignmentRow struct {
	ID          int          `boil:"id"`
	Title       string       `boil:"title"`
	CourseID    int          `boil:"course_id"`
	DueDate     time.Time    `boil:"due_date"`
	Priority    string       `boil:"priority"`
	Status      string       `boil:"status"`
	Description string       `boil:"description"`
	Grade       null.Float64 `boil:"grade"`
	Category    string       `boil:"category"`
}

// assignmentColumns are the writable columns, in assignmentRow.values order.
var assignmentColumns = []string{
	"title", "course_id", "due_date", "priority", "status", "description", "grade", "category",
}

func (r assignmentRow) values() []interface{} {
	return []interface{}{r.Title, r.CourseID, r.DueDate, r.Priority, r.Status, r.Description, r.Grade, r.Category}
}

var assignmentOrdering = []core.DBOrdering{{Field: "due_date", Ascending: true}, {Field: "id", Ascending: true}}

type assignmentRepository struct {
	exec core.DBExecutor
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(exec core.DBExecutor) *assignmentRepository {
	return &assignmentRepository{exec: exec}
}

func (repo assignmentRepository) boil(a assignment.Assignment) assignmentRow {
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

func (repo assignmentRepository) unboil(row assignmentRow) assignment.Assignment {
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

func (repo assignmentRepository) unboilSlice(rows []assignmentRow) []assignment.Assignment {
	list := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		list = append(list, repo.unboil(row))
	}
	return list
}

// trapNoRowsErr maps psql "no rows" err to assignment.ErrNotFound
func (repo assignmentRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return assignment.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo assignmentRepository) query(ctx context.Context, mods ...qm.QueryMod) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	mods = append([]qm.QueryMod{qm.From(quote(TableNames.Assignment))}, mods...)
	mods = append(mods, orderBy(assignmentOrdering...))
	if err := NewQuery(mods...).Bind(ctx, repo.exec, &rows); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return repo.unboilSlice(rows), nil
}

func (repo assignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	return repo.query(ctx)
}

func (repo assignmentRepository) QueryAssignmentsByCourse(ctx context.Context, courseID int) ([]assignment.Assignment, error) {
	return repo.query(ctx, qm.Where(quote("course_id")+"=?", courseID))
}

func (repo assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	var row assignmentRow
	q := NewQuery(qm.From(quote(TableNames.Assignment)), qm.Where(quote("id")+"=?", id))
	if err := q.Bind(ctx, repo.exec, &row); err != nil {
		return assignment.Assignment{}, repo.trapNoRowsErr(err, "finding assignment by ID")
	}
	return repo.unboil(row), nil
}

func (repo assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	var inserted assignmentRow
	q := queries.Raw(insertQuery(TableNames.Assignment, assignmentColumns), repo.boil(a).values()...)
	if err := q.Bind(ctx, repo.exec, &inserted); err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return repo.unboil(inserted), nil
}

func (repo assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	row := repo.boil(a)
	var updated assignmentRow
	q := queries.Raw(updateQuery(TableNames.Assignment, assignmentColumns), append(row.values(), row.ID)...)
	if err := q.Bind(ctx, repo.exec, &updated); err != nil {
		return assignment.Assignment{}, repo.trapNoRowsErr(err, "updating assignment")
	}
	return repo.unboil(updated), nil
}

func (repo assignmentRepository) DeleteAssignment(ctx context.Context, id int) (bool, error) {
	res, err := queries.Raw(deleteQuery(TableNames.Assignment), id).ExecContext(ctx, repo.exec)
	if err != nil {
		return false, errors.Wrap(err, "deleting assignment")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "deleting assignment")
	}
	if cnt == 0 {
		return false, assignment.ErrNotFound
	}
	return true, nil
}
