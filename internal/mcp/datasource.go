package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/meltforce/gpacalc/internal/models"
	"github.com/meltforce/gpacalc/internal/roster"
)

// DataSource abstracts the roster for MCP tools. Both Local (in-process) and
// HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Summary(ctx context.Context) (*models.Summary, error)
	Semesters(ctx context.Context) ([]models.Semester, error)
	AddSemester(ctx context.Context) (*models.Semester, error)
	AddCourse(ctx context.Context, semesterID uuid.UUID) (*models.Course, error)
	UpdateCourse(ctx context.Context, semesterID, courseID uuid.UUID, field models.Field, value string) (*models.Course, error)
	DeleteCourse(ctx context.Context, semesterID, courseID uuid.UUID) error
	SetView(ctx context.Context, mode models.ViewMode) error
}

// Local serves a roster owned by the same process.
type Local struct {
	r *roster.Roster
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal wraps r as a DataSource.
func NewLocal(r *roster.Roster) *Local {
	return &Local{r: r}
}

func (l *Local) Summary(context.Context) (*models.Summary, error) {
	s := l.r.Summary()
	return &s, nil
}

func (l *Local) Semesters(context.Context) ([]models.Semester, error) {
	return l.r.Semesters(), nil
}

func (l *Local) AddSemester(context.Context) (*models.Semester, error) {
	s := l.r.AddSemester()
	return &s, nil
}

func (l *Local) AddCourse(_ context.Context, semesterID uuid.UUID) (*models.Course, error) {
	c, err := l.r.AddCourse(semesterID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (l *Local) UpdateCourse(_ context.Context, semesterID, courseID uuid.UUID, field models.Field, value string) (*models.Course, error) {
	c, err := l.r.UpdateCourse(semesterID, courseID, field, value)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (l *Local) DeleteCourse(_ context.Context, semesterID, courseID uuid.UUID) error {
	return l.r.DeleteCourse(semesterID, courseID)
}

func (l *Local) SetView(_ context.Context, mode models.ViewMode) error {
	return l.r.SetView(mode)
}
