// Package roster holds the calculator's in-memory state: an ordered list of
// semesters, their courses and the current view mode.
package roster

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/meltforce/gpacalc/internal/gpa"
	"github.com/meltforce/gpacalc/internal/grade"
	"github.com/meltforce/gpacalc/internal/models"
)

var (
	ErrSemesterNotFound = errors.New("semester not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrUnknownField     = errors.New("unknown course field")
)

// Defaults are the values given to a newly added course.
type Defaults struct {
	Credits int
	Grade   grade.Grade
	View    models.ViewMode
}

// DefaultSettings matches a blank calculator: a three-credit A and the
// per-semester view.
var DefaultSettings = Defaults{Credits: 3, Grade: grade.A, View: models.ViewSemester}

// Roster is the single source of truth for one calculator session.
// It is safe for concurrent use.
type Roster struct {
	mu        sync.RWMutex
	semesters []*models.Semester
	view      models.ViewMode
	defaults  Defaults
	newID     func() uuid.UUID
}

// New returns a roster containing one empty semester.
func New(d Defaults) *Roster {
	if d.Credits == 0 {
		d.Credits = DefaultSettings.Credits
	}
	if d.Grade == "" {
		d.Grade = DefaultSettings.Grade
	}
	if d.View == "" {
		d.View = DefaultSettings.View
	}
	r := &Roster{view: d.View, defaults: d, newID: uuid.New}
	r.AddSemester()
	return r
}

// AddSemester appends an empty semester and returns it.
func (r *Roster) AddSemester() models.Semester {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &models.Semester{ID: r.newID(), Courses: []models.Course{}}
	r.semesters = append(r.semesters, s)
	return s.Clone()
}

// AddCourse appends a course with default values to a semester.
func (r *Roster) AddCourse(semesterID uuid.UUID) (models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.semester(semesterID)
	if err != nil {
		return models.Course{}, err
	}
	c := models.Course{
		ID:      r.newID(),
		Credits: r.defaults.Credits,
		Grade:   r.defaults.Grade,
	}
	s.Courses = append(s.Courses, c)
	return c, nil
}

// UpdateCourse sets one field of a course from its raw input value.
// Credits must parse to a whole number in range and grades must be on the
// scale; on error the course is left unchanged.
func (r *Roster) UpdateCourse(semesterID, courseID uuid.UUID, field models.Field, value string) (models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.semester(semesterID)
	if err != nil {
		return models.Course{}, err
	}
	i, err := courseIndex(s, courseID)
	if err != nil {
		return models.Course{}, err
	}

	c := s.Courses[i]
	switch field {
	case models.FieldName:
		c.Name = value
	case models.FieldCredits:
		n, err := models.ParseCredits(value)
		if err != nil {
			return models.Course{}, err
		}
		c.Credits = n
	case models.FieldGrade:
		g, err := grade.Parse(value)
		if err != nil {
			return models.Course{}, err
		}
		c.Grade = g
	default:
		return models.Course{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	s.Courses[i] = c
	return c, nil
}

// DeleteCourse removes a course from its semester.
func (r *Roster) DeleteCourse(semesterID, courseID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.semester(semesterID)
	if err != nil {
		return err
	}
	i, err := courseIndex(s, courseID)
	if err != nil {
		return err
	}
	s.Courses = append(s.Courses[:i:i], s.Courses[i+1:]...)
	return nil
}

// Semesters returns a copy of every semester in insertion order.
func (r *Roster) Semesters() []models.Semester {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot()
}

// Semester returns a copy of one semester.
func (r *Roster) Semester(id uuid.UUID) (models.Semester, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, err := r.semester(id)
	if err != nil {
		return models.Semester{}, err
	}
	return s.Clone(), nil
}

// SemesterGPA returns the GPA of one semester.
func (r *Roster) SemesterGPA(id uuid.UUID) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, err := r.semester(id)
	if err != nil {
		return 0, err
	}
	return gpa.Compute(s.Courses), nil
}

// CGPA returns the cumulative GPA across all semesters.
func (r *Roster) CGPA() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return gpa.ComputeCumulative(r.snapshot())
}

// View returns the current view mode.
func (r *Roster) View() models.ViewMode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view
}

// SetView switches the view mode.
func (r *Roster) SetView(v models.ViewMode) error {
	if v != models.ViewSemester && v != models.ViewCumulative {
		return fmt.Errorf("unknown view mode %q", v)
	}
	r.mu.Lock()
	r.view = v
	r.mu.Unlock()
	return nil
}

// ToggleView flips the view mode and returns the new one.
func (r *Roster) ToggleView() models.ViewMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view = r.view.Toggle()
	return r.view
}

// Summary returns per-semester GPAs and the CGPA from one consistent view of
// the roster. Semester GPAs are rounded for display; the CGPA is computed
// from the unrounded totals.
func (r *Roster) Summary() models.Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := models.Summary{
		View:      r.view,
		Semesters: make([]models.SemesterSummary, 0, len(r.semesters)),
	}
	var all gpa.Totals
	for i, s := range r.semesters {
		t := gpa.Tally(s.Courses)
		all = all.Add(t)
		sum.Semesters = append(sum.Semesters, models.SemesterSummary{
			ID:      s.ID,
			Label:   fmt.Sprintf("Semester %d", i+1),
			Courses: len(s.Courses),
			Credits: t.Credits,
			GPA:     gpa.Compute(s.Courses),
		})
	}
	sum.TotalCredits = all.Credits
	sum.CGPA = all.GPA()
	return sum
}

func (r *Roster) snapshot() []models.Semester {
	out := make([]models.Semester, len(r.semesters))
	for i, s := range r.semesters {
		out[i] = s.Clone()
	}
	return out
}

func (r *Roster) semester(id uuid.UUID) (*models.Semester, error) {
	for _, s := range r.semesters {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSemesterNotFound, id)
}

func courseIndex(s *models.Semester, id uuid.UUID) (int, error) {
	for i := range s.Courses {
		if s.Courses[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrCourseNotFound, id)
}
