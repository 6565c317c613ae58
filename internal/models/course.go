package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/meltforce/gpacalc/internal/grade"
)

// Credit weight bounds offered to users.
const (
	MinCredits = 1
	MaxCredits = 6
)

// ErrInvalidCredits is returned when a credit weight is not a whole number
// within [MinCredits, MaxCredits].
var ErrInvalidCredits = errors.New("invalid credits")

// Course is one graded unit inside a semester.
type Course struct {
	ID      uuid.UUID   `json:"id"`
	Name    string      `json:"name"`
	Credits int         `json:"credits"`
	Grade   grade.Grade `json:"grade"`
}

// Semester is an ordered list of courses. It owns its courses exclusively.
type Semester struct {
	ID      uuid.UUID `json:"id"`
	Courses []Course  `json:"courses"`
}

// Clone returns a deep copy of s.
func (s Semester) Clone() Semester {
	courses := make([]Course, len(s.Courses))
	copy(courses, s.Courses)
	return Semester{ID: s.ID, Courses: courses}
}

// Field names an editable course attribute.
type Field string

const (
	FieldName    Field = "name"
	FieldCredits Field = "credits"
	FieldGrade   Field = "grade"
)

// ParseCredits parses a credit weight and checks its range.
func ParseCredits(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidCredits, s)
	}
	if err := ValidateCredits(n); err != nil {
		return 0, err
	}
	return n, nil
}

// ValidateCredits checks that n is within [MinCredits, MaxCredits].
func ValidateCredits(n int) error {
	if n < MinCredits || n > MaxCredits {
		return fmt.Errorf("%w: %d outside %d-%d", ErrInvalidCredits, n, MinCredits, MaxCredits)
	}
	return nil
}

// ParseCoursePair parses a "credits:grade" pair such as "4:A-".
// The returned course has no ID or name.
func ParseCoursePair(s string) (Course, error) {
	creditsStr, gradeStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Course{}, fmt.Errorf("course %q: want credits:grade", s)
	}
	credits, err := ParseCredits(creditsStr)
	if err != nil {
		return Course{}, fmt.Errorf("course %q: %w", s, err)
	}
	g, err := grade.Parse(gradeStr)
	if err != nil {
		return Course{}, fmt.Errorf("course %q: %w", s, err)
	}
	return Course{Credits: credits, Grade: g}, nil
}

// ParseCourseList parses a comma-separated list of course pairs,
// e.g. "4:A,3:B+". An empty string yields no courses.
func ParseCourseList(s string) ([]Course, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	courses := make([]Course, 0, len(parts))
	for _, p := range parts {
		c, err := ParseCoursePair(p)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}
