// Package gpa computes credit-weighted grade-point averages.
//
// Grade points are summed as integer tenths, so a result is only rounded
// once: when Totals.GPA converts the exact ratio to two decimal places.
package gpa

import "github.com/meltforce/gpacalc/internal/models"

// Totals accumulates the weighted points and credits of a set of courses.
type Totals struct {
	Credits int `json:"credits"`
	// Tenths is Σ credits × grade points × 10.
	Tenths int `json:"-"`
}

// Tally sums the credits and weighted grade points of courses.
func Tally(courses []models.Course) Totals {
	var t Totals
	for _, c := range courses {
		t.Credits += c.Credits
		t.Tenths += c.Credits * c.Grade.Tenths()
	}
	return t
}

// Add combines two tallies. Adding per-semester totals gives the same result
// as tallying the flattened course list.
func (t Totals) Add(o Totals) Totals {
	return Totals{Credits: t.Credits + o.Credits, Tenths: t.Tenths + o.Tenths}
}

// Points returns Σ credits × grade points.
func (t Totals) Points() float64 {
	return float64(t.Tenths) / 10
}

// GPA returns Points/Credits rounded half-up to two decimals, or 0 when no
// credits have been counted.
func (t Totals) GPA() float64 {
	if t.Credits <= 0 {
		return 0
	}
	// Tenths*10 / Credits is the average in hundredths.
	return float64(roundDiv(t.Tenths*10, t.Credits)) / 100
}

// Compute returns the weighted GPA of courses. An empty list yields 0.
func Compute(courses []models.Course) float64 {
	if len(courses) == 0 {
		return 0
	}
	return Tally(courses).GPA()
}

// ComputeCumulative returns the GPA over every course of every semester.
func ComputeCumulative(semesters []models.Semester) float64 {
	return Compute(Flatten(semesters))
}

// Flatten concatenates the courses of semesters in roster order.
func Flatten(semesters []models.Semester) []models.Course {
	n := 0
	for _, s := range semesters {
		n += len(s.Courses)
	}
	all := make([]models.Course, 0, n)
	for _, s := range semesters {
		all = append(all, s.Courses...)
	}
	return all
}

// roundDiv divides n by a positive d, rounding halves away from zero.
func roundDiv(n, d int) int {
	if n < 0 {
		return -((-2*n + d) / (2 * d))
	}
	return (2*n + d) / (2 * d)
}
