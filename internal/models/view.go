package models

import "fmt"

// ViewMode selects which aggregate a front end shows. Both values are always
// valid and switching between them does not touch the roster.
type ViewMode string

const (
	ViewSemester   ViewMode = "gpa"
	ViewCumulative ViewMode = "cgpa"
)

// ParseViewMode accepts "gpa" or "cgpa". An empty string selects the
// per-semester view.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewSemester, "":
		return ViewSemester, nil
	case ViewCumulative:
		return ViewCumulative, nil
	}
	return "", fmt.Errorf("unknown view mode %q (want gpa or cgpa)", s)
}

// Toggle returns the other view mode.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewCumulative {
		return ViewSemester
	}
	return ViewCumulative
}
