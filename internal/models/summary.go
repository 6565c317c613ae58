package models

import "github.com/google/uuid"

// SemesterSummary is the display row for one semester.
type SemesterSummary struct {
	ID      uuid.UUID `json:"id"`
	Label   string    `json:"label"`
	Courses int       `json:"courses"`
	Credits int       `json:"credits"`
	GPA     float64   `json:"gpa"`
}

// Summary is everything a front end needs to render the calculator.
type Summary struct {
	View         ViewMode          `json:"view"`
	Semesters    []SemesterSummary `json:"semesters"`
	TotalCredits int               `json:"total_credits"`
	CGPA         float64           `json:"cgpa"`
}
