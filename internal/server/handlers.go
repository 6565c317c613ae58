package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/gpacalc/internal/gpa"
	"github.com/meltforce/gpacalc/internal/grade"
	"github.com/meltforce/gpacalc/internal/models"
	"github.com/meltforce/gpacalc/internal/roster"
)

// SemesterDetail is a semester together with its GPA.
type SemesterDetail struct {
	models.Semester
	Label   string  `json:"label"`
	Credits int     `json:"credits"`
	GPA     float64 `json:"gpa"`
}

// CourseUpdate is the body of a course PATCH. Value may be a JSON string or
// number; it is passed on as the raw form value.
type CourseUpdate struct {
	Field models.Field    `json:"field"`
	Value json.RawMessage `json:"value"`
}

// CalcCourse is one course in a stateless calculation request.
type CalcCourse struct {
	Credits int    `json:"credits"`
	Grade   string `json:"grade"`
}

// CalcRequest holds semesters of courses for POST /api/v1/calculate.
type CalcRequest struct {
	Semesters [][]CalcCourse `json:"semesters"`
}

// CalcResult is the response of POST /api/v1/calculate.
type CalcResult struct {
	Semesters    []models.SemesterSummary `json:"semesters"`
	TotalCredits int                      `json:"total_credits"`
	CGPA         float64                  `json:"cgpa"`
}

func (s *Server) handleGrades(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, grade.Scale())
}

func (s *Server) handleListSemesters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.roster.Semesters())
}

func (s *Server) handleGetSemester(w http.ResponseWriter, r *http.Request) {
	semID, ok := parseID(w, r, "semesterID")
	if !ok {
		return
	}

	sem, err := s.roster.Semester(semID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	detail := SemesterDetail{Semester: sem, GPA: gpa.Compute(sem.Courses)}
	detail.Credits = gpa.Tally(sem.Courses).Credits
	// Semesters are never removed, so the label found here is stable.
	for _, row := range s.roster.Summary().Semesters {
		if row.ID == semID {
			detail.Label = row.Label
			break
		}
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.roster.Summary())
}

func (s *Server) handleAddSemester(w http.ResponseWriter, r *http.Request) {
	sem := s.roster.AddSemester()
	s.log.Debug("semester added", "semester_id", sem.ID)
	writeJSON(w, http.StatusCreated, sem)
}

func (s *Server) handleAddCourse(w http.ResponseWriter, r *http.Request) {
	semID, ok := parseID(w, r, "semesterID")
	if !ok {
		return
	}

	c, err := s.roster.AddCourse(semID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Debug("course added", "semester_id", semID, "course_id", c.ID)
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	semID, ok := parseID(w, r, "semesterID")
	if !ok {
		return
	}
	courseID, ok := parseID(w, r, "courseID")
	if !ok {
		return
	}

	var body CourseUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	value, err := rawValue(body.Value)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	c, err := s.roster.UpdateCourse(semID, courseID, body.Field, value)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	semID, ok := parseID(w, r, "semesterID")
	if !ok {
		return
	}
	courseID, ok := parseID(w, r, "courseID")
	if !ok {
		return
	}

	if err := s.roster.DeleteCourse(semID, courseID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]models.ViewMode{"mode": s.roster.View()})
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	mode, err := models.ParseViewMode(body.Mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.roster.SetView(mode); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]models.ViewMode{"mode": mode})
}

func (s *Server) handleToggleView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]models.ViewMode{"mode": s.roster.ToggleView()})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	semesters, err := req.toSemesters()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, Calculate(semesters))
}

// Calculate summarizes semesters without touching any roster.
func Calculate(semesters []models.Semester) CalcResult {
	res := CalcResult{Semesters: make([]models.SemesterSummary, 0, len(semesters))}
	for i, sem := range semesters {
		res.Semesters = append(res.Semesters, models.SemesterSummary{
			Label:   fmt.Sprintf("Semester %d", i+1),
			Courses: len(sem.Courses),
			Credits: gpa.Tally(sem.Courses).Credits,
			GPA:     gpa.Compute(sem.Courses),
		})
		res.TotalCredits += res.Semesters[i].Credits
	}
	res.CGPA = gpa.ComputeCumulative(semesters)
	return res
}

func (req CalcRequest) toSemesters() ([]models.Semester, error) {
	out := make([]models.Semester, 0, len(req.Semesters))
	for i, courses := range req.Semesters {
		sem := models.Semester{Courses: make([]models.Course, 0, len(courses))}
		for j, c := range courses {
			if err := models.ValidateCredits(c.Credits); err != nil {
				return nil, fmt.Errorf("semester %d course %d: %w", i+1, j+1, err)
			}
			g, err := grade.Parse(c.Grade)
			if err != nil {
				return nil, fmt.Errorf("semester %d course %d: %w", i+1, j+1, err)
			}
			sem.Courses = append(sem.Courses, models.Course{Credits: c.Credits, Grade: g})
		}
		out = append(out, sem)
	}
	return out, nil
}

// writeError maps roster errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, roster.ErrSemesterNotFound), errors.Is(err, roster.ErrCourseNotFound):
		status = http.StatusNotFound
	case errors.Is(err, roster.ErrUnknownField),
		errors.Is(err, models.ErrInvalidCredits),
		errors.Is(err, grade.ErrUnknownGrade):
		status = http.StatusBadRequest
	default:
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

// rawValue turns a JSON string or number into the form value it represents.
func rawValue(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errors.New("value is required")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("invalid value: %w", err)
		}
		return s, nil
	}
	return string(raw), nil
}
