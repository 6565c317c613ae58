package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/gpacalc/internal/gpa"
	"github.com/meltforce/gpacalc/internal/models"
)

// --- Tool definitions ---

var toolGetSummary = mcp.NewTool("get_summary",
	mcp.WithDescription("Return each semester's label, course count, credits and GPA, plus total credits and the cumulative GPA (CGPA)."),
)

var toolListSemesters = mcp.NewTool("list_semesters",
	mcp.WithDescription("List all semesters in order with their courses (id, name, credits, grade)."),
)

var toolAddSemester = mcp.NewTool("add_semester",
	mcp.WithDescription("Append a new empty semester. Returns the semester with its id."),
)

var toolAddCourse = mcp.NewTool("add_course",
	mcp.WithDescription("Add a course to a semester. The course starts unnamed with default credits and grade; use update_course to set them."),
	mcp.WithString("semester_id", mcp.Required(), mcp.Description("Semester id from list_semesters")),
)

var toolUpdateCourse = mcp.NewTool("update_course",
	mcp.WithDescription("Change one field of a course."),
	mcp.WithString("semester_id", mcp.Required(), mcp.Description("Semester id")),
	mcp.WithString("course_id", mcp.Required(), mcp.Description("Course id")),
	mcp.WithString("field", mcp.Required(), mcp.Description("Field to change"), mcp.Enum("name", "credits", "grade")),
	mcp.WithString("value", mcp.Required(), mcp.Description("New value: free text for name, 1-6 for credits, a letter grade (A, A-, B+, ... F) for grade")),
)

var toolDeleteCourse = mcp.NewTool("delete_course",
	mcp.WithDescription("Remove a course from a semester."),
	mcp.WithString("semester_id", mcp.Required(), mcp.Description("Semester id")),
	mcp.WithString("course_id", mcp.Required(), mcp.Description("Course id")),
)

var toolSetView = mcp.NewTool("set_view",
	mcp.WithDescription("Switch the display between the per-semester GPA view and the cumulative CGPA view."),
	mcp.WithString("mode", mcp.Required(), mcp.Description("View mode"), mcp.Enum("gpa", "cgpa")),
)

var toolComputeGPA = mcp.NewTool("compute_gpa",
	mcp.WithDescription("Compute GPAs without changing the roster. Each semester is a comma-separated list of credits:grade pairs; separate semesters with ';' (e.g. '4:A,3:B+; 3:A-')."),
	mcp.WithString("courses", mcp.Required(), mcp.Description("Semesters of credits:grade pairs")),
)

// --- Tool handlers ---

func (h *handlers) getSummary(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sum, err := h.ds.Summary(ctx)
	if err != nil {
		h.log.Error("mcp get_summary", "error", err)
		return mcp.NewToolResultError("summary failed: " + err.Error()), nil
	}
	return jsonResult(sum)
}

func (h *handlers) listSemesters(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sems, err := h.ds.Semesters(ctx)
	if err != nil {
		h.log.Error("mcp list_semesters", "error", err)
		return mcp.NewToolResultError("listing semesters failed: " + err.Error()), nil
	}
	return jsonResult(sems)
}

func (h *handlers) addSemester(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sem, err := h.ds.AddSemester(ctx)
	if err != nil {
		h.log.Error("mcp add_semester", "error", err)
		return mcp.NewToolResultError("adding semester failed: " + err.Error()), nil
	}
	return jsonResult(sem)
}

func (h *handlers) addCourse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	semID, err := requireID(req, "semester_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	course, err := h.ds.AddCourse(ctx, semID)
	if err != nil {
		return mcp.NewToolResultError("adding course failed: " + err.Error()), nil
	}
	return jsonResult(course)
}

func (h *handlers) updateCourse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	semID, err := requireID(req, "semester_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	courseID, err := requireID(req, "course_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	field, err := req.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError("field parameter is required"), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value parameter is required"), nil
	}

	course, err := h.ds.UpdateCourse(ctx, semID, courseID, models.Field(field), value)
	if err != nil {
		return mcp.NewToolResultError("updating course failed: " + err.Error()), nil
	}
	return jsonResult(course)
}

func (h *handlers) deleteCourse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	semID, err := requireID(req, "semester_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	courseID, err := requireID(req, "course_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.ds.DeleteCourse(ctx, semID, courseID); err != nil {
		return mcp.NewToolResultError("deleting course failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText("course deleted"), nil
}

func (h *handlers) setView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	modeStr, err := req.RequireString("mode")
	if err != nil {
		return mcp.NewToolResultError("mode parameter is required"), nil
	}
	mode, err := models.ParseViewMode(modeStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.ds.SetView(ctx, mode); err != nil {
		h.log.Error("mcp set_view", "error", err)
		return mcp.NewToolResultError("setting view failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText("view set to " + string(mode)), nil
}

func (h *handlers) computeGPA(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString("courses")
	if err != nil {
		return mcp.NewToolResultError("courses parameter is required"), nil
	}

	var semesters []models.Semester
	for _, part := range strings.Split(input, ";") {
		courses, err := models.ParseCourseList(part)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		semesters = append(semesters, models.Semester{Courses: courses})
	}

	gpas := make([]float64, len(semesters))
	for i, s := range semesters {
		gpas[i] = gpa.Compute(s.Courses)
	}
	return jsonResult(map[string]any{
		"semester_gpas": gpas,
		"cgpa":          gpa.ComputeCumulative(semesters),
	})
}

func requireID(req mcp.CallToolRequest, name string) (uuid.UUID, error) {
	s, err := req.RequireString(name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s parameter is required", name)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
