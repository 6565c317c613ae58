package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("gpacalc", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("GPA calculator. Semesters hold courses with a credit weight (1-6) and a letter grade (A to F on a 4.0 scale). Use get_summary for semester GPAs and the cumulative GPA, and list_semesters for IDs needed by the editing tools."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetSummary, Handler: h.getSummary},
		server.ServerTool{Tool: toolListSemesters, Handler: h.listSemesters},
		server.ServerTool{Tool: toolAddSemester, Handler: h.addSemester},
		server.ServerTool{Tool: toolAddCourse, Handler: h.addCourse},
		server.ServerTool{Tool: toolUpdateCourse, Handler: h.updateCourse},
		server.ServerTool{Tool: toolDeleteCourse, Handler: h.deleteCourse},
		server.ServerTool{Tool: toolSetView, Handler: h.setView},
		server.ServerTool{Tool: toolComputeGPA, Handler: h.computeGPA},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resGradeScale, Handler: h.gradeScale},
		server.ServerResource{Resource: resSummary, Handler: h.summary},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resGradeScale = mcp.NewResource(
	"gpacalc://grade_scale",
	"Grade Scale",
	mcp.WithResourceDescription("Letter grades and their grade-point values"),
	mcp.WithMIMEType("application/json"),
)

var resSummary = mcp.NewResource(
	"gpacalc://summary",
	"Summary",
	mcp.WithResourceDescription("Per-semester GPAs, total credits and the cumulative GPA"),
	mcp.WithMIMEType("application/json"),
)
