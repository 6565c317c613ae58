package mcp

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/meltforce/gpacalc/internal/grade"
	"github.com/meltforce/gpacalc/internal/models"
	"github.com/meltforce/gpacalc/internal/roster"
	"github.com/meltforce/gpacalc/internal/server"
)

// newRemote starts a real REST server around a fresh roster and returns a
// client pointed at it.
func newRemote(t *testing.T, apiKey, clientKey string) (*HTTPClient, *roster.Roster) {
	t.Helper()
	r := roster.New(roster.DefaultSettings)
	srv := server.New(r, apiKey, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return NewHTTPClient(ts.URL+"/", clientKey), r
}

// TestHTTPClientRoundTrip verifies every DataSource method against the REST API.
func TestHTTPClientRoundTrip(t *testing.T) {
	c, r := newRemote(t, "", "")
	ctx := context.Background()

	sems, err := c.Semesters(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sems) != 1 {
		t.Fatalf("got %d semesters, want 1", len(sems))
	}
	semID := sems[0].ID

	course, err := c.AddCourse(ctx, semID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.UpdateCourse(ctx, semID, course.ID, models.FieldCredits, "4"); err != nil {
		t.Fatal(err)
	}
	updated, err := c.UpdateCourse(ctx, semID, course.ID, models.FieldGrade, "B")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Credits != 4 || updated.Grade != grade.B {
		t.Errorf("course = %+v, want 4 credits of B", updated)
	}

	second, err := c.AddSemester(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddCourse(ctx, second.ID); err != nil {
		t.Fatal(err)
	}

	sum, err := c.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// 4 credits of B and 3 of A: 24 / 7
	if sum.CGPA != 3.43 || len(sum.Semesters) != 2 || sum.Semesters[1].Label != "Semester 2" {
		t.Errorf("summary = %+v", sum)
	}

	if err := c.SetView(ctx, models.ViewCumulative); err != nil {
		t.Fatal(err)
	}
	if r.View() != models.ViewCumulative {
		t.Errorf("view = %q, want cgpa", r.View())
	}

	if err := c.DeleteCourse(ctx, semID, course.ID); err != nil {
		t.Fatal(err)
	}
	if r.CGPA() != 4.0 {
		t.Errorf("CGPA after delete = %v, want 4", r.CGPA())
	}
}

// TestHTTPClientErrors verifies server error messages surface in client errors.
func TestHTTPClientErrors(t *testing.T) {
	c, r := newRemote(t, "", "")
	ctx := context.Background()

	_, err := c.AddCourse(ctx, uuid.New())
	if err == nil || !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "semester not found") {
		t.Errorf("error = %v, want 404 semester not found", err)
	}

	semID := r.Semesters()[0].ID
	course, _ := r.AddCourse(semID)
	_, err = c.UpdateCourse(ctx, semID, course.ID, models.FieldGrade, "Z")
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Errorf("error = %v, want 400", err)
	}
}

// TestHTTPClientAPIKey verifies the client sends its key on mutations.
func TestHTTPClientAPIKey(t *testing.T) {
	c, _ := newRemote(t, "secret", "secret")
	if _, err := c.AddSemester(context.Background()); err != nil {
		t.Errorf("with key: %v", err)
	}

	c, _ = newRemote(t, "secret", "")
	if _, err := c.AddSemester(context.Background()); err == nil {
		t.Error("expected error without key")
	}
}

func TestHTTPClientUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewHTTPClient(url, "").Summary(context.Background())
	if err == nil {
		t.Fatal("expected error for closed server")
	}
}
