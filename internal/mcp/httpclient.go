package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/gpacalc/internal/models"
)

// HTTPClient implements DataSource by calling the gpacalc REST API.
// Used when the MCP binary runs locally (stdio) but the roster lives in a
// running gpacalc server.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey may
// be empty when the server does not require one.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends body (if any) as JSON and decodes a JSON response into out (if any).
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, wantStatus int) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("httpclient: encode body: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("httpclient: %s %s returned %d: %s", method, path, resp.StatusCode, e.Error)
		}
		return fmt.Errorf("httpclient: %s %s returned %d: %s", method, path, resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("httpclient: decode %s: %w", path, err)
		}
	}
	return nil
}

func coursePath(semesterID, courseID uuid.UUID) string {
	return "/api/v1/semesters/" + semesterID.String() + "/courses/" + courseID.String()
}

func (c *HTTPClient) Summary(ctx context.Context) (*models.Summary, error) {
	var s models.Summary
	if err := c.do(ctx, http.MethodGet, "/api/v1/summary", nil, &s, http.StatusOK); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Semesters(ctx context.Context) ([]models.Semester, error) {
	var sems []models.Semester
	if err := c.do(ctx, http.MethodGet, "/api/v1/semesters", nil, &sems, http.StatusOK); err != nil {
		return nil, err
	}
	return sems, nil
}

func (c *HTTPClient) AddSemester(ctx context.Context) (*models.Semester, error) {
	var s models.Semester
	if err := c.do(ctx, http.MethodPost, "/api/v1/semesters", nil, &s, http.StatusCreated); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) AddCourse(ctx context.Context, semesterID uuid.UUID) (*models.Course, error) {
	var course models.Course
	path := "/api/v1/semesters/" + semesterID.String() + "/courses"
	if err := c.do(ctx, http.MethodPost, path, nil, &course, http.StatusCreated); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *HTTPClient) UpdateCourse(ctx context.Context, semesterID, courseID uuid.UUID, field models.Field, value string) (*models.Course, error) {
	body := map[string]string{"field": string(field), "value": value}
	var course models.Course
	if err := c.do(ctx, http.MethodPatch, coursePath(semesterID, courseID), body, &course, http.StatusOK); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *HTTPClient) DeleteCourse(ctx context.Context, semesterID, courseID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, coursePath(semesterID, courseID), nil, nil, http.StatusNoContent)
}

func (c *HTTPClient) SetView(ctx context.Context, mode models.ViewMode) error {
	body := map[string]string{"mode": string(mode)}
	return c.do(ctx, http.MethodPut, "/api/v1/view", body, nil, http.StatusOK)
}
