// Package client talks to the student records REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/roster/pkg/student"
	"github.com/getmockd/roster/pkg/util"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries a per-request correlation ID.
	RequestIDHeader = "X-Request-ID"

	// StudentsPath is the collection endpoint, relative to the base URL.
	StudentsPath = "/api/v1/students"

	// TopPerDepartmentPath lists the best honor candidate of each department.
	TopPerDepartmentPath = StudentsPath + "/honor-candidates/top-by-department"

	// DefaultTimeout bounds every request unless WithTimeout overrides it.
	DefaultTimeout = 30 * time.Second
)

// Query parameters understood by the list endpoint.
const (
	ParamGPAGte  = "gpa_gte"
	ParamGPALte  = "gpa_lte"
	ParamSortBy  = "sortBy"
	ParamSortDir = "sortDir"
)

// StudentClient is the record source of the roster views.
type StudentClient interface {
	// List returns the students matching params. Keys are field names plus
	// gpa_gte, gpa_lte, sortBy and sortDir.
	List(ctx context.Context, params map[string]string) ([]student.Student, error)
	// TopPerDepartment returns the top honor candidate of every department.
	TopPerDepartment(ctx context.Context) ([]student.Student, error)
	// Create adds a student and returns it with its assigned ID.
	Create(ctx context.Context, s student.NewStudent) (*student.Student, error)
	// Update replaces the editable fields of student id.
	Update(ctx context.Context, id int64, s student.NewStudent) (*student.Student, error)
}

// ExcellentParams is the list query of the excellent students grid.
func ExcellentParams() map[string]string {
	return map[string]string{
		ParamGPAGte:  strconv.Itoa(student.ExcellentGPA),
		ParamSortBy:  student.FieldGPA,
		ParamSortDir: "DESC",
	}
}

// HonorParams is the list query of the honor candidates grid.
func HonorParams() map[string]string {
	return map[string]string{ParamGPAGte: strconv.Itoa(student.ExcellentGPA)}
}

// httpClient implements StudentClient over HTTP.
type httpClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	newID      func() string
}

// ClientOption configures a client.
type ClientOption func(*httpClient)

// WithTimeout sets the HTTP timeout for the client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *httpClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *httpClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *httpClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...ClientOption) StudentClient {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.New(slog.DiscardHandler),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the students matching params.
func (c *httpClient) List(ctx context.Context, params map[string]string) ([]student.Student, error) {
	path := StudentsPath
	if q := encodeParams(params); q != "" {
		path += "?" + q
	}
	return c.getStudents(ctx, path)
}

// TopPerDepartment returns the top honor candidate of every department.
func (c *httpClient) TopPerDepartment(ctx context.Context) ([]student.Student, error) {
	return c.getStudents(ctx, TopPerDepartmentPath)
}

// Create adds a student.
func (c *httpClient) Create(ctx context.Context, s student.NewStudent) (*student.Student, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode student: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, StudentsPath, body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.parseError(resp)
	}

	var created student.Student
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &created, nil
}

// Update replaces the editable fields of student id.
func (c *httpClient) Update(ctx context.Context, id int64, s student.NewStudent) (*student.Student, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode student: %w", err)
	}

	path := StudentsPath + "/" + strconv.FormatInt(id, 10)
	resp, err := c.doRequest(ctx, http.MethodPut, path, body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  ErrCodeNotFound,
			Message:    fmt.Sprintf("student not found: %d", id),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var updated student.Student
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &updated, nil
}

func (c *httpClient) getStudents(ctx context.Context, path string) ([]student.Student, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var students []student.Student
	if err := json.NewDecoder(resp.Body).Decode(&students); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if students == nil {
		students = []student.Student{}
	}
	return students, nil
}

// doRequest performs an HTTP request.
func (c *httpClient) doRequest(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := c.newID()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "requestId", requestID, "error", err)
		return nil, &APIError{
			StatusCode: 0,
			ErrorCode:  ErrCodeConnection,
			Message:    fmt.Sprintf("cannot connect to student API at %s: %v", c.baseURL, err),
			Err:        err,
		}
	}
	c.logger.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"requestId", requestID,
		"duration", time.Since(start),
	)
	return resp, nil
}

// parseError parses an error response from the API.
func (c *httpClient) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		code := errResp.Error
		if code == "" {
			code = ErrCodeUnknown
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  code,
			Message:    errResp.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		ErrorCode:  ErrCodeUnknown,
		Message:    fmt.Sprintf("server returned status %d: %s", resp.StatusCode, util.Truncate(strings.TrimSpace(string(body)), util.MaxErrorBodySize)),
	}
}

// encodeParams drops empty values and encodes the rest in key order.
func encodeParams(params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q.Encode()
}
