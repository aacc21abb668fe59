package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/getmockd/roster/pkg/student"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_EncodesParams(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotAccept, gotRequestID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 3, "firstName": "Ada", "lastName": "Lovelace", "email": "ada@x.edu", "department": "CS", "gpa": 97.5}
		]`))
	}))
	defer ts.Close()

	c := New(ts.URL + "/")
	students, err := c.List(context.Background(), ExcellentParams())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if gotPath != StudentsPath {
		t.Errorf("List() called %q, want %q", gotPath, StudentsPath)
	}
	if gotQuery != "gpa_gte=90&sortBy=gpa&sortDir=DESC" {
		t.Errorf("List() query = %q", gotQuery)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
	if _, err := uuid.Parse(gotRequestID); err != nil {
		t.Errorf("%s = %q is not a UUID: %v", RequestIDHeader, gotRequestID, err)
	}

	require.Len(t, students, 1)
	assert.Equal(t, student.Student{ID: 3, FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.edu", Department: "CS", GPA: 97.5}, students[0])
}

func TestList_NoParamsAndEmptyValues(t *testing.T) {
	t.Parallel()

	var gotURI string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		_, _ = w.Write([]byte(`null`))
	}))
	defer ts.Close()

	students, err := New(ts.URL).List(context.Background(), map[string]string{"department": ""})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotURI != StudentsPath {
		t.Errorf("List() requested %q, want %q", gotURI, StudentsPath)
	}
	if students == nil || len(students) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", students)
	}
}

func TestTopPerDepartment(t *testing.T) {
	t.Parallel()

	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[{"id":1,"department":"CS","gpa":99},{"id":2,"department":"Math","gpa":96}]`))
	}))
	defer ts.Close()

	students, err := New(ts.URL).TopPerDepartment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/students/honor-candidates/top-by-department", gotPath)
	assert.Len(t, students, 2)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	var gotMethod, gotContentType string
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":42,"firstName":"Grace","lastName":"Hopper","email":"grace@x.edu","department":"CS","gpa":92}`))
	}))
	defer ts.Close()

	in := student.NewStudent{FirstName: "Grace", LastName: "Hopper", Email: "grace@x.edu", Department: "CS", GPA: 92}
	created, err := New(ts.URL).Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{
		"firstName": "Grace", "lastName": "Hopper", "email": "grace@x.edu", "department": "CS", "gpa": 92.0,
	}, gotBody)
	assert.Equal(t, int64(42), created.ID)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if strings.HasSuffix(r.URL.Path, "/404") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"firstName":"Ada","gpa":91}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	updated, err := c.Update(context.Background(), 7, student.NewStudent{FirstName: "Ada", GPA: 91})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/v1/students/7", gotPath)
	assert.Equal(t, 91.0, updated.GPA)

	_, err = c.Update(context.Background(), 404, student.NewStudent{})
	if !IsNotFound(err) {
		t.Errorf("Update() error = %v, want not found", err)
	}
}

func TestParseError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "structured",
			status:   http.StatusBadRequest,
			body:     `{"error":"validation_failed","message":"email already exists"}`,
			wantCode: "validation_failed",
			wantMsg:  "email already exists",
		},
		{
			name:     "message only",
			status:   http.StatusConflict,
			body:     `{"message":"conflict"}`,
			wantCode: ErrCodeUnknown,
			wantMsg:  "conflict",
		},
		{
			name:     "plain text",
			status:   http.StatusInternalServerError,
			body:     "boom\n",
			wantCode: ErrCodeUnknown,
			wantMsg:  "server returned status 500: boom",
		},
		{
			name:     "long html page",
			status:   http.StatusBadGateway,
			body:     "<html>" + strings.Repeat("x", 600) + "</html>",
			wantCode: ErrCodeUnknown,
			wantMsg:  "server returned status 502: <html>" + strings.Repeat("x", 506) + "...(truncated)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := New(ts.URL).List(context.Background(), nil)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("List() error = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.ErrorCode != tt.wantCode {
				t.Errorf("ErrorCode = %q, want %q", apiErr.ErrorCode, tt.wantCode)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestConnectionError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := New(url, WithTimeout(time.Second)).List(context.Background(), nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrCodeConnection, apiErr.ErrorCode)
	assert.NotNil(t, errors.Unwrap(err))

	msg := FormatConnectionError(err)
	assert.Contains(t, msg, "Suggestions:")
	assert.Contains(t, msg, "roster config")

	assert.Equal(t, "plain", FormatConnectionError(errors.New("plain")))
}

func TestContextCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(ts.URL).List(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParams(t *testing.T) {
	t.Parallel()

	assert.Equal(t, map[string]string{"gpa_gte": "90", "sortBy": "gpa", "sortDir": "DESC"}, ExcellentParams())
	assert.Equal(t, map[string]string{"gpa_gte": "90"}, HonorParams())
}
