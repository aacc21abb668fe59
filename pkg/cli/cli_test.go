package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/getmockd/roster/pkg/client"
	"github.com/getmockd/roster/pkg/student"
	"github.com/getmockd/roster/pkg/viewstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory student records backend.
type fakeAPI struct {
	mu         sync.Mutex
	students   []student.Student
	requestIDs []string
	writes     int
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{students: []student.Student{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@uni.edu", Department: "CS", GPA: 98},
		{ID: 2, FirstName: "Alan", LastName: "Turing", Email: "alan@uni.edu", Department: "CS", GPA: 91},
		{ID: 3, FirstName: "Emmy", LastName: "Noether", Email: "emmy@uni.edu", Department: "Math", GPA: 95},
		{ID: 4, FirstName: "Carl", LastName: "Gauss", Email: "carl@uni.edu", Department: "Math", GPA: 72},
		{ID: 5, FirstName: "Marie", LastName: "Curie", Email: "marie@uni.edu", Department: "Physics", GPA: 88},
		{ID: 6, FirstName: "Niels", LastName: "Bohr", Email: "niels@uni.edu", Department: "Physics", GPA: 93},
		{ID: 7, FirstName: "Grace", LastName: "Hopper", Email: "grace@uni.edu", Department: "CS", GPA: 85},
	}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+client.StudentsPath, api.list)
	mux.HandleFunc("GET "+client.TopPerDepartmentPath, api.top)
	mux.HandleFunc("POST "+client.StudentsPath, api.create)
	mux.HandleFunc("PUT "+client.StudentsPath+"/{id}", api.update)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.requestIDs = append(api.requestIDs, r.Header.Get(client.RequestIDHeader))
		api.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return api, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (api *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	api.mu.Lock()
	defer api.mu.Unlock()
	q := r.URL.Query()
	out := []student.Student{}
	for _, s := range api.students {
		if id := q.Get(student.FieldID); id != "" && !strings.Contains(strconv.FormatInt(s.ID, 10), id) {
			continue
		}
		if gte := q.Get(client.ParamGPAGte); gte != "" {
			floor, _ := strconv.ParseFloat(gte, 64)
			if s.GPA < floor {
				continue
			}
		}
		out = append(out, s)
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *fakeAPI) top(w http.ResponseWriter, _ *http.Request) {
	api.mu.Lock()
	defer api.mu.Unlock()
	best := map[string]student.Student{}
	var order []string
	for _, s := range api.students {
		cur, ok := best[s.Department]
		if !ok {
			order = append(order, s.Department)
		}
		if s.GPA >= student.ExcellentGPA && (!ok || s.GPA > cur.GPA) {
			best[s.Department] = s
		}
	}
	out := []student.Student{}
	for _, d := range order {
		if s, ok := best[d]; ok {
			out = append(out, s)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *fakeAPI) create(w http.ResponseWriter, r *http.Request) {
	var in student.NewStudent
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_request", "message": err.Error()})
		return
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	api.writes++
	s := student.Student{
		ID: int64(len(api.students) + 1), FirstName: in.FirstName, LastName: in.LastName,
		Email: in.Email, Department: in.Department, GPA: in.GPA,
	}
	api.students = append(api.students, s)
	writeJSON(w, http.StatusCreated, s)
}

func (api *fakeAPI) update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	var in student.NewStudent
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_request", "message": err.Error()})
		return
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	for i, s := range api.students {
		if s.ID == id {
			api.writes++
			api.students[i] = student.Student{
				ID: id, FirstName: in.FirstName, LastName: in.LastName,
				Email: in.Email, Department: in.Department, GPA: in.GPA,
			}
			writeJSON(w, http.StatusOK, api.students[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": client.ErrCodeNotFound, "message": "student not found"})
}

// harness runs roster commands against one API and one state file.
type harness struct {
	t         *testing.T
	apiURL    string
	stateFile string
	last      *app
}

func newHarness(t *testing.T, apiURL string) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	for _, env := range []string{"ROSTER_API_URL", "ROSTER_TIMEOUT", "ROSTER_PAGE_SIZE", "ROSTER_PAGE_SIZES",
		"ROSTER_STATE_FILE", "ROSTER_LOG_LEVEL", "ROSTER_LOG_FORMAT", "ROSTER_LOG_FILE"} {
		t.Setenv(env, "")
	}
	return &harness{t: t, apiURL: apiURL, stateFile: filepath.Join(dir, "state.json")}
}

func (h *harness) run(args ...string) (string, string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(""), &out, &errOut)
	cmd := newRootCmd(a)
	cmd.SetArgs(append([]string{"--api-url", h.apiURL, "--state-file", h.stateFile, "--log-level", "error"}, args...))
	err := a.execute(h.t.Context(), cmd)
	h.last = a
	return out.String(), errOut.String(), err
}

func (h *harness) page(args ...string) listPage {
	h.t.Helper()
	out, _, err := h.run(append(args, "--json")...)
	require.NoError(h.t, err)
	var p listPage
	require.NoError(h.t, json.Unmarshal([]byte(out), &p), out)
	return p
}

func firstNames(rows []student.Student) []string {
	out := make([]string, len(rows))
	for i, s := range rows {
		out[i] = s.FirstName
	}
	return out
}

func TestStudents_PrintsFirstPage(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	out, _, err := h.run("students")
	require.NoError(t, err)

	assert.Contains(t, out, "ID ▲")
	assert.Contains(t, out, "Lovelace")
	assert.NotContains(t, out, "Hopper", "the 7th student is on page 2")
	assert.Contains(t, out, "Page 1 of 2 (7 rows)")
}

func TestStudents_FiltersArePersisted(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	p := h.page("students", "--filter", "department=math", "--sort", "gpa:desc")
	assert.Equal(t, 2, p.Total)
	assert.Equal(t, []string{"Emmy", "Carl"}, firstNames(p.Rows))
	assert.Equal(t, "gpa", p.SortBy)
	assert.Equal(t, "DESC", p.SortDir)
	assert.Equal(t, map[string]string{"department": "math"}, p.Filters)

	// next run starts from the saved state
	p = h.page("students")
	assert.Equal(t, 2, p.Total)
	assert.Equal(t, "gpa", p.SortBy)

	// other views are untouched
	p = h.page("students", "--excellent")
	assert.Empty(t, p.Filters)

	p = h.page("students", "--clear-filters", "--clear-sort")
	assert.Equal(t, 7, p.Total)
	assert.Equal(t, "id", p.SortBy, "clear sort returns to the view default")
	assert.Equal(t, "ASC", p.SortDir)
}

func TestStudents_FilterMatchesSubstringCaseInsensitive(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	// "cs" also matches Physics
	p := h.page("students", "--filter", "department=cs", "--page-size", "10")
	assert.Equal(t, []string{"Ada", "Alan", "Marie", "Niels", "Grace"}, firstNames(p.Rows))
}

func TestStudents_EmptyFilterClears(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	h.page("students", "--filter", "lastName=ur")
	p := h.page("students", "--filter", "lastName=")
	assert.Equal(t, 7, p.Total)
	assert.Empty(t, p.Filters)
}

func TestStudents_Excellent(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	p := h.page("students", "--excellent")
	assert.Equal(t, string(viewstate.ExcellentStudents), p.View)
	assert.Equal(t, []string{"Ada", "Emmy", "Niels", "Alan"}, firstNames(p.Rows))
}

func TestStudents_Paging(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	p := h.page("students", "--page", "2")
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, []string{"Niels", "Grace"}, firstNames(p.Rows))

	p = h.page("students", "--page-size", "10")
	assert.Equal(t, 1, p.PageCount)
	assert.Len(t, p.Rows, 7)

	out, errOut, err := h.run("students", "--page", "9", "--json")
	require.NoError(t, err)
	assert.Contains(t, errOut, "out of range")
	var clamped listPage
	require.NoError(t, json.Unmarshal([]byte(out), &clamped))
	assert.Equal(t, 2, clamped.Page)
}

func TestStudents_InvalidFlags(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"page size not offered", []string{"--page-size", "7"}, "not one of"},
		{"unknown filter field", []string{"--filter", "nickname=x"}, `unknown field "nickname"`},
		{"malformed filter", []string{"--filter", "gpa"}, "invalid filter"},
		{"bad direction", []string{"--sort", "gpa:sideways"}, "sideways"},
		{"bad where", []string{"--where", "gpa >>"}, "invalid --where"},
		{"page zero", []string{"--page", "0"}, "at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := h.run(append([]string{"students"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStudents_Where(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	p := h.page("students", "--where", `gpa >= 95 || department == "Physics"`)
	assert.Equal(t, []string{"Ada", "Emmy", "Marie", "Niels"}, firstNames(p.Rows))
}

func TestStudents_SendsRequestID(t *testing.T) {
	api, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	_, _, err := h.run("students")
	require.NoError(t, err)

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.requestIDs, 1)
	assert.NotEmpty(t, api.requestIDs[0])
}

func TestStudents_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	h := newHarness(t, url)

	_, _, err := h.run("students")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Suggestions")
	assert.Contains(t, err.Error(), "roster config")
}

func TestFailedCommandClosesLogFile(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	h := newHarness(t, url)
	logFile := filepath.Join(t.TempDir(), "logs", "roster.log")

	_, _, err := h.run("students", "--log-file", logFile)
	require.Error(t, err)
	require.NotNil(t, h.last)
	assert.Nil(t, h.last.closeLog, "log file left open after a failed command")
	assert.FileExists(t, logFile)
}

func TestHonor_TopPerDepartmentIsSaved(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	p := h.page("honor")
	assert.Equal(t, 4, p.Total)
	assert.Equal(t, "gpa", p.SortBy)

	p = h.page("honor", "--top")
	assert.Equal(t, []string{"Ada", "Emmy", "Niels"}, firstNames(p.Rows))

	p = h.page("honor")
	assert.Equal(t, 3, p.Total)

	p = h.page("honor", "--all")
	assert.Equal(t, 4, p.Total)

	_, _, err := h.run("honor", "--top", "--all")
	assert.Error(t, err)
}

func TestHonor_RejectsColumnsItDoesNotShow(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	_, _, err := h.run("honor", "--sort", "firstName")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestAdd_WithFlags(t *testing.T) {
	api, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	out, _, err := h.run("add",
		"--first-name", " Katherine ", "--last-name", "Johnson",
		"--email", "kj@uni.edu", "--department", "Math", "--gpa", "99.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Student added successfully")
	assert.Contains(t, out, "Katherine Johnson")

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.students, 8)
	assert.Equal(t, "Katherine", api.students[7].FirstName)
	assert.InDelta(t, 99.5, api.students[7].GPA, 0.0001)
}

func TestAdd_ValidationBlocksSubmit(t *testing.T) {
	api, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	_, _, err := h.run("add", "--first-name", "Ada", "--email", "nope", "--gpa", "120")
	require.Error(t, err)
	for _, want := range []string{
		student.MsgLastNameRequired,
		student.MsgEmailInvalid,
		student.MsgDepartmentRequired,
		student.MsgGPARange,
	} {
		assert.Contains(t, err.Error(), want)
	}
	assert.NotContains(t, err.Error(), student.MsgFirstNameRequired)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Zero(t, api.writes)
}

func TestAdd_NonFiniteGPAIsNotANumber(t *testing.T) {
	api, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	for _, gpa := range []string{"NaN", "Inf", "-Inf"} {
		_, _, err := h.run("add", "--first-name", "Ada", "--last-name", "Lovelace",
			"--email", "ada@uni.edu", "--department", "CS", "--gpa", gpa)
		require.Error(t, err, gpa)
		assert.Contains(t, err.Error(), student.MsgGPANotNumber, gpa)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Zero(t, api.writes)
}

func TestAdd_NoFlagsNeedsTerminal(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	_, _, err := h.run("add")
	assert.True(t, errors.Is(err, ErrNotInteractive), "got %v", err)
}

func TestEdit(t *testing.T) {
	api, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	out, _, err := h.run("edit", "2", "--gpa", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "Student updated successfully")

	api.mu.Lock()
	assert.InDelta(t, 99.0, api.students[1].GPA, 0.0001)
	assert.Equal(t, "Turing", api.students[1].LastName)
	api.mu.Unlock()

	_, _, err = h.run("edit", "2", "--gpa", "99")
	assert.ErrorIs(t, err, ErrNoChanges)

	_, _, err = h.run("edit", "77", "--gpa", "50")
	assert.ErrorIs(t, err, ErrStudentNotFound)

	_, _, err = h.run("edit", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid student ID")
}

func TestEdit_JSON(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	out, _, err := h.run("edit", "3", "--department", "Physics", "--json")
	require.NoError(t, err)
	var got student.Student
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, "Physics", got.Department)
}

func TestFilters_ShowAndReset(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)

	h.page("students", "--filter", "department=math")
	h.page("honor", "--top")

	out, _, err := h.run("filters", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `department="math"`)
	assert.Contains(t, out, "true")

	_, _, err = h.run("filters", "reset", "all")
	require.NoError(t, err)

	out, _, err = h.run("filters", "show", "--json")
	require.NoError(t, err)
	var state viewstate.AppState
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Empty(t, state.AllStudents.Dynamic)
	assert.True(t, state.Honor.TopPerDepartment, "resetting one view leaves the others")

	_, _, err = h.run("filters", "reset")
	require.NoError(t, err)
	out, _, err = h.run("filters", "show", "honor", "--json")
	require.NoError(t, err)
	var honor viewstate.HonorFilters
	require.NoError(t, json.Unmarshal([]byte(out), &honor))
	assert.False(t, honor.TopPerDepartment)

	_, _, err = h.run("filters", "show", "bogus")
	assert.Error(t, err)
}

func TestConfig_ShowsSources(t *testing.T) {
	_, srv := newFakeAPI(t)
	h := newHarness(t, srv.URL)
	t.Setenv("ROSTER_PAGE_SIZE", "10")

	out, _, err := h.run("config", "--json")
	require.NoError(t, err)
	var entries []configEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))

	got := map[string]configEntry{}
	for _, e := range entries {
		got[e.Key] = e
	}
	assert.Equal(t, configEntry{Key: "apiUrl", Value: srv.URL, Source: "flag"}, got["apiUrl"])
	assert.Equal(t, configEntry{Key: "pageSize", Value: "10", Source: "env"}, got["pageSize"])
	assert.Equal(t, "default", got["timeout"].Source)
}

func TestConfig_InvalidIsRejected(t *testing.T) {
	h := newHarness(t, "ftp://example.com")

	_, _, err := h.run("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestVersion(t *testing.T) {
	h := newHarness(t, "http://localhost:1")

	out, _, err := h.run("version")
	require.NoError(t, err)
	assert.Contains(t, out, "roster "+Version)
}

func TestTUI_RejectsUnknownView(t *testing.T) {
	h := newHarness(t, "http://localhost:1")

	_, _, err := h.run("tui", "--view", "nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown view")
}

func TestCompileWhere(t *testing.T) {
	w, err := compileWhere("")
	require.NoError(t, err)
	assert.Nil(t, w)

	records := []student.Student{{ID: 1, GPA: 90}, {ID: 2, GPA: 70}}
	got, err := w.apply(records)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	w, err = compileWhere(`id == 2`)
	require.NoError(t, err)
	got, err = w.apply(records)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	_, err = compileWhere(`gpa + 1`)
	assert.Error(t, err, "non-boolean expressions are rejected")
}
