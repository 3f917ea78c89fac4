package basecamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBasecamp serves the project and to-do endpoints the client hits,
// recording every request for later assertions.
type fakeBasecamp struct {
	t *testing.T

	mu       sync.Mutex
	requests []string

	projects     []map[string]any
	projectsCode int

	// todoPages[n] is the summary list returned for ?page=n+1.
	todoPages [][]int64
	todos     map[int64]map[string]any
	detailErr map[int64]int

	server *httptest.Server
}

func newFakeBasecamp(t *testing.T) *fakeBasecamp {
	f := &fakeBasecamp{
		t:         t,
		todos:     make(map[int64]map[string]any),
		detailErr: make(map[int64]int),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeBasecamp) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.Path+"?"+r.URL.RawQuery)
	f.mu.Unlock()

	switch {
	case r.URL.Path == "/api/v1/projects.json":
		if f.projectsCode != 0 {
			w.WriteHeader(f.projectsCode)
			return
		}
		writeJSON(f.t, w, f.projects)

	case r.URL.Path == "/api/v1/projects/42/todos.json":
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		var ids []int64
		if page >= 1 && page <= len(f.todoPages) {
			ids = f.todoPages[page-1]
		}
		summaries := make([]map[string]any, 0, len(ids))
		for _, id := range ids {
			summaries = append(summaries, map[string]any{
				"id":  id,
				"url": fmt.Sprintf("%s/api/v1/todos/%d.json", f.server.URL, id),
			})
		}
		writeJSON(f.t, w, summaries)

	default:
		var id int64
		if _, err := fmt.Sscanf(r.URL.Path, "/api/v1/todos/%d.json", &id); err == nil {
			if code, ok := f.detailErr[id]; ok {
				w.WriteHeader(code)
				return
			}
			if todo, ok := f.todos[id]; ok {
				writeJSON(f.t, w, todo)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeBasecamp) client() *Client {
	return NewClient(&Config{
		URL:      f.server.URL,
		Username: "john@example.com",
		Password: "secret",
	})
}

func (f *fakeBasecamp) requestCount(substr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, req := range f.requests {
		if req == substr {
			count++
		}
	}
	return count
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func simpleTodo(id int64, content string) map[string]any {
	return map[string]any{
		"id":         id,
		"content":    content,
		"app_url":    fmt.Sprintf("https://basecamp.example.com/todos/%d", id),
		"updated_at": "2023-01-02T03:04:05.000000+00:00",
		"creator":    map[string]any{"name": "John", "avatar_url": "https://img.example.com/john.png"},
		"comments":   []any{},
	}
}

func TestClientListProjects(t *testing.T) {
	fake := newFakeBasecamp(t)
	fake.projects = []map[string]any{
		{"id": 42, "name": "Acme Site"},
		{"id": 43, "name": "Internal"},
	}

	projects, err := fake.client().ListProjects(context.Background())
	require.NoError(t, err)

	require.Len(t, projects, 2)
	assert.Equal(t, int64(42), projects[0].ID)
	assert.Equal(t, "Acme Site", projects[0].Name)
	assert.Equal(t, int64(43), projects[1].ID)
}

func TestClientListProjectsUnauthorized(t *testing.T) {
	fake := newFakeBasecamp(t)
	fake.projectsCode = http.StatusUnauthorized

	_, err := fake.client().ListProjects(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.True(t, IsUnauthorized(err))
}

func TestClientListTodosPagination(t *testing.T) {
	fake := newFakeBasecamp(t)
	fake.todoPages = [][]int64{{1, 2}, {3}}
	fake.todos[1] = simpleTodo(1, "first")
	fake.todos[2] = simpleTodo(2, "second")
	fake.todos[3] = simpleTodo(3, "third")

	todos, err := fake.client().ListTodos(context.Background(), 42)
	require.NoError(t, err)

	// All three to-dos, in page order then summary order.
	require.Len(t, todos, 3)
	assert.Equal(t, int64(1), todos[0].ID)
	assert.Equal(t, int64(2), todos[1].ID)
	assert.Equal(t, int64(3), todos[2].ID)

	// Pages 1 and 2 carried items; page 3 was the empty terminator.
	assert.Equal(t, 1, fake.requestCount("/api/v1/projects/42/todos.json?page=1"))
	assert.Equal(t, 1, fake.requestCount("/api/v1/projects/42/todos.json?page=2"))
	assert.Equal(t, 1, fake.requestCount("/api/v1/projects/42/todos.json?page=3"))
	assert.Equal(t, 0, fake.requestCount("/api/v1/projects/42/todos.json?page=4"))
}

func TestClientListTodosEmptyProject(t *testing.T) {
	fake := newFakeBasecamp(t)
	fake.todoPages = nil

	todos, err := fake.client().ListTodos(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, todos)
	assert.Equal(t, 1, fake.requestCount("/api/v1/projects/42/todos.json?page=1"))
}

func TestClientListTodosDetailFailureAborts(t *testing.T) {
	fake := newFakeBasecamp(t)
	fake.todoPages = [][]int64{{1, 2}}
	fake.todos[1] = simpleTodo(1, "first")
	fake.detailErr[2] = http.StatusInternalServerError

	todos, err := fake.client().ListTodos(context.Background(), 42)
	require.Error(t, err)
	assert.Nil(t, todos)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestClientSendsAuthAndUserAgent(t *testing.T) {
	var gotUser, gotPass, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotAgent = r.Header.Get("User-Agent")
		writeJSON(t, w, []map[string]any{})
	}))
	defer server.Close()

	client := NewClient(&Config{
		URL:      server.URL,
		Username: "john@example.com",
		Password: "secret",
	})

	_, err := client.ListProjects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "john@example.com", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, "Campsync (john@example.com)", gotAgent)
}

func TestClientContextCancellation(t *testing.T) {
	fake := newFakeBasecamp(t)
	fake.todoPages = [][]int64{{1}}
	fake.todos[1] = simpleTodo(1, "first")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fake.client().ListTodos(ctx, 42)
	require.ErrorIs(t, err, context.Canceled)
}
