package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskmate-api/internal/api"
	"github.com/phrazzld/taskmate-api/internal/api/middleware"
	"github.com/phrazzld/taskmate-api/internal/mocks"
	"github.com/phrazzld/taskmate-api/internal/service"
	"github.com/phrazzld/taskmate-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const (
	alice = "alice@example.com"
	bob   = "bob@example.com"
)

var tokenExpiry = time.Date(2027, 10, 18, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	router   http.Handler
	tasks    *mocks.MemoryTaskStore
	users    *mocks.MemoryUserStore
	notifier *mocks.RecordingNotifier
	jwt      *mocks.MockJWTService
}

// newTestEnv wires real services over in-memory stores. Tokens have the form
// "valid:<email>".
func newTestEnv(t *testing.T, secureCookies bool) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{
		tasks:    mocks.NewMemoryTaskStore(),
		users:    mocks.NewMemoryUserStore(),
		notifier: mocks.NewRecordingNotifier(),
	}
	env.jwt = &mocks.MockJWTService{
		GenerateTokenFn: func(ctx context.Context, email string) (string, time.Time, error) {
			return "valid:" + email, tokenExpiry, nil
		},
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
			if email, ok := strings.CutPrefix(token, "valid:"); ok && email != "" {
				return &auth.Claims{Email: email}, nil
			}
			return nil, auth.ErrInvalidToken
		},
	}

	taskService, err := service.NewTaskService(env.tasks, env.notifier, log)
	require.NoError(t, err)
	userService, err := service.NewUserService(env.users, log)
	require.NoError(t, err)

	sessions := api.NewSessionHandler(env.jwt, secureCookies, log)
	users := api.NewUserHandler(userService, log)
	tasks := api.NewTaskHandler(taskService, log)
	authMiddleware := middleware.NewAuthMiddleware(env.jwt)

	r := chi.NewRouter()
	r.Post("/jwt", sessions.IssueSession)
	r.Get("/logout", sessions.EndSession)
	r.Post("/users", users.RegisterUser)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/tasks/{email}", tasks.ListTasks)
		r.Post("/tasks", tasks.CreateTask)
		r.Put("/tasks/{id}", tasks.ReplaceTask)
		r.With(middleware.ValidateTaskID("id")).Patch("/tasks/{id}", tasks.PatchTask)
		r.Delete("/tasks/{id}", tasks.DeleteTask)
	})
	env.router = r
	return env
}

// do sends a request as identity; an empty identity sends no cookie.
func (e *testEnv) do(t *testing.T, method, path, body, identity string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if identity != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "valid:" + identity})
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// createTask creates a task as identity and returns its id.
func (e *testEnv) createTask(t *testing.T, identity, body string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/tasks", body, identity)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	t.Fatalf("cookie %q not set", auth.SessionCookieName)
	return nil
}

var errStoreDown = errors.New("connection refused")
