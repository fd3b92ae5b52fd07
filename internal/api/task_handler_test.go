package api_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRoutes_RequireSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	id := uuid.NewString()

	requests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/tasks/" + alice, ""},
		{http.MethodPost, "/tasks", `{"title":"Buy milk"}`},
		{http.MethodPut, "/tasks/" + id, `{"title":"x"}`},
		{http.MethodPatch, "/tasks/" + id, `{"title":"x"}`},
		{http.MethodDelete, "/tasks/" + id, ""},
	}

	for _, req := range requests {
		rec := env.do(t, req.method, req.path, req.body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", req.method, req.path)
		assert.Equal(t, "Unauthorized access", decodeBody(t, rec)["error"])
	}

	assert.Zero(t, env.notifier.Count())
	stored, err := env.tasks.ListByOwner(t.Context(), alice)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestTaskHandler_CreateAndList(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodPost, "/tasks", `{"title":"Buy milk","description":"2 litres"}`, alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, alice, created.OwnerEmail)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "2 litres", created.Description)
	assert.Equal(t, domain.DefaultCategory, created.Category)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, []string{alice}, env.notifier.Identities())

	list := env.do(t, http.MethodGet, "/tasks/"+alice, "", alice)
	require.Equal(t, http.StatusOK, list.Code)

	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)
	assert.Equal(t, alice, tasks[0].OwnerEmail)
}

func TestTaskHandler_ListEmptyIsArray(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodGet, "/tasks/"+alice, "", alice)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestTaskHandler_ListForeignIdentity(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	env.createTask(t, bob, `{"title":"Bob's task"}`)

	rec := env.do(t, http.MethodGet, "/tasks/"+bob, "", alice)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only access your own tasks", decodeBody(t, rec)["error"])
	assert.NotContains(t, rec.Body.String(), "Bob's task")
}

func TestTaskHandler_ListEscapedIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity string
		path     string
	}{
		{"literal percent", "a%41@example.com", "/tasks/a%2541@example.com"},
		{"escaped at sign", alice, "/tasks/alice%40example.com"},
		{"plain", alice, "/tasks/" + alice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, false)
			env.createTask(t, tt.identity, `{"title":"Mine"}`)

			rec := env.do(t, http.MethodGet, tt.path, "", tt.identity)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var tasks []domain.Task
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
			require.Len(t, tasks, 1)
			assert.Equal(t, tt.identity, tasks[0].OwnerEmail)
		})
	}

	t.Run("decoded once only", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)

		rec := env.do(t, http.MethodGet, "/tasks/a%2541@example.com", "", "aA@example.com")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestTaskHandler_CreateValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{"missing title", `{"description":"no title"}`, http.StatusBadRequest, "Invalid title"},
		{"empty title", `{"title":""}`, http.StatusBadRequest, "Invalid title"},
		{"title of 51", `{"title":"` + strings.Repeat("a", 51) + `"}`, http.StatusBadRequest, "Invalid title"},
		{"title of 50", `{"title":"` + strings.Repeat("a", 50) + `"}`, http.StatusOK, ""},
		{
			"description of 201",
			`{"title":"ok","description":"` + strings.Repeat("d", 201) + `"}`,
			http.StatusBadRequest,
			"Description too long",
		},
		{"nul title", `{"title":"\u0000"}`, http.StatusBadRequest, "Invalid title"},
		{"nul category", `{"title":"ok","category":"a\u0000"}`, http.StatusBadRequest, "Validation error"},
		{"malformed", `{"title":`, http.StatusBadRequest, "Invalid request format"},
		{"title not a string", `{"title":42}`, http.StatusBadRequest, "Invalid request format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, false)

			rec := env.do(t, http.MethodPost, "/tasks", tt.body, alice)

			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeBody(t, rec)["error"])
				assert.Zero(t, env.notifier.Count())
			}
		})
	}
}

func TestTaskHandler_Put(t *testing.T) {
	t.Parallel()

	t.Run("updates own task", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)
		id := env.createTask(t, alice, `{"title":"Old","description":"keep"}`)

		rec := env.do(t, http.MethodPut, "/tasks/"+id, `{"title":"New"}`, alice)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Task updated","taskId":"`+id+`"}`, rec.Body.String())

		task, ok := env.tasks.Get(uuid.MustParse(id))
		require.True(t, ok)
		assert.Equal(t, "New", task.Title)
		assert.Equal(t, "keep", task.Description)
		assert.Equal(t, []string{alice, alice}, env.notifier.Identities())
	})

	t.Run("foreign task is not found", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)
		id := env.createTask(t, bob, `{"title":"Bob's"}`)

		rec := env.do(t, http.MethodPut, "/tasks/"+id, `{"title":"Hijacked"}`, alice)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Task not found", body["error"])
		assert.Contains(t, body["details"], id)

		task, _ := env.tasks.Get(uuid.MustParse(id))
		assert.Equal(t, "Bob's", task.Title)
		assert.Equal(t, []string{bob}, env.notifier.Identities())
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)

		rec := env.do(t, http.MethodPut, "/tasks/not-a-task-id", `{"title":"x"}`, alice)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid task ID format", decodeBody(t, rec)["error"])
		assert.Zero(t, env.notifier.Count())
	})

	t.Run("invalid fields are dropped", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)
		id := env.createTask(t, alice, `{"title":"Keep me"}`)

		body := `{"title":"` + strings.Repeat("t", 51) + `","description":""}`
		rec := env.do(t, http.MethodPut, "/tasks/"+id, body, alice)

		require.Equal(t, http.StatusOK, rec.Code)
		task, _ := env.tasks.Get(uuid.MustParse(id))
		assert.Equal(t, "Keep me", task.Title)
	})
}

func TestTaskHandler_Patch(t *testing.T) {
	t.Parallel()

	t.Run("reports updated fields", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)
		id := env.createTask(t, alice, `{"title":"Write report","description":"Q3"}`)

		rec := env.do(t, http.MethodPatch, "/tasks/"+id, `{"category":"Done"}`, alice)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"message":"Task updated","taskId":"`+id+`","updatedFields":{"category":"Done"}}`,
			rec.Body.String())

		task, _ := env.tasks.Get(uuid.MustParse(id))
		assert.Equal(t, "Done", task.Category)
		assert.Equal(t, "Write report", task.Title)
		assert.Equal(t, "Q3", task.Description)
	})

	t.Run("empty update still checks ownership", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)
		own := env.createTask(t, alice, `{"title":"Mine"}`)
		foreign := env.createTask(t, bob, `{"title":"Theirs"}`)

		ok := env.do(t, http.MethodPatch, "/tasks/"+own, `{}`, alice)
		assert.Equal(t, http.StatusOK, ok.Code)
		assert.JSONEq(t, `{"message":"Task updated","taskId":"`+own+`","updatedFields":{}}`, ok.Body.String())

		missing := env.do(t, http.MethodPatch, "/tasks/"+foreign, `{}`, alice)
		assert.Equal(t, http.StatusNotFound, missing.Code)
	})

	t.Run("malformed id is rejected by the gate", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)

		rec := env.do(t, http.MethodPatch, "/tasks/12345", `{"title":"x"}`, alice)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Invalid task ID", body["error"])
		assert.Equal(t, "Task ID must be a valid task identifier", body["details"])
	})
}

func TestTaskHandler_UpdateEchoesCanonicalID(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	id := env.createTask(t, alice, `{"title":"Mine"}`)
	upper := strings.ToUpper(id)

	put := env.do(t, http.MethodPut, "/tasks/"+upper, `{"title":"New"}`, alice)
	require.Equal(t, http.StatusOK, put.Code)
	assert.Equal(t, upper, decodeBody(t, put)["taskId"])

	patch := env.do(t, http.MethodPatch, "/tasks/"+upper, `{"title":"Newer"}`, alice)
	require.Equal(t, http.StatusOK, patch.Code)
	assert.Equal(t, upper, decodeBody(t, patch)["taskId"])

	compact := strings.ReplaceAll(id, "-", "")
	for _, raw := range []string{compact, "urn:uuid:" + id} {
		rec := env.do(t, http.MethodPut, "/tasks/"+raw, `{"title":"x"}`, alice)
		assert.Equal(t, http.StatusBadRequest, rec.Code, raw)
		assert.Equal(t, "Invalid task ID format", decodeBody(t, rec)["error"])

		rec = env.do(t, http.MethodDelete, "/tasks/"+raw, "", alice)
		assert.Equal(t, http.StatusBadRequest, rec.Code, raw)
	}

	task, ok := env.tasks.Get(uuid.MustParse(id))
	require.True(t, ok)
	assert.Equal(t, "Newer", task.Title)
}

func TestTaskHandler_Delete(t *testing.T) {
	t.Parallel()

	t.Run("own task", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)
		id := env.createTask(t, alice, `{"title":"Done soon"}`)

		rec := env.do(t, http.MethodDelete, "/tasks/"+id, "", alice)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Task deleted"}`, rec.Body.String())
		_, found := env.tasks.Get(uuid.MustParse(id))
		assert.False(t, found)
	})

	t.Run("foreign and missing tasks look the same", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)
		foreign := env.createTask(t, bob, `{"title":"Bob's"}`)

		foreignRec := env.do(t, http.MethodDelete, "/tasks/"+foreign, "", alice)
		missingRec := env.do(t, http.MethodDelete, "/tasks/"+uuid.NewString(), "", alice)

		assert.Equal(t, http.StatusOK, foreignRec.Code)
		assert.Equal(t, http.StatusOK, missingRec.Code)
		assert.JSONEq(t, foreignRec.Body.String(), missingRec.Body.String())

		_, survived := env.tasks.Get(uuid.MustParse(foreign))
		assert.True(t, survived)
		assert.Equal(t, []string{bob, alice, alice}, env.notifier.Identities())
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)

		rec := env.do(t, http.MethodDelete, "/tasks/nope", "", alice)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid task ID format", decodeBody(t, rec)["error"])
		assert.Zero(t, env.notifier.Count())
	})
}

func TestTaskHandler_StoreFailure(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	id := env.createTask(t, alice, `{"title":"Before outage"}`)
	env.tasks.Err = errStoreDown

	requests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/tasks/" + alice, ""},
		{http.MethodPost, "/tasks", `{"title":"During outage"}`},
		{http.MethodPut, "/tasks/" + id, `{"title":"x"}`},
		{http.MethodDelete, "/tasks/" + id, ""},
	}

	for _, req := range requests {
		rec := env.do(t, req.method, req.path, req.body, alice)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, "%s %s", req.method, req.path)
		assert.Equal(t, "Internal server error", decodeBody(t, rec)["error"])
		assert.NotContains(t, rec.Body.String(), "connection refused")
	}

	assert.Equal(t, 1, env.notifier.Count())
}
