package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_RegisterUser(t *testing.T) {
	t.Parallel()

	t.Run("registers once per email", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)
		body := `{"email":"alice@example.com","name":"Alice","photo":"https://example.com/a.png"}`

		first := env.do(t, http.MethodPost, "/users", body, "")
		require.Equal(t, http.StatusOK, first.Code)
		created := decodeBody(t, first)
		assert.Equal(t, true, created["acknowledged"])
		insertedID, ok := created["insertedId"].(string)
		require.True(t, ok, "insertedId should be a string, got %v", created["insertedId"])
		_, err := uuid.Parse(insertedID)
		assert.NoError(t, err)

		second := env.do(t, http.MethodPost, "/users", body, "")
		require.Equal(t, http.StatusOK, second.Code)
		existing := decodeBody(t, second)
		assert.Equal(t, "User already exists", existing["message"])
		assert.Contains(t, existing, "insertedId")
		assert.Nil(t, existing["insertedId"])

		assert.Equal(t, 1, env.users.Count())
	})

	t.Run("keeps the full profile", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)

		rec := env.do(t, http.MethodPost, "/users", `{"email":"bob@example.com","name":"Bob"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)

		user, err := env.users.GetByEmail(t.Context(), bob)
		require.NoError(t, err)
		assert.JSONEq(t, `{"email":"bob@example.com","name":"Bob"}`, string(user.Profile))
	})

	t.Run("email is kept verbatim", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)

		rec := env.do(t, http.MethodPost, "/users", `{"email":" bob@example.com "}`, "")
		require.Equal(t, http.StatusOK, rec.Code)

		_, err := env.users.GetByEmail(t.Context(), " bob@example.com ")
		assert.NoError(t, err)
		_, err = env.users.GetByEmail(t.Context(), bob)
		assert.Error(t, err)

		blank := env.do(t, http.MethodPost, "/users", `{"email":"  "}`, "")
		assert.Equal(t, http.StatusBadRequest, blank.Code)
	})

	t.Run("missing email", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)

		rec := env.do(t, http.MethodPost, "/users", `{"name":"Nobody"}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email is required", decodeBody(t, rec)["error"])
		assert.Equal(t, 0, env.users.Count())
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)

		rec := env.do(t, http.MethodPost, "/users", `not json`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request format", decodeBody(t, rec)["error"])
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, false)
		env.users.Err = errStoreDown

		rec := env.do(t, http.MethodPost, "/users", `{"email":"alice@example.com"}`, "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decodeBody(t, rec)["error"])
	})
}
