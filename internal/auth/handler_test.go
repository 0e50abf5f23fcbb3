package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userboard/userboard/internal/logging"
)

func newTestHandler(t *testing.T, store UserStore) *Handler {
	t.Helper()
	return NewHandler(newTestService(t, store), logging.NewLogger(true))
}

func doJSON(t *testing.T, handler http.HandlerFunc, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestSignUpHandlerSuccess(t *testing.T) {
	h := newTestHandler(t, newFakeStore())

	rec, body := doJSON(t, h.SignUp, `{"email":"a@b.com","password":"secret1","name":"Ann"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User created successfully", body["message"])
	assert.NotEmpty(t, body["token"])

	userObj, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", userObj["email"])
	assert.Equal(t, "Ann", userObj["name"])
	assert.NotEmpty(t, userObj["_id"])
	_, hasPassword := userObj["password"]
	assert.False(t, hasPassword, "response must never carry a password field")
}

func TestSignUpHandlerValidation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{"missing fields", `{"email":"a@b.com"}`, "Email, password, and name are required"},
		{"invalid email", `{"email":"nope","password":"secret1","name":"Ann"}`, "Invalid email format"},
		{"short password", `{"email":"a@b.com","password":"12345","name":"Ann"}`, "Password must be at least 6 characters long"},
		{"bad json", `{`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, newFakeStore())
			rec, body := doJSON(t, h.SignUp, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestSignUpHandlerDuplicate(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(t, store)

	rec, _ := doJSON(t, h.SignUp, `{"email":"a@b.com","password":"secret1","name":"Ann"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := doJSON(t, h.SignUp, `{"email":"A@B.com","password":"secret2","name":"Bea"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists with this email", body["message"])
}

func TestLoginHandlerSuccess(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(t, store)

	rec, signUpBody := doJSON(t, h.SignUp, `{"email":"a@b.com","password":"secret1","name":"Ann"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Different case on login resolves to the same user
	rec, body := doJSON(t, h.Login, `{"email":"A@B.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])

	created := signUpBody["user"].(map[string]any)
	loggedIn := body["user"].(map[string]any)
	assert.Equal(t, created["_id"], loggedIn["_id"])
	_, hasPassword := loggedIn["password"]
	assert.False(t, hasPassword)
}

func TestLoginHandlerBadCredentialsAreIndistinguishable(t *testing.T) {
	store := newFakeStore()
	h := newTestHandler(t, store)

	rec, _ := doJSON(t, h.SignUp, `{"email":"a@b.com","password":"secret1","name":"Ann"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPassRec, wrongPassBody := doJSON(t, h.Login, `{"email":"a@b.com","password":"wrong-pass"}`)
	unknownRec, unknownBody := doJSON(t, h.Login, `{"email":"nobody@b.com","password":"secret1"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassRec.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownRec.Code)
	assert.Equal(t, wrongPassBody, unknownBody)
	assert.Equal(t, "Invalid credentials", wrongPassBody["message"])
}

func TestLoginHandlerMissingInput(t *testing.T) {
	h := newTestHandler(t, newFakeStore())

	rec, body := doJSON(t, h.Login, `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password are required", body["message"])
}

func TestHandlersMaskInternalErrors(t *testing.T) {
	store := newFakeStore()
	store.failAll = context.DeadlineExceeded
	h := newTestHandler(t, store)

	rec, body := doJSON(t, h.SignUp, `{"email":"a@b.com","password":"secret1","name":"Ann"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, rec.Body.String(), "deadline")

	rec, body = doJSON(t, h.Login, `{"email":"a@b.com","password":"secret1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["message"])
}
