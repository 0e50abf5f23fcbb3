package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedProbe(t *testing.T, tokens *TokenService) (http.Handler, *string) {
	t.Helper()
	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		require.True(t, ok)
		seenUserID = userID
		w.WriteHeader(http.StatusOK)
	})
	return NewMiddleware(tokens).RequireAuth(next), &seenUserID
}

func TestRequireAuthAllowsValidToken(t *testing.T) {
	tokens, err := NewTokenService("test-secret")
	require.NoError(t, err)
	handler, seenUserID := protectedProbe(t, tokens)

	token, err := tokens.CreateToken("64f1aefc2b3c4d5e6f708192")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "64f1aefc2b3c4d5e6f708192", *seenUserID)
}

func TestRequireAuthRejections(t *testing.T) {
	tokens, err := NewTokenService("test-secret")
	require.NoError(t, err)

	valid, err := tokens.CreateToken("user-1")
	require.NoError(t, err)

	otherIssuer, err := NewTokenService("other-secret")
	require.NoError(t, err)
	wrongSignature, err := otherIssuer.CreateToken("user-1")
	require.NoError(t, err)

	expiredIssuer := &TokenService{secret: []byte("test-secret"), ttl: -time.Minute}
	expired, err := expiredIssuer.CreateToken("user-1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic " + valid},
		{"bare token", valid},
		{"tampered token", "Bearer " + valid + "x"},
		{"wrong signature", "Bearer " + wrongSignature},
		{"expired token", "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := protectedProbe(t, tokens)
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}
