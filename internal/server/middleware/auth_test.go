package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/types"
)

// testTokenValidator is a test implementation of TokenValidator.
type testTokenValidator struct {
	validTokens map[string]testClaims
}

func (v *testTokenValidator) ValidateToken(tokenString string) (Principal, error) {
	claims, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

type testClaims struct {
	sessionID string
	user      types.User
}

func (c testClaims) GetSessionID() string { return c.sessionID }
func (c testClaims) GetUser() types.User  { return c.user }

func setupValidator() *testTokenValidator {
	return &testTokenValidator{validTokens: map[string]testClaims{
		"admin-token": {sessionID: "s1", user: types.User{Email: "admin@example.com", Role: types.RoleAdmin}},
		"user-token":  {sessionID: "s2", user: types.User{Email: "user@example.com", Role: types.RoleUser}},
	}}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantID     string
	}{
		{name: "valid token", header: "Bearer user-token", wantStatus: http.StatusOK, wantID: "s2"},
		{name: "lowercase scheme", header: "bearer admin-token", wantStatus: http.StatusOK, wantID: "s1"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic user-token", wantStatus: http.StatusUnauthorized},
		{name: "extra parts", header: "Bearer user-token extra", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			handler := AuthMiddleware(setupValidator())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				p, err := GetPrincipal(r)
				require.NoError(t, err)
				gotID = p.GetSessionID()
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/document", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantID, gotID)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	handler := AuthMiddleware(setupValidator())(RequireAdmin(ok))

	tests := []struct {
		token string
		want  int
	}{
		{token: "admin-token", want: http.StatusNoContent},
		{token: "user-token", want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireAdmin_WithoutPrincipal(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run")
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetPrincipal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetPrincipal(req)
	assert.Error(t, err)

	claims := testClaims{sessionID: "abc"}
	req = req.WithContext(WithPrincipal(req.Context(), claims))
	p, err := GetPrincipal(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", p.GetSessionID())
}
