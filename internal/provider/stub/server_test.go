package stub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/partner-hub/internal/config"
	"github.com/spec-kit/partner-hub/internal/observability"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.StubProviderConfig{
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 5,
		BcryptCost:      4,
	}
	return NewServer(cfg, zap.NewNop(), observability.NewMetrics())
}

func doJSON(t *testing.T, server *Server, method, target string, body any, headers map[string]string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := server.App.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func signUp(t *testing.T, server *Server, name, email, password string) map[string]any {
	resp := doJSON(t, server, http.MethodPost, "/auth/v1/signup", map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": name},
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody(t, resp)
}

func TestSignUpIssuesSession(t *testing.T) {
	server := newTestServer(t)

	body := signUp(t, server, "Mimo", "mimo@oneapp.sk", "pw123456")

	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "mimo@oneapp.sk", user["email"])
	assert.Equal(t, "Mimo", user["user_metadata"].(map[string]any)["full_name"])

	claims, err := server.Tokens.ParseToken(body["access_token"].(string))
	require.NoError(t, err)
	assert.Equal(t, user["id"], claims.Subject)
	assert.Equal(t, "mimo@oneapp.sk", claims.Email)
}

func TestSignUpDuplicateEmailConflicts(t *testing.T) {
	server := newTestServer(t)
	signUp(t, server, "Mimo", "mimo@oneapp.sk", "pw123456")

	resp := doJSON(t, server, http.MethodPost, "/auth/v1/signup", map[string]any{
		"email": "MIMO@oneapp.sk", "password": "other",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "User already registered", body["msg"])
}

func TestPasswordGrant(t *testing.T) {
	server := newTestServer(t)
	signUp(t, server, "Mimo", "mimo@oneapp.sk", "pw123456")

	resp := doJSON(t, server, http.MethodPost, "/auth/v1/token?grant_type=password", map[string]any{
		"email": "mimo@oneapp.sk", "password": "pw123456",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])
}

func TestPasswordGrantRejectsBadCredentials(t *testing.T) {
	server := newTestServer(t)
	signUp(t, server, "Mimo", "mimo@oneapp.sk", "pw123456")

	resp := doJSON(t, server, http.MethodPost, "/auth/v1/token?grant_type=password", map[string]any{
		"email": "mimo@oneapp.sk", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid login credentials", body["msg"])

	resp = doJSON(t, server, http.MethodPost, "/auth/v1/token?grant_type=password", map[string]any{
		"email": "ghost@oneapp.sk", "password": "pw123456",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPasswordGrantRejectsUnknownGrantType(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, server, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUserEndpointRequiresBearer(t *testing.T) {
	server := newTestServer(t)
	body := signUp(t, server, "Mimo", "mimo@oneapp.sk", "pw123456")
	token := body["access_token"].(string)

	resp := doJSON(t, server, http.MethodGet, "/auth/v1/user", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := decodeBody(t, resp)
	assert.Equal(t, "mimo@oneapp.sk", user["email"])

	resp = doJSON(t, server, http.MethodGet, "/auth/v1/user", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, server, http.MethodGet, "/auth/v1/user", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutAcknowledges(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, server, http.MethodPost, "/auth/v1/logout", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, server, http.MethodGet, "/health/live", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "alive", body["status"])
}
