package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gameboxed/gameboxed/internal/domain"
	"github.com/gameboxed/gameboxed/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func doAuthed(t *testing.T, method, url string, body interface{}, token string) *http.Response {
	t.Helper()

	req := testutil.CreateAuthenticatedRequest(t, method, url, body, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAuthAPI_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := postJSON(t, ts.APIURL("/auth/register"), map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var result map[string]bool
	testutil.AssertJSONResponse(t, resp, &result)
	assert.True(t, result["success"])

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "duplicate username",
			body:       map[string]string{"username": "alice", "email": "x@example.com", "password": "pw"},
			wantStatus: http.StatusConflict,
			wantMsg:    "already exists",
		},
		{
			name:       "duplicate email",
			body:       map[string]string{"username": "bob", "email": "alice@example.com", "password": "pw"},
			wantStatus: http.StatusConflict,
			wantMsg:    "already exists",
		},
		{
			name:       "missing password",
			body:       map[string]string{"username": "carol", "email": "carol@example.com"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "required",
		},
		{
			name:       "missing username",
			body:       map[string]string{"email": "dave@example.com", "password": "pw"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/auth/register"), tt.body)
			testutil.AssertErrorResponse(t, resp, tt.wantStatus, tt.wantMsg)
		})
	}
}

func TestAuthAPI_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, password := testutil.NewUserBuilder().WithUsername("login_user").Build(t, ts.DB.DB)

	resp := postJSON(t, ts.APIURL("/auth/login"), map[string]string{
		"username": user.Username,
		"password": password,
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var loginResp testutil.LoginResponse
	testutil.AssertJSONResponse(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp.Token)

	// Unknown user and wrong password get the same answer.
	for _, tc := range []struct {
		name string
		body map[string]string
	}{
		{name: "wrong password", body: map[string]string{"username": user.Username, "password": "wrong"}},
		{name: "unknown user", body: map[string]string{"username": "nobody", "password": password}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/auth/login"), tc.body)
			testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Invalid credentials")
		})
	}
}

func TestAuthAPI_Check(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().
		WithUsername("check_user").
		WithRoles(domain.RoleUser, domain.RoleModerator).
		BuildAndAuthenticate(t, ts)

	resp := doAuthed(t, http.MethodGet, ts.APIURL("/auth/check"), nil, token)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var check testutil.CheckResponse
	testutil.AssertJSONResponse(t, resp, &check)
	assert.Equal(t, user.ID.String(), check.UserID)
	assert.Equal(t, "check_user", check.Username)
	assert.ElementsMatch(t, []string{domain.RoleUser, domain.RoleModerator}, check.Roles)
}

func TestAuthAPI_CheckUnauthorized(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	tests := []struct {
		name  string
		token string
	}{
		{name: "no token", token: ""},
		{name: "garbage token", token: "not-a-token"},
		{name: "tampered token", token: token + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doAuthed(t, http.MethodGet, ts.APIURL("/auth/check"), nil, tt.token)
			testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")
		})
	}
}

// Logout must make the token unusable immediately, even though it is still
// within its signed lifetime.
func TestAuthAPI_LogoutRevokesToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doAuthed(t, http.MethodGet, ts.APIURL("/auth/check"), nil, token)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp = doAuthed(t, http.MethodPost, ts.APIURL("/auth/logout"), nil, token)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp = doAuthed(t, http.MethodGet, ts.APIURL("/auth/check"), nil, token)
	testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")

	// The revoked token cannot even reach the logout handler again.
	resp = doAuthed(t, http.MethodPost, ts.APIURL("/auth/logout"), nil, token)
	testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")
}

func TestAuthAPI_RoleGating(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, userToken := testutil.NewUserBuilder().
		WithUsername("plain_user").
		WithRoles(domain.RoleUser).
		BuildAndAuthenticate(t, ts)

	_, adminToken := testutil.NewUserBuilder().
		WithUsername("admin_user").
		WithRoles(domain.RoleUser, domain.RoleAdmin).
		BuildAndAuthenticate(t, ts)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
	}{
		{name: "user hits user-check", path: "/auth/user-check", token: userToken, wantStatus: http.StatusOK},
		{name: "user hits admin-check", path: "/auth/admin-check", token: userToken, wantStatus: http.StatusForbidden},
		{name: "admin hits admin-check", path: "/auth/admin-check", token: adminToken, wantStatus: http.StatusOK},
		{name: "admin hits user-check", path: "/auth/user-check", token: adminToken, wantStatus: http.StatusOK},
		{name: "anonymous hits admin-check", path: "/auth/admin-check", token: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doAuthed(t, http.MethodGet, ts.APIURL(tt.path), nil, tt.token)
			testutil.AssertStatusCode(t, resp, tt.wantStatus)
		})
	}
}
