package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtna/jlsfinder/core/user"
)

func Test_userApi_login(t *testing.T) {
	srv, _, _ := setupServer(t)

	tests := []httpTest{
		{
			name:     "valid credentials",
			body:     []byte(`{"email": "kenji.tanaka@example.com", "password": "password123"}`),
			wantCode: http.StatusOK,
		},
		{
			name:     "email is matched case-insensitively",
			body:     []byte(`{"email": "KENJI.tanaka@example.com", "password": "password123"}`),
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong password",
			body:     []byte(`{"email": "kenji.tanaka@example.com", "password": "nope"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name:     "unknown email",
			body:     []byte(`{"email": "ghost@example.com", "password": "password123"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name:     "missing fields",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "password": "this field is required"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			srv.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			var resp AuthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Token)
			assert.Empty(t, resp.User.Password, "the password never leaves the server")
			assert.Equal(t, "kenji.tanaka@example.com", resp.User.Email)
		})
	}
}

func Test_userApi_signup(t *testing.T) {
	srv, store, _ := setupServer(t)
	before := len(store.Users())

	body := []byte(`{"email": "new@example.com", "password": "secret1", "password_confirm": "secret1", "username": "newbie"}`)
	req, rec := newRequest(http.MethodPost, "/v1/users/signup", body)
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.RoleUser, resp.User.Role)
	assert.Contains(t, resp.User.AvatarURL, "ui-avatars.com")
	assert.Len(t, store.Users(), before+1)

	// duplicate email is a field error, and no second record appears
	req, rec = newRequest(http.MethodPost, "/v1/users/signup", []byte(`{"email": "NEW@example.com", "password": "other12", "password_confirm": "other12", "username": "other"}`))
	srv.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, map[string]string{"email": "an account with this email already exists"}),
	}, rec)
	assert.Len(t, store.Users(), before+1)

	// password confirmation must match
	req, rec = newRequest(http.MethodPost, "/v1/users/signup", []byte(`{"email": "x@example.com", "password": "secret1", "password_confirm": "secret2", "username": "x"}`))
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_userApi_me(t *testing.T) {
	srv, store, _ := setupServer(t)
	token := userToken(t, store)

	// unauthenticated
	req, rec := newRequest(http.MethodGet, "/v1/users/me")
	srv.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)

	req, rec = newAuthRequest(http.MethodGet, "/v1/users/me", token)
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var me user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "kenji.tanaka@example.com", me.Email)
	assert.Empty(t, me.Password)

	// profile update merges the set fields
	req, rec = newAuthRequest(http.MethodPut, "/v1/users/me", token, []byte(`{"username": "kenji_t"}`))
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "kenji_t", me.Username)

	stored, ok := store.GetUserByEmail("kenji.tanaka@example.com")
	require.True(t, ok)
	assert.Equal(t, "kenji_t", stored.Username)
}

func Test_userApi_adminOnly(t *testing.T) {
	srv, store, _ := setupServer(t)

	tests := []httpTest{
		{name: "list users as user", method: http.MethodGet, path: "/v1/users", token: userToken(t, store), wantCode: http.StatusForbidden},
		{name: "list users as admin", method: http.MethodGet, path: "/v1/users", token: adminToken(t, store), wantCode: http.StatusOK},
		{name: "role change as user", method: http.MethodPut, path: "/v1/users/2/role", token: userToken(t, store),
			body: []byte(`{"role": "admin"}`), wantCode: http.StatusForbidden},
		{name: "delete as user", method: http.MethodDelete, path: "/v1/users/3", token: userToken(t, store), wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func Test_userApi_roleChange(t *testing.T) {
	srv, store, _ := setupServer(t)
	admin := adminToken(t, store)

	// promote a regular user
	req, rec := newAuthRequest(http.MethodPut, "/v1/users/2/role", admin, []byte(`{"role": "admin"}`))
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	promoted, _ := store.GetUser("2")
	assert.True(t, promoted.IsAdmin())

	// demote them again: allowed, another admin remains
	req, rec = newAuthRequest(http.MethodPut, "/v1/users/2/role", admin, []byte(`{"role": "user"}`))
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// demoting the only remaining admin is refused
	req, rec = newAuthRequest(http.MethodPut, "/v1/users/1/role", admin, []byte(`{"role": "user"}`))
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
	last, _ := store.GetUser("1")
	assert.True(t, last.IsAdmin(), "the last admin keeps the role")

	// unknown role
	req, rec = newAuthRequest(http.MethodPut, "/v1/users/2/role", admin, []byte(`{"role": "superuser"}`))
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown user
	req, rec = newAuthRequest(http.MethodPut, "/v1/users/missing/role", admin, []byte(`{"role": "user"}`))
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_userApi_destroy(t *testing.T) {
	srv, store, _ := setupServer(t)
	admin := adminToken(t, store)

	req, rec := newAuthRequest(http.MethodDelete, "/v1/users/2", admin)
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := store.GetUser("2")
	assert.False(t, ok)

	// deleting the last admin is refused
	req, rec = newAuthRequest(http.MethodDelete, "/v1/users/1", admin)
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	_, ok = store.GetUser("1")
	assert.True(t, ok)
}
