package echoapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtna/jlsfinder/core/directory"
)

func Test_adminApi_status(t *testing.T) {
	srv, store, _ := setupServer(t)

	req, rec := newAuthRequest(http.MethodGet, "/v1/admin/status", userToken(t, store))
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req, rec = newAuthRequest(http.MethodGet, "/v1/admin/status", adminToken(t, store))
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var status StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.Remote)
	assert.Empty(t, status.LastError, "a healthy backend shows no banner")
	assert.Equal(t, 5, status.Schools)
	assert.Equal(t, 3, status.Users)
	assert.Equal(t, 3, status.Reviews)
}

func Test_adminApi_exportSeed(t *testing.T) {
	srv, store, _ := setupServer(t)

	req, rec := newAuthRequest(http.MethodGet, "/v1/admin/export/seed", adminToken(t, store))
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "seed_schools.go")

	// the download parses back into the exact live collection
	parsed, err := directory.ParseSeedSource(rec.Body.String())
	require.NoError(t, err)
	assert.Equal(t, store.Schools(), parsed)
}

func Test_adminApi_exportWorkbook(t *testing.T) {
	srv, store, _ := setupServer(t)

	req, rec := newAuthRequest(http.MethodGet, "/v1/admin/export/xlsx", adminToken(t, store))
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"), "xlsx is a zip container")
}

func Test_adminApi_seed_requiresRemote(t *testing.T) {
	srv, store, _ := setupServer(t)

	req, rec := newAuthRequest(http.MethodPost, "/v1/admin/seed", adminToken(t, store))
	srv.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, httpErr{Error: "seeding requires the hosted backend"}),
	}, rec)
}
