package echoapi

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educhain/educhain/core"
)

func Test_server_frontendAndCORS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>spa</html>"), 0o644))
	env := setup(t, func(conf *core.Config) { conf.FrontendDir = dir })

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
		wantBody string
		wantJSON []byte
	}{
		{name: "root", path: "/", wantCode: http.StatusOK, wantBody: "<html>spa</html>"},
		{name: "client route falls back to index", path: "/student/grades", wantCode: http.StatusOK, wantBody: "<html>spa</html>"},
		{name: "unknown api route stays json", path: "/api/lol", wantCode: http.StatusNotFound, wantJSON: errorBody(t, "Not Found")},
		{name: "api route", path: "/api/courses", wantCode: http.StatusOK, wantJSON: []byte(`[]`)},
		{name: "preflight", method: http.MethodOptions, path: "/api/courses", wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newRequest(method, tt.path)
			req.Header.Set(echo.HeaderOrigin, "https://any.example.org")
			if method == http.MethodOptions {
				req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
			}
			env.server.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantJSON != nil {
				ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantJSON)
				require.NoError(t, err)
				assert.True(t, ok, rec.Body.String())
			}
		})
	}
}

func Test_server_noFrontendDir(t *testing.T) {
	env := setup(t, func(conf *core.Config) { conf.FrontendDir = filepath.Join(t.TempDir(), "missing") })

	req, rec := newRequest(http.MethodGet, "/student/grades")
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
