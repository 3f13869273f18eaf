package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/educhain/educhain/apps"
	"github.com/educhain/educhain/core"
	"github.com/educhain/educhain/core/user"
	logsvc "github.com/educhain/educhain/services/logger"
	"github.com/educhain/educhain/storage"
)

type testEnv struct {
	conf   *core.Config
	server Server
	store  *storage.Store
	svcs   *apps.Services
}

func setup(t *testing.T, configure ...func(*core.Config)) testEnv {
	user.HashCost = bcrypt.MinCost

	conf := core.NewTestConfig()
	for _, fn := range configure {
		fn(conf)
	}
	store := storage.NewMemoryStore()
	svcs := apps.NewServices(store, core.NewValidator())
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)

	server := NewServer(ServerDeps{
		Conf:            conf,
		Logger:          logger,
		UserSvc:         svcs.Users,
		CourseSvc:       svcs.Courses,
		GradeSvc:        svcs.Grades,
		AnnouncementSvc: svcs.Announcements,
		ScheduleSvc:     svcs.Schedules,
		ExamSvc:         svcs.Exams,
		DisableReqLogs:  true,
	})
	t.Cleanup(func() { _ = server.Close() })

	return testEnv{conf: conf, server: server, store: store, svcs: svcs}
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func (env testEnv) run(t *testing.T, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// do serves one request and decodes the response body into dst, if any.
func (env testEnv) do(t *testing.T, method, path string, body interface{}, dst interface{}) int {
	t.Helper()
	var data []byte
	if body != nil {
		data = marshalObj(t, body)
	}
	req, rec := newRequest(method, path, data)
	env.server.ServeHTTP(rec, req)
	if dst != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
	}
	return rec.Code
}

func (env testEnv) token(t *testing.T, usr user.User) string {
	signer := newTokenSigner(env.conf, env.server.(*server).jwtConf)
	token, err := signer.GenerateToken(usr)
	require.NoError(t, err)
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func errorBody(t *testing.T, msg string, fields ...map[string]string) []byte {
	resp := ErrorResponse{Message: msg}
	if len(fields) > 0 {
		resp.Fields = fields[0]
	}
	return marshalObj(t, resp)
}
