package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/apps/api/di"
	. "github.com/BHARGAV15008/Cryptography-Resource-Manager/apps/api/echo"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/auth"
)

const token = auth.DevToken

var (
	errMissingToken  = httpErr{Message: "No token, authorization denied"}
	errRouteNotFound = httpErr{Message: "API endpoint not found"}
)

type httpErr struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
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

type testApp struct {
	*Server
	deps *di.Container
}

func testConfig(t *testing.T) *core.Config {
	return &core.Config{
		AppName:  "test",
		Env:      "test",
		TestMode: true,
		Database: core.DatabaseConfig{Engine: di.EngineMemory},
		Server:   core.ServerConfig{BodyLimit: "1M"},
		Auth:     core.AuthConfig{Mode: "dev"},
		RateLimit: core.RateLimitConfig{
			Max:    1000,
			Window: 15 * time.Minute,
		},
		Uploads: core.UploadsConfig{
			Dir:             t.TempDir(),
			LectureMaxSize:  1 << 20,
			ResourceMaxSize: 1 << 20,
			ResourceSubdir:  "resources",
		},
	}
}

func setup(t *testing.T, configure ...func(conf *core.Config)) testApp {
	conf := testConfig(t)
	for _, fn := range configure {
		fn(conf)
	}

	c, err := di.New(conf, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	deps := c.ServerDeps()
	deps.DisableReqLogs = true
	srv := NewServer(deps)
	t.Cleanup(func() { _ = srv.Close() })

	return testApp{Server: srv, deps: c}
}

func (app testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func newAuthRequest(method, path, token string, data ...[]byte) *http.Request {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	return req
}

func newRequest(method, path string, data ...[]byte) *http.Request {
	return newAuthRequest(method, path, "", data...)
}

type formFile struct {
	field, name string
	content     []byte
}

func newMultipartRequest(t *testing.T, method, path, token string, fields map[string]string, files ...formFile) *http.Request {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for key, val := range fields {
		require.NoError(t, w.WriteField(key, val))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	return req
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func unmarshall(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("unmarshall(%s) failed: %v", rec.Body.String(), err)
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app testApp, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != nil {
				req = newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			} else {
				req = newAuthRequest(tt.method, tt.path, tt.token)
			}
			checkCodeAndData(t, tt, app.do(req))
		})
	}
}
