package dashboard

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/apps/api/di"
	echoapi "github.com/BHARGAV15008/Cryptography-Resource-Manager/apps/api/echo"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

// newTestAPI serves a memory-backed API and returns a logged in client.
func newTestAPI(t *testing.T) *Client {
	conf := &core.Config{
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
	c, err := di.New(conf, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	deps := c.ServerDeps()
	deps.DisableReqLogs = true
	srv := httptest.NewServer(echoapi.NewServer(deps))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "", srv.Client())
	_, err = client.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	return client
}
