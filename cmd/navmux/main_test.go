package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/navmux/history/wshistory"
	"github.com/vitalvas/navmux/muxhandlers"
	"github.com/vitalvas/navmux/routefile"
)

const testRoutes = `
routes:
  - name: completed
    template: /completed
  - name: active
    template: /active
  - name: user
    template: /users/:id
    description: user page
`

// fallbackRoutes adds a two-segment catch-all, which is tried before the
// three-segment user route.
const fallbackRoutes = testRoutes + `  - name: all
    template: /*
`

func writeRoutes(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoutesCmd(t *testing.T) {
	out, err := execute(t, "routes", "--routes", writeRoutes(t, fallbackRoutes))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "TEMPLATE")
	assert.Contains(t, lines[1], "/completed")
	assert.Contains(t, lines[3], "/*")
	assert.Contains(t, lines[4], "/users/:id")
	assert.Contains(t, lines[4], "user page")
}

func TestMatchCmd(t *testing.T) {
	routes := writeRoutes(t, testRoutes)

	t.Run("prints one object per location", func(t *testing.T) {
		out, err := execute(t, "match", "--routes", routes, "/active", "/users/42?tab=info&debug")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.JSONEq(t, `{"matched":true,"route":"active","template":"/active","path":"/active"}`, lines[0])
		assert.JSONEq(t, `{
			"matched": true,
			"route": "user",
			"template": "/users/:id",
			"path": "/users/42",
			"params": {"id": "42"},
			"query": {"tab": "info", "debug": true}
		}`, lines[1])
	})

	t.Run("shorter wildcard shadows a deeper route", func(t *testing.T) {
		out, err := execute(t, "match", "--routes", writeRoutes(t, fallbackRoutes), "/users/42", "/active")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.JSONEq(t, `{"matched":true,"route":"all","template":"/*","path":"/users/42"}`, lines[0])
		assert.JSONEq(t, `{"matched":true,"route":"active","template":"/active","path":"/active"}`, lines[1])
	})

	t.Run("reports a miss", func(t *testing.T) {
		out, err := execute(t, "match", "--routes", writeRoutes(t, "routes:\n  - template: /a/:x/b\n"), "/a/b")
		require.NoError(t, err)
		assert.JSONEq(t, `{"matched":false,"path":"/a/b"}`, out)
	})

	t.Run("attaches state", func(t *testing.T) {
		out, err := execute(t, "match", "--routes", routes, "--state", `{"from":"filter"}`, "/active")
		require.NoError(t, err)
		assert.JSONEq(t, `{"matched":true,"route":"active","template":"/active","path":"/active","state":{"from":"filter"}}`, out)
	})

	t.Run("invalid state", func(t *testing.T) {
		_, err := execute(t, "match", "--routes", routes, "--state", "{", "/active")
		assert.ErrorContains(t, err, "invalid --state")
	})

	t.Run("missing route file", func(t *testing.T) {
		_, err := execute(t, "match", "--routes", filepath.Join(t.TempDir(), "none.yaml"), "/active")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty route file", func(t *testing.T) {
		_, err := execute(t, "match", "--routes", writeRoutes(t, "routes: []\n"), "/active")
		assert.ErrorContains(t, err, "no routes")
	})

	t.Run("requires a location", func(t *testing.T) {
		_, err := execute(t, "match", "--routes", routes)
		assert.Error(t, err)
	})
}

func newTestServer(t *testing.T, ctx context.Context) (*httptest.Server, *prometheus.Registry) {
	t.Helper()

	f, err := routefile.Load(strings.NewReader(testRoutes))
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	s := &server{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		file:    f,
		metrics: muxhandlers.NewMetrics(muxhandlers.WithRegistry(reg)),
	}

	srv := httptest.NewServer(s.router(ctx, reg))
	t.Cleanup(srv.Close)

	return srv, reg
}

func TestServeRouter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv, _ := newTestServer(t, ctx)

	t.Run("routes endpoint", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/routes")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var body struct {
			Routes []routefile.Definition `json:"routes"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body.Routes, 3)
	})

	t.Run("websocket bridge sends matches", func(t *testing.T) {
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.WriteJSON(wshistory.Message{Type: wshistory.TypeInit, Location: "/users/7?tab=info"}))

		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg wshistory.Message
		require.NoError(t, conn.ReadJSON(&msg))

		assert.Equal(t, wshistory.TypeMatch, msg.Type)
		assert.Equal(t, "/users/7", msg.Location)
		assert.Equal(t, map[string]string{"id": "7"}, msg.Params)
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		scrape := func() string {
			resp, err := http.Get(srv.URL + "/metrics")
			if err != nil {
				return ""
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			return string(body)
		}

		assert.Eventually(t, func() bool {
			return strings.Contains(scrape(), `navmux_navigations_total{template="/users/:id"} 1`)
		}, 2*time.Second, 20*time.Millisecond)
	})
}
