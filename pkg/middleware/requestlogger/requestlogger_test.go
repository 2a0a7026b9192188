package requestlogger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toan5ks1/code-challenge/pkg/logger"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	require.NoError(t, logger.Init(logger.Config{Output: "json"}))
	t.Cleanup(func() {
		logger.SetOutput(os.Stdout)
		_ = logger.Init(logger.Config{})
	})
	return &buf
}

func newTestApp(config Config) *fiber.App {
	app := fiber.New()
	app.Use(New(config))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/v1/wallet/:wallet/balances", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/fail", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusBadGateway) })
	return app
}

func request(t *testing.T, app *fiber.App, target string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "secret")
	req.Header.Set("X-Custom", "visible")
	_, err := app.Test(req)
	require.NoError(t, err)
}

func decode(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestRequestLogger(t *testing.T) {
	t.Run("logs_request", func(t *testing.T) {
		buf := captureLogs(t)
		request(t, newTestApp(Config{WithRequestHeader: true, WithRequestQuery: true, HiddenRequestHeaders: []string{" authorization "}}), "/v1/wallet/0xA11CE/balances?x=1")

		got := decode(t, buf)
		require.Len(t, got, 1)
		assert.Equal(t, "INFO", got[0]["level"])
		req := got[0]["request"].(map[string]any)
		assert.Equal(t, "/v1/wallet/0xA11CE/balances", req["path"])
		assert.Equal(t, "/v1/wallet/:wallet/balances", req["route"])
		assert.Equal(t, "x=1", req["query"])
		header := req["header"].(map[string]any)
		assert.NotContains(t, header, "Authorization")
		assert.Contains(t, header, "X-Custom")
		assert.EqualValues(t, http.StatusOK, got[0]["response"].(map[string]any)["status"])
	})
	t.Run("skip_paths", func(t *testing.T) {
		buf := captureLogs(t)
		app := newTestApp(Config{SkipPaths: []string{"/"}})
		request(t, app, "/")
		assert.Empty(t, decode(t, buf))
	})
	t.Run("disable_keeps_errors", func(t *testing.T) {
		buf := captureLogs(t)
		app := newTestApp(Config{Disable: true})
		request(t, app, "/v1/wallet/0xA11CE/balances")
		request(t, app, "/fail")

		got := decode(t, buf)
		require.Len(t, got, 1)
		assert.Equal(t, "ERROR", got[0]["level"])
		assert.Equal(t, "Bad Gateway", got[0][logger.ErrorKey])
	})
}
