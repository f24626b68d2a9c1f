package httpport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newPortServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/plugins/:plugin/tools/:tool/invoke", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.JSON(http.StatusOK, gin.H{
			"plugin": c.Param("plugin"),
			"tool":   c.Param("tool"),
			"args":   json.RawMessage(body),
		})
	})
	r.POST("/extensions/:ext/operations/:op", func(c *gin.Context) {
		switch c.Param("op") {
		case "fail":
			c.String(http.StatusBadGateway, "upstream exploded")
		case "empty":
			c.Status(http.StatusNoContent)
		case "text":
			c.String(http.StatusOK, "not json")
		case "slow":
			select {
			case <-c.Request.Context().Done():
			case <-time.After(2 * time.Second):
			}
			c.Status(http.StatusOK)
		default:
			c.JSON(http.StatusOK, gin.H{"ext": c.Param("ext"), "op": c.Param("op")})
		}
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_InvokeTool(t *testing.T) {
	srv := newPortServer(t)
	c := New(srv.URL+"/", 5*time.Second)

	out, err := c.InvokeTool(context.Background(), "weather", "forecast", json.RawMessage(`{"city":"Oslo"}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"plugin":"weather","tool":"forecast","args":{"city":"Oslo"}}`, string(out))
}

func TestClient_InvokeToolSendsEmptyObjectForNoArgs(t *testing.T) {
	srv := newPortServer(t)
	c := New(srv.URL, 5*time.Second)

	out, err := c.InvokeTool(context.Background(), "weather", "ping", nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"plugin":"weather","tool":"ping","args":{}}`, string(out))
}

func TestClient_CallOperation(t *testing.T) {
	srv := newPortServer(t)
	c := New(srv.URL, 5*time.Second)

	out, err := c.CallOperation(context.Background(), "updater", "check", nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"ext":"updater","op":"check"}`, string(out))

	out, err = c.CallOperation(context.Background(), "updater", "empty", nil)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestClient_Errors(t *testing.T) {
	srv := newPortServer(t)
	c := New(srv.URL, 5*time.Second)

	_, err := c.CallOperation(context.Background(), "updater", "fail", nil)
	require.ErrorContains(t, err, "status 502")
	require.ErrorContains(t, err, "upstream exploded")

	_, err = c.CallOperation(context.Background(), "updater", "text", nil)
	require.ErrorContains(t, err, "not JSON")
}

func TestClient_HonoursContextDeadline(t *testing.T) {
	srv := newPortServer(t)
	c := New(srv.URL, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.CallOperation(ctx, "updater", "slow", nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate([]byte("abc"), 5))
	require.Equal(t, strings.Repeat("x", 4)+"...", truncate([]byte(strings.Repeat("x", 10)), 4))
}
