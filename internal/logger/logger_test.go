package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	std := logrus.StandardLogger()
	prevOut, prevFormatter, prevLevel := std.Out, std.Formatter, std.Level
	std.SetOutput(buf)
	std.SetFormatter(&logrus.JSONFormatter{})
	std.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		std.SetOutput(prevOut)
		std.SetFormatter(prevFormatter)
		std.SetLevel(prevLevel)
	})
	return buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestWithContext(t *testing.T) {
	t.Run("unknown user without context values", func(t *testing.T) {
		buf := captureOutput(t)
		WithContext(context.Background()).Info("hello")

		line := decodeLine(t, buf)
		assert.Equal(t, "unknown", line["user"])
		assert.Equal(t, "hello", line["msg"])
		assert.NotContains(t, line, "request_id")
	})

	t.Run("user and request id from context", func(t *testing.T) {
		buf := captureOutput(t)
		ctx := ContextWithRequestID(ContextWithUser(context.Background(), "admin"), "req-1")
		WithContext(ctx).WithField("kind", "product").Warn("rejected")

		line := decodeLine(t, buf)
		assert.Equal(t, "admin", line["user"])
		assert.Equal(t, "req-1", line["request_id"])
		assert.Equal(t, "product", line["kind"])
		assert.Equal(t, "warning", line["level"])
	})
}

func TestFromGinContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureOutput(t)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request = c.Request.WithContext(ContextWithUser(c.Request.Context(), "user"))

	FromGinContext(c).Debug("from gin")
	assert.Equal(t, "user", decodeLine(t, buf)["user"])
}

func TestSetup(t *testing.T) {
	std := logrus.StandardLogger()
	prevLevel, prevFormatter := std.Level, std.Formatter
	t.Cleanup(func() {
		std.SetLevel(prevLevel)
		std.SetFormatter(prevFormatter)
	})

	Setup("DEBUG")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Setup("nonsense")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
