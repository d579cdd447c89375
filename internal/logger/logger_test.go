package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigureLogLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { log.SetLevel(logrus.InfoLevel) })

	configureLogLevel("DEBUG")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	configureLogLevel("nonsense")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level")

	configureLogLevel("")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	InfoWithFields("request", map[string]interface{}{"path": "/projects"})
	assert.Contains(t, buf.String(), `"path":"/projects"`)
	assert.Contains(t, buf.String(), `"msg":"request"`)
}
