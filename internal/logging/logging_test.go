package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewParsesLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("loud").GetLevel())
}

func TestLogQueueBatch(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info")
	logger.SetOutput(&buf)

	LogQueueBatch(logger, "q", 3, nil)
	assert.Contains(t, buf.String(), "Flushed action batch")
	assert.Contains(t, buf.String(), "size=3")

	buf.Reset()
	LogQueueBatch(ForTable(logger, uuid.Nil), "q", 2, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "error=boom")
	assert.Contains(t, buf.String(), "table=00000000-0000-0000-0000-000000000000")
}
