// internal/logging/logging.go
package logging

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// New builds a text logger at the named level. Unknown levels fall back to info.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithField("level", level).Warn("Unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// ForTable scopes a logger to one table.
func ForTable(logger logrus.FieldLogger, tableID uuid.UUID) *logrus.Entry {
	return logger.WithField("table", tableID)
}

// LogQueueBatch logs a batch moved from the queue to the database.
func LogQueueBatch(logger logrus.FieldLogger, queue string, size int, err error) {
	fields := logrus.Fields{
		"queue": queue,
		"size":  size,
	}
	if err != nil {
		fields["error"] = err
		logger.WithFields(fields).Error("Failed to flush action batch")
		return
	}
	logger.WithFields(fields).Info("Flushed action batch")
}
