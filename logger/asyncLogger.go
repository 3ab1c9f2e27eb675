package logger

import (
	"sync"

	log_model "github.com/balojey/abdullateef-api/models/log"
	"github.com/balojey/abdullateef-api/types"

	"gorm.io/gorm"
)

// AsyncLogger persists request logs off the request path.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
	done    chan struct{}
	once    sync.Once
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
		done:    make(chan struct{}),
	}
}

// ProcessLog drains the channel until Close is called.
func (logger *AsyncLogger) ProcessLog() {
	defer close(logger.done)

	for logEntry := range logger.channel {
		dbLog := log_model.Log{
			Method:       logEntry.Method,
			Path:         logEntry.Path,
			RemoteIP:     logEntry.RemoteIP,
			RequestBody:  logEntry.RequestBody,
			ResponseBody: logEntry.ResponseBody,
			StatusCode:   logEntry.StatusCode,
			DurationMs:   logEntry.Duration.Milliseconds(),
			CreatedAt:    logEntry.CreatedAt,
		}

		if err := logger.db.Create(&dbLog).Error; err != nil {
			Error("Failed to insert request log", err)
		}
	}
}

// Log queues an entry. Entries are dropped when the buffer is full.
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	select {
	case logger.channel <- entry:
	default:
		Warning("Request log buffer full, dropping entry for " + entry.Method + " " + entry.Path)
	}
}

// Close stops accepting entries and waits for queued ones to be written.
// ProcessLog must be running.
func (logger *AsyncLogger) Close() {
	logger.once.Do(func() {
		close(logger.channel)
		<-logger.done
	})
}
