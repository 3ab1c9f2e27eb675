package types

import "time"

// LogEntry is a request/response pair queued for the async logger
type LogEntry struct {
	Method       string
	Path         string
	RemoteIP     string
	RequestBody  string
	ResponseBody string
	StatusCode   int
	Duration     time.Duration
	CreatedAt    time.Time
}
