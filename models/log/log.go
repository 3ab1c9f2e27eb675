package log

import (
	"time"
)

// Log is one persisted API request with its response.
type Log struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Method       string    `gorm:"type:varchar(10);not null;index" json:"method"`
	Path         string    `gorm:"type:text;not null" json:"path"`
	RemoteIP     string    `gorm:"type:varchar(45)" json:"remote_ip"`
	RequestBody  string    `gorm:"type:text" json:"request_body"`
	ResponseBody string    `gorm:"type:text" json:"response_body"`
	StatusCode   int       `gorm:"index" json:"status_code"`
	DurationMs   int64     `json:"duration_ms"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Log) TableName() string {
	return "logs"
}
