package model

import (
	"time"
)

// Cron job statuses.
const (
	CronJobStatusSuccess = "success"
	CronJobStatusFailed  = "failed"
)

// CronJobLog records one run of a scheduled job
type CronJobLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	JobName    string    `gorm:"type:varchar(100);not null;index" json:"job_name"`
	Status     string    `gorm:"type:varchar(20);not null" json:"status"`
	Message    string    `gorm:"type:text" json:"message"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
