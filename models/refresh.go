package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RefreshRun records one execution of the auto-refresh scheduler.
type RefreshRun struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StartDate  string         `gorm:"size:10;not null" json:"startDate"`
	EndDate    string         `gorm:"size:10;not null" json:"endDate"`
	OrderCount int            `gorm:"not null;default:0" json:"orderCount"`
	Source     string         `gorm:"size:16" json:"source"`
	Error      *string        `json:"error,omitempty"`
	Summary    datatypes.JSON `gorm:"type:jsonb" json:"summary,omitempty"`
	StartedAt  time.Time      `gorm:"not null" json:"startedAt"`
	FinishedAt time.Time      `gorm:"not null" json:"finishedAt"`
}

func (RefreshRun) TableName() string { return "refresh_runs" }

// RefreshStatus is the scheduler snapshot returned by GET /api/auto-refresh/status.
type RefreshStatus struct {
	Running        bool       `json:"running"`
	Range          *DateRange `json:"dateRange,omitempty"`
	Interval       string     `json:"interval"`
	LastRunAt      *time.Time `json:"lastRunAt,omitempty"`
	NextRunAt      *time.Time `json:"nextRunAt,omitempty"`
	LastOrderCount int        `json:"lastOrderCount"`
	LastError      string     `json:"lastError,omitempty"`
	Runs           int        `json:"runs"`
}

type RefreshStartRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}
