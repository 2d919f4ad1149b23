package domain

import "time"

// Interval is one segment of a reconstructed timeline: either work on a task
// or a gap of inactivity between entries.
type Interval struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	IsWork   bool      `json:"is_work"`
	Label    string    `json:"label"`
	TaskID   int64     `json:"task_id,omitempty"`
	Duration string    `json:"duration"`
}

// TaskDuration is the work recorded against one task within a window.
type TaskDuration struct {
	TaskID         int64      `json:"task_id"`
	Title          string     `json:"title"`
	TotalSeconds   int64      `json:"total_seconds"`
	Duration       string     `json:"duration"`
	FirstEntryTime *time.Time `json:"first_entry_time,omitempty"`
}

// TotalWorkDuration is the work recorded across all tasks within a window.
type TotalWorkDuration struct {
	TotalSeconds int64     `json:"total_seconds"`
	Duration     string    `json:"duration"`
	Days         int       `json:"days"`
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
}
