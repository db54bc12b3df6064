package tasks

import (
	"strings"
	"time"
)

type Area string

const (
	AreaWork        Area = "work"
	AreaSideProject Area = "side_project"
)

// ParseArea coerces anything outside the known set to AreaWork.
func ParseArea(s string) Area {
	if Area(strings.ToLower(strings.TrimSpace(s))) == AreaSideProject {
		return AreaSideProject
	}
	return AreaWork
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

type Task struct {
	ID             int64      `json:"id"`
	Text           string     `json:"text"`
	Area           Area       `json:"area"`
	Status         Status     `json:"status"`
	CarryoverCount int        `json:"carryover_count"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// DailyPlan is the per-day record of focus items and win criteria.
// FocusItems are text snapshots taken when the plan was saved.
type DailyPlan struct {
	ID          int64     `json:"id"`
	PlanDate    string    `json:"plan_date"`
	FocusItems  []string  `json:"focus_items"`
	WinCriteria string    `json:"win_criteria"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Stats struct {
	Pending        int `json:"pending"`
	CompletedToday int `json:"completed_today"`
}

// DateKey formats a day as the plan_date key.
func DateKey(day time.Time) string {
	return day.Format(time.DateOnly)
}
