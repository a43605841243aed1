package entity

import "time"

type PromotionStatus string

const (
	PromotionPromoted  PromotionStatus = "promoted"
	PromotionGraduated PromotionStatus = "graduated"
)

// PromotionCandidate is one row of a promotion preview.
type PromotionCandidate struct {
	StudentID   int             `json:"student_id"`
	StudentName string          `json:"student_name"`
	NIS         string          `json:"nis,omitempty"`
	OldGrade    *int            `json:"old_grade"`
	OldClass    *string         `json:"old_class"`
	NewGrade    *int            `json:"new_grade"`
	NewClass    *string         `json:"new_class"`
	Status      PromotionStatus `json:"status"`
}

type PromotionPreview struct {
	Promoted  []PromotionCandidate `json:"promoted"`
	Graduated []PromotionCandidate `json:"graduated"`
	FromYear  *string              `json:"from_year,omitempty"`
	ToYear    *string              `json:"to_year,omitempty"`
}

type PromotionResult struct {
	Message        string `json:"message"`
	PromotedCount  int    `json:"promoted_count"`
	GraduatedCount int    `json:"graduated_count"`
	HistoryID      *int   `json:"history_id,omitempty"`
}

type HistoryStatus string

const (
	HistoryApplied HistoryStatus = "applied"
	HistoryUndone  HistoryStatus = "undone"
)

type PromotionHistory struct {
	ID             int           `json:"id"`
	CreatedAt      time.Time     `json:"created_at"`
	PerformedBy    string        `json:"performed_by,omitempty"`
	Status         HistoryStatus `json:"status"`
	PromotedCount  int           `json:"promoted_count"`
	GraduatedCount int           `json:"graduated_count"`
	FromYear       *string       `json:"from_year,omitempty"`
	ToYear         *string       `json:"to_year,omitempty"`
}

type PromotionDetail struct {
	PromotionHistory
	Details []PromotionCandidate `json:"details"`
}
