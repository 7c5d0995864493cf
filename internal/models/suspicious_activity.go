package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Suspicious activity severities
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Suspicious activity case statuses
const (
	CasePending       = "pending"
	CaseInvestigating = "investigating"
	CaseResolved      = "resolved"
	CaseFalsePositive = "false_positive"
)

// SuspiciousActivity is an audit case created when a fraud rule triggers.
// Cases start pending and are resolved by the admin workflow.
type SuspiciousActivity struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_suspicious_user_created" json:"user_id"`
	TransactionID *uuid.UUID `gorm:"type:uuid" json:"transaction_id,omitempty"`
	RuleType      string     `gorm:"not null" json:"rule_type"`
	RiskScore     int        `gorm:"not null;default:0" json:"risk_score"`
	Severity      string     `gorm:"not null;default:'low'" json:"severity"`
	Status        string     `gorm:"not null;default:'pending'" json:"status"`
	Details       JSON       `gorm:"type:jsonb" json:"details,omitempty"`
	AdminNote     string     `json:"admin_note,omitempty"`
	CreatedAt     time.Time  `gorm:"index:idx_suspicious_user_created" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (s *SuspiciousActivity) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = CasePending
	}
	return nil
}

// RiskScoreFor maps a severity to its numeric risk score.
func RiskScoreFor(severity string) int {
	switch severity {
	case SeverityCritical:
		return 100
	case SeverityHigh:
		return 80
	case SeverityMedium:
		return 50
	case SeverityLow:
		return 20
	default:
		return 10
	}
}
