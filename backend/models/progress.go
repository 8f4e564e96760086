package models

import (
	"time"

	"gorm.io/gorm"
)

// ModuleProgress is the per-(user, module) ledger row. The composite unique
// index makes concurrent upserts for the same pair converge on one record.
type ModuleProgress struct {
	gorm.Model
	UserID         uint      `gorm:"not null;index:idx_user_module,unique" json:"user_id"`
	ModuleID       uint      `gorm:"not null;index:idx_user_module,unique" json:"module_id"`
	Progress       int       `gorm:"not null;default:0" json:"progress"` // 0..100
	Score          *int      `json:"score"`
	Completed      bool      `gorm:"not null;default:false" json:"completed"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}
