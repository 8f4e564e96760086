package store

import (
	"errors"
	"time"

	"formadapt/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressLedger keeps the per-(user, module) completion records.
type ProgressLedger struct {
	DB *gorm.DB
}

func NewProgressLedger(db *gorm.DB) *ProgressLedger {
	return &ProgressLedger{DB: db}
}

// ProgressUpdate carries the fields of an upsert. Score and Completed are
// only overwritten when supplied.
type ProgressUpdate struct {
	Progress  int
	Score     *int
	Completed *bool
}

// ProgressWithModule is a ledger row joined with its module's display name.
// Rows whose module has since been deleted are flagged, not dropped errors.
type ProgressWithModule struct {
	models.ModuleProgress
	ModuleName    string `json:"module_name"`
	ModuleDeleted bool   `json:"module_deleted,omitempty"`
}

// Upsert creates or updates the (user, module) record atomically. The
// conflict clause on the composite unique index does the merge in the
// database, so two near-simultaneous writes can never yield two rows.
func (l *ProgressLedger) Upsert(userID, moduleID uint, upd ProgressUpdate) (*models.ModuleProgress, error) {
	if upd.Progress < 0 || upd.Progress > 100 {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	record := models.ModuleProgress{
		UserID:         userID,
		ModuleID:       moduleID,
		Progress:       upd.Progress,
		LastAccessedAt: now,
	}
	assignments := map[string]interface{}{
		"progress":         upd.Progress,
		"last_accessed_at": now,
		"updated_at":       now,
	}
	if upd.Score != nil {
		record.Score = upd.Score
		assignments["score"] = *upd.Score
	}
	if upd.Completed != nil {
		record.Completed = *upd.Completed
		assignments["completed"] = *upd.Completed
	}

	err := l.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller always sees the merged row, whichever branch the
	// conflict clause took.
	var stored models.ModuleProgress
	if err := l.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// Get returns the record, or a synthetic zero record when none exists yet,
// so first-time module views never error.
func (l *ProgressLedger) Get(userID, moduleID uint) (*models.ModuleProgress, error) {
	var record models.ModuleProgress
	err := l.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.ModuleProgress{
				UserID:   userID,
				ModuleID: moduleID,
			}, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListForUser returns every ledger row of the account, each enriched with
// its module's name.
func (l *ProgressLedger) ListForUser(userID uint) ([]ProgressWithModule, error) {
	var records []models.ModuleProgress
	if err := l.DB.Where("user_id = ?", userID).Order("module_id").Find(&records).Error; err != nil {
		return nil, err
	}

	enriched := make([]ProgressWithModule, 0, len(records))
	for _, record := range records {
		entry := ProgressWithModule{ModuleProgress: record}
		var module models.Module
		if err := l.DB.First(&module, record.ModuleID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			entry.ModuleDeleted = true
		} else {
			entry.ModuleName = module.Name
		}
		enriched = append(enriched, entry)
	}
	return enriched, nil
}

// DeleteForUser removes all ledger rows of an account. Invoked when the
// account is deleted.
func (l *ProgressLedger) DeleteForUser(userID uint) error {
	return l.DB.Unscoped().Where("user_id = ?", userID).Delete(&models.ModuleProgress{}).Error
}

// DeleteForModule removes all ledger rows of a module. Invoked when the
// module is deleted by the authoring surface.
func (l *ProgressLedger) DeleteForModule(moduleID uint) error {
	return l.DB.Unscoped().Where("module_id = ?", moduleID).Delete(&models.ModuleProgress{}).Error
}
