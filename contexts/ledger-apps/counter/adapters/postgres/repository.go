package postgresadapter

import (
	"context"
	"errors"
	"log/slog"

	"govledger/contexts/ledger-apps/counter/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const counterSlotID = 1

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetCount(ctx context.Context) (uint64, error) {
	var row counterModel
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", counterSlotID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		r.logger.Error("counter read failed",
			"event", "counter_repo_get_failed",
			"module", "ledger-apps/counter",
			"layer", "adapter",
			"error", err.Error(),
		)
		return 0, err
	}
	return row.Count, nil
}

func (r *Repository) SetCount(ctx context.Context, value uint64) error {
	row := counterModel{
		SlotID: counterSlotID,
		Count:  value,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_id"}},
		DoUpdates: clause.Assignments(map[string]any{"count": value}),
	}).Create(&row).Error
	if err != nil {
		r.logger.Error("counter write failed",
			"event", "counter_repo_set_failed",
			"module", "ledger-apps/counter",
			"layer", "adapter",
			"count", value,
			"error", err.Error(),
		)
		return err
	}
	return nil
}

type counterModel struct {
	SlotID int    `gorm:"column:slot_id;primaryKey"`
	Count  uint64 `gorm:"column:count"`
}

func (counterModel) TableName() string {
	return "counter_value"
}

var _ ports.Repository = (*Repository)(nil)
