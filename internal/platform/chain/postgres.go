package chain

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const heightSlotID = 1

// PostgresRegister persists the height so restarts resume at the last
// committed value.
type PostgresRegister struct {
	db *gorm.DB
}

func NewPostgresRegister(db *gorm.DB) *PostgresRegister {
	return &PostgresRegister{db: db}
}

func (r *PostgresRegister) CurrentHeight(ctx context.Context) (uint64, error) {
	var row heightModel
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", heightSlotID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Height, nil
}

func (r *PostgresRegister) SetHeight(ctx context.Context, height uint64) error {
	row := heightModel{
		SlotID: heightSlotID,
		Height: height,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_id"}},
		DoUpdates: clause.Assignments(map[string]any{"height": height}),
	}).Create(&row).Error
}

type heightModel struct {
	SlotID int    `gorm:"column:slot_id;primaryKey"`
	Height uint64 `gorm:"column:height"`
}

func (heightModel) TableName() string {
	return "chain_height"
}

var _ Register = (*PostgresRegister)(nil)
