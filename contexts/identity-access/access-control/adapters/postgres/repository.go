package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"govledger/contexts/identity-access/access-control/domain/entities"
	"govledger/contexts/identity-access/access-control/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ownerSlotID pins the owner table to a single row per deployed instance.
const ownerSlotID = 1

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

func (r *Repository) EnsureDeployed(ctx context.Context, deployer string, at time.Time) error {
	deployer = strings.TrimSpace(deployer)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner := ownerModel{
			SlotID:    ownerSlotID,
			Principal: deployer,
			UpdatedAt: at.UTC(),
		}
		created := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_id"}},
			DoNothing: true,
		}).Create(&owner)
		if created.Error != nil {
			return r.logError("access_repo_seed_owner_failed", created.Error, "deployer", deployer)
		}
		if created.RowsAffected == 0 {
			// Already deployed; keep the existing authorization root untouched.
			return nil
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&adminModel{
			Principal: deployer,
			GrantedBy: deployer,
			GrantedAt: at.UTC(),
		}).Error; err != nil {
			return r.logError("access_repo_seed_admin_failed", err, "deployer", deployer)
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "principal"}},
			DoUpdates: clause.Assignments(map[string]any{"role": string(entities.RoleAdmin)}),
		}).Create(&roleModel{
			Principal: deployer,
			Role:      string(entities.RoleAdmin),
			GrantedBy: deployer,
			GrantedAt: at.UTC(),
		}).Error; err != nil {
			return r.logError("access_repo_seed_role_failed", err, "deployer", deployer)
		}
		return nil
	})
}

func (r *Repository) GetOwner(ctx context.Context) (string, error) {
	var row ownerModel
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", ownerSlotID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", r.logError("access_repo_get_owner_failed", err)
	}
	return row.Principal, nil
}

func (r *Repository) IsAdmin(ctx context.Context, principal string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&adminModel{}).
		Where("principal = ?", strings.TrimSpace(principal)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("access_repo_is_admin_failed", err, "principal", strings.TrimSpace(principal))
	}
	return count > 0, nil
}

func (r *Repository) ListAdmins(ctx context.Context) ([]string, error) {
	var rows []adminModel
	if err := r.db.WithContext(ctx).
		Order("principal ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("access_repo_list_admins_failed", err)
	}
	items := make([]string, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.Principal)
	}
	return items, nil
}

func (r *Repository) GetRole(ctx context.Context, principal string) (entities.Role, bool, error) {
	var row roleModel
	err := r.db.WithContext(ctx).
		Where("principal = ?", strings.TrimSpace(principal)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, r.logError("access_repo_get_role_failed", err, "principal", strings.TrimSpace(principal))
	}
	return entities.Role(row.Role), true, nil
}

func (r *Repository) AddAdmin(ctx context.Context, input ports.AddAdminInput) error {
	target := strings.TrimSpace(input.Target)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&adminModel{
			Principal: target,
			GrantedBy: strings.TrimSpace(input.GrantedBy),
			GrantedAt: input.At.UTC(),
		}).Error; err != nil {
			return r.logError("access_repo_add_admin_failed", err, "target", target)
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "principal"}},
			DoUpdates: clause.Assignments(map[string]any{
				"role":       string(entities.RoleAdmin),
				"granted_by": strings.TrimSpace(input.GrantedBy),
				"granted_at": input.At.UTC(),
			}),
		}).Create(&roleModel{
			Principal: target,
			Role:      string(entities.RoleAdmin),
			GrantedBy: strings.TrimSpace(input.GrantedBy),
			GrantedAt: input.At.UTC(),
		}).Error; err != nil {
			return r.logError("access_repo_add_admin_role_failed", err, "target", target)
		}
		return r.appendAudit(tx, input.AuditID, "add_admin", input.GrantedBy, target, input.At)
	})
}

func (r *Repository) RemoveAdmin(ctx context.Context, input ports.RemoveAdminInput) error {
	target := strings.TrimSpace(input.Target)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("principal = ?", target).Delete(&adminModel{}).Error; err != nil {
			return r.logError("access_repo_remove_admin_failed", err, "target", target)
		}
		if err := tx.Where("principal = ?", target).Delete(&roleModel{}).Error; err != nil {
			return r.logError("access_repo_remove_admin_role_failed", err, "target", target)
		}
		return r.appendAudit(tx, input.AuditID, "remove_admin", input.RemovedBy, target, input.At)
	})
}

func (r *Repository) SetUserRole(ctx context.Context, input ports.SetUserRoleInput) error {
	target := strings.TrimSpace(input.Target)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "principal"}},
			DoUpdates: clause.Assignments(map[string]any{
				"role":       string(entities.RoleUser),
				"granted_by": strings.TrimSpace(input.GrantedBy),
				"granted_at": input.At.UTC(),
			}),
		}).Create(&roleModel{
			Principal: target,
			Role:      string(entities.RoleUser),
			GrantedBy: strings.TrimSpace(input.GrantedBy),
			GrantedAt: input.At.UTC(),
		}).Error; err != nil {
			return r.logError("access_repo_set_user_role_failed", err, "target", target)
		}
		return r.appendAudit(tx, input.AuditID, "grant_user_role", input.GrantedBy, target, input.At)
	})
}

func (r *Repository) ClearRole(ctx context.Context, input ports.ClearRoleInput) error {
	target := strings.TrimSpace(input.Target)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("principal = ?", target).Delete(&roleModel{}).Error; err != nil {
			return r.logError("access_repo_clear_role_failed", err, "target", target)
		}
		return r.appendAudit(tx, input.AuditID, input.Action, input.Actor, target, input.At)
	})
}

func (r *Repository) ReplaceOwner(ctx context.Context, input ports.ReplaceOwnerInput) error {
	newOwner := strings.TrimSpace(input.NewOwner)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&ownerModel{}).
			Where("slot_id = ?", ownerSlotID).
			Updates(map[string]any{
				"principal":  newOwner,
				"updated_at": input.At.UTC(),
			}).Error; err != nil {
			return r.logError("access_repo_replace_owner_failed", err, "new_owner", newOwner)
		}
		if input.PromoteToAdmin {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&adminModel{
				Principal: newOwner,
				GrantedBy: strings.TrimSpace(input.PreviousOwner),
				GrantedAt: input.At.UTC(),
			}).Error; err != nil {
				return r.logError("access_repo_promote_owner_failed", err, "new_owner", newOwner)
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "principal"}},
				DoUpdates: clause.Assignments(map[string]any{
					"role":       string(entities.RoleAdmin),
					"granted_by": strings.TrimSpace(input.PreviousOwner),
					"granted_at": input.At.UTC(),
				}),
			}).Create(&roleModel{
				Principal: newOwner,
				Role:      string(entities.RoleAdmin),
				GrantedBy: strings.TrimSpace(input.PreviousOwner),
				GrantedAt: input.At.UTC(),
			}).Error; err != nil {
				return r.logError("access_repo_promote_owner_role_failed", err, "new_owner", newOwner)
			}
		}
		return r.appendAudit(tx, input.AuditID, "transfer_ownership", input.PreviousOwner, newOwner, input.At)
	})
}

func (r *Repository) ListAuditTrail(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []auditModel
	if err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("access_repo_list_audit_failed", err, "limit", limit)
	}
	items := make([]entities.AuditEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.AuditEntry{
			AuditID:    row.AuditID,
			Action:     row.Action,
			Actor:      row.Actor,
			Subject:    row.Subject,
			OccurredAt: row.OccurredAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) appendAudit(tx *gorm.DB, auditID string, action string, actor string, subject string, at time.Time) error {
	row := auditModel{
		AuditID:    strings.TrimSpace(auditID),
		Action:     action,
		Actor:      strings.TrimSpace(actor),
		Subject:    strings.TrimSpace(subject),
		OccurredAt: at.UTC(),
	}
	if err := tx.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			// Replayed audit id; the mutation already committed once.
			return nil
		}
		return r.logError("access_repo_append_audit_failed", err, "audit_id", row.AuditID, "action", action)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "identity-access/access-control",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("access-control repository operation failed", fields...)
	return err
}

type ownerModel struct {
	SlotID    int       `gorm:"column:slot_id;primaryKey"`
	Principal string    `gorm:"column:principal"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ownerModel) TableName() string {
	return "access_owner"
}

type adminModel struct {
	Principal string    `gorm:"column:principal;primaryKey"`
	GrantedBy string    `gorm:"column:granted_by"`
	GrantedAt time.Time `gorm:"column:granted_at"`
}

func (adminModel) TableName() string {
	return "access_admins"
}

type roleModel struct {
	Principal string    `gorm:"column:principal;primaryKey"`
	Role      string    `gorm:"column:role"`
	GrantedBy string    `gorm:"column:granted_by"`
	GrantedAt time.Time `gorm:"column:granted_at"`
}

func (roleModel) TableName() string {
	return "access_roles"
}

type auditModel struct {
	AuditID    string    `gorm:"column:audit_id;primaryKey"`
	Action     string    `gorm:"column:action"`
	Actor      string    `gorm:"column:actor"`
	Subject    string    `gorm:"column:subject"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
}

func (auditModel) TableName() string {
	return "access_audit"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
