package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"govledger/contexts/governance/voting-system/domain/entities"
	domainerrors "govledger/contexts/governance/voting-system/domain/errors"
	"govledger/contexts/governance/voting-system/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const configSlotID = 1

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

// CreateProposal allocates max(id)+1 inside the transaction. Dense ids hold
// because every create runs under the instance sequencer.
func (r *Repository) CreateProposal(ctx context.Context, input ports.CreateProposalInput) (uint64, error) {
	var id uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID uint64
		if err := tx.Model(&proposalModel{}).
			Select("COALESCE(MAX(id), 0)").
			Scan(&maxID).Error; err != nil {
			return r.logError("voting_repo_allocate_id_failed", err)
		}
		id = maxID + 1
		row := proposalModel{
			ID:          id,
			Title:       input.Title,
			Description: input.Description,
			Proposer:    input.Proposer,
			StartHeight: input.StartHeight,
			EndHeight:   input.EndHeight,
			Status:      string(entities.ProposalStatusActive),
			CreatedAt:   input.At.UTC(),
			UpdatedAt:   input.At.UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return r.logError("voting_repo_create_proposal_failed", err, "proposal_id", id)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) GetProposal(ctx context.Context, id uint64) (entities.Proposal, bool, error) {
	var row proposalModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Proposal{}, false, nil
		}
		return entities.Proposal{}, false, r.logError("voting_repo_get_proposal_failed", err, "proposal_id", id)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListProposals(ctx context.Context) ([]entities.Proposal, error) {
	var rows []proposalModel
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_proposals_failed", err)
	}
	return toEntities(rows), nil
}

func (r *Repository) ListElapsedActive(ctx context.Context, height uint64, limit int) ([]entities.Proposal, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []proposalModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND end_height < ?", string(entities.ProposalStatusActive), height).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_elapsed_failed", err, "height", height)
	}
	return toEntities(rows), nil
}

func (r *Repository) CountProposals(ctx context.Context) (uint64, error) {
	var maxID uint64
	if err := r.db.WithContext(ctx).
		Model(&proposalModel{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error; err != nil {
		return 0, r.logError("voting_repo_count_proposals_failed", err)
	}
	return maxID, nil
}

func (r *Repository) GetVote(ctx context.Context, proposalID uint64, voter string) (entities.Vote, bool, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("proposal_id = ? AND voter = ?", proposalID, voter).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, false, nil
		}
		return entities.Vote{}, false, r.logError("voting_repo_get_vote_failed", err, "proposal_id", proposalID)
	}
	return entities.Vote{
		ProposalID: row.ProposalID,
		Voter:      row.Voter,
		Choice:     entities.VoteChoice(row.Choice),
		Height:     row.Height,
		CastAt:     row.CastAt.UTC(),
	}, true, nil
}

func (r *Repository) RecordVote(ctx context.Context, input ports.RecordVoteInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := voteModel{
			ProposalID: input.ProposalID,
			Voter:      input.Voter,
			Choice:     string(input.Choice),
			Height:     input.Height,
			CastAt:     input.At.UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyVoted
			}
			return r.logError("voting_repo_record_vote_failed", err, "proposal_id", input.ProposalID)
		}
		column := "no_votes"
		if input.Choice == entities.VoteChoiceYes {
			column = "yes_votes"
		}
		if err := tx.Model(&proposalModel{}).
			Where("id = ?", input.ProposalID).
			Updates(map[string]any{
				column:       gorm.Expr(column+" + 1"),
				"updated_at": input.At.UTC(),
			}).Error; err != nil {
			return r.logError("voting_repo_bump_tally_failed", err, "proposal_id", input.ProposalID)
		}
		return nil
	})
}

func (r *Repository) SetProposalStatus(ctx context.Context, input ports.SetStatusInput) error {
	result := r.db.WithContext(ctx).
		Model(&proposalModel{}).
		Where("id = ? AND status = ?", input.ProposalID, string(entities.ProposalStatusActive)).
		Updates(map[string]any{
			"status":     string(input.Status),
			"updated_at": input.At.UTC(),
		})
	if result.Error != nil {
		return r.logError("voting_repo_set_status_failed", result.Error, "proposal_id", input.ProposalID)
	}
	if result.RowsAffected == 0 {
		// Proposals are never deleted, so a zero-row update means another
		// writer already committed a terminal status.
		return domainerrors.ErrProposalNotActive
	}
	return nil
}

func (r *Repository) GetConfig(ctx context.Context) (entities.VotingConfig, error) {
	var row configModel
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", configSlotID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DefaultVotingConfig(), nil
		}
		return entities.VotingConfig{}, r.logError("voting_repo_get_config_failed", err)
	}
	return entities.VotingConfig{
		MinDuration: row.MinDuration,
		MaxDuration: row.MaxDuration,
	}, nil
}

func (r *Repository) SaveConfig(ctx context.Context, config entities.VotingConfig) error {
	row := configModel{
		SlotID:      configSlotID,
		MinDuration: config.MinDuration,
		MaxDuration: config.MaxDuration,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slot_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"min_duration": config.MinDuration,
			"max_duration": config.MaxDuration,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("voting_repo_save_config_failed", err)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "governance/voting-system",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

type proposalModel struct {
	ID          uint64    `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	Proposer    string    `gorm:"column:proposer"`
	StartHeight uint64    `gorm:"column:start_height"`
	EndHeight   uint64    `gorm:"column:end_height"`
	YesVotes    uint64    `gorm:"column:yes_votes"`
	NoVotes     uint64    `gorm:"column:no_votes"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (proposalModel) TableName() string {
	return "voting_proposals"
}

func (m proposalModel) toEntity() entities.Proposal {
	return entities.Proposal{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Proposer:    m.Proposer,
		StartHeight: m.StartHeight,
		EndHeight:   m.EndHeight,
		YesVotes:    m.YesVotes,
		NoVotes:     m.NoVotes,
		Status:      entities.ProposalStatus(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func toEntities(rows []proposalModel) []entities.Proposal {
	items := make([]entities.Proposal, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

type voteModel struct {
	ProposalID uint64    `gorm:"column:proposal_id;primaryKey"`
	Voter      string    `gorm:"column:voter;primaryKey"`
	Choice     string    `gorm:"column:choice"`
	Height     uint64    `gorm:"column:height"`
	CastAt     time.Time `gorm:"column:cast_at"`
}

func (voteModel) TableName() string {
	return "voting_votes"
}

type configModel struct {
	SlotID      int    `gorm:"column:slot_id;primaryKey"`
	MinDuration uint64 `gorm:"column:min_duration"`
	MaxDuration uint64 `gorm:"column:max_duration"`
}

func (configModel) TableName() string {
	return "voting_config"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ProposalRepository = (*Repository)(nil)
