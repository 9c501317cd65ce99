package commands

import (
	"context"
	"strings"

	application "govledger/contexts/governance/voting-system/application"
	"govledger/contexts/governance/voting-system/domain/entities"
	domainerrors "govledger/contexts/governance/voting-system/domain/errors"
)

type UpdateVotingConfigCommand struct {
	Caller      string
	MinDuration uint64
	MaxDuration uint64
}

// UpdateVotingConfig replaces the duration bounds used by subsequent
// creates. In-flight proposals keep their computed end height.
func (uc ProposalUseCase) UpdateVotingConfig(ctx context.Context, cmd UpdateVotingConfigCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)

	err := uc.Sequencer.Do(func() error {
		admin, err := uc.Authz.HasAdminRole(ctx, caller)
		if err != nil {
			return err
		}
		if !admin {
			return domainerrors.ErrUnauthorized
		}
		if cmd.MinDuration == 0 || cmd.MaxDuration <= cmd.MinDuration {
			return domainerrors.ErrInvalidDuration
		}
		return uc.Repo.SaveConfig(ctx, entities.VotingConfig{
			MinDuration: cmd.MinDuration,
			MaxDuration: cmd.MaxDuration,
		})
	})
	if err != nil {
		logger.Warn("update voting config rejected",
			"event", "voting_update_config_rejected",
			"module", "governance/voting-system",
			"layer", "application",
			"caller", caller,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return err
	}

	logger.Info("update voting config completed",
		"event", "voting_update_config_completed",
		"module", "governance/voting-system",
		"layer", "application",
		"caller", caller,
		"min_duration", cmd.MinDuration,
		"max_duration", cmd.MaxDuration,
	)
	return nil
}
