package commands

import (
	"context"
	"strings"

	application "govledger/contexts/identity-access/access-control/application"
	"govledger/contexts/identity-access/access-control/domain/entities"
	domainerrors "govledger/contexts/identity-access/access-control/domain/errors"
	"govledger/contexts/identity-access/access-control/ports"
)

type TransferOwnershipCommand struct {
	Caller   string
	NewOwner string
}

// TransferOwnership replaces the owner slot. Only the current owner may call
// it, and a non-admin new owner is promoted to admin in the same atomic step.
func (uc AccessUseCase) TransferOwnership(ctx context.Context, cmd TransferOwnershipCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	newOwner := strings.TrimSpace(cmd.NewOwner)
	logger.Info("transfer ownership started",
		"event", "access_transfer_ownership_started",
		"module", "identity-access/access-control",
		"layer", "application",
		"caller", caller,
		"new_owner", newOwner,
	)

	err := uc.Sequencer.Do(func() error {
		owner, err := uc.Repo.GetOwner(ctx)
		if err != nil {
			return err
		}
		if caller != owner {
			return domainerrors.ErrUnauthorized
		}
		if !entities.ValidPrincipal(newOwner) {
			return domainerrors.ErrInvalidPrincipal
		}
		alreadyAdmin, err := uc.Repo.IsAdmin(ctx, newOwner)
		if err != nil {
			return err
		}

		auditID, err := uc.newAuditID(ctx)
		if err != nil {
			return err
		}
		return uc.Repo.ReplaceOwner(ctx, ports.ReplaceOwnerInput{
			AuditID:        auditID,
			NewOwner:       newOwner,
			PreviousOwner:  owner,
			PromoteToAdmin: !alreadyAdmin,
			At:             uc.now(),
		})
	})
	if err != nil {
		logger.Warn("transfer ownership rejected",
			"event", "access_transfer_ownership_rejected",
			"module", "identity-access/access-control",
			"layer", "application",
			"caller", caller,
			"new_owner", newOwner,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return err
	}

	uc.invalidate(ctx, newOwner)
	logger.Info("transfer ownership completed",
		"event", "access_transfer_ownership_completed",
		"module", "identity-access/access-control",
		"layer", "application",
		"caller", caller,
		"new_owner", newOwner,
	)
	return nil
}
