package commands

import (
	"context"
	"strings"

	application "govledger/contexts/identity-access/access-control/application"
	"govledger/contexts/identity-access/access-control/domain/entities"
	domainerrors "govledger/contexts/identity-access/access-control/domain/errors"
	"govledger/contexts/identity-access/access-control/ports"
)

// AddAdminCommand promotes a principal to the admin set.
type AddAdminCommand struct {
	Caller string
	Target string
}

// RemoveAdminCommand demotes a principal from the admin set.
type RemoveAdminCommand struct {
	Caller string
	Target string
}

// AddAdmin requires an admin caller and a valid, not-yet-admin target. The
// target also receives the admin role tag in the same atomic step.
func (uc AccessUseCase) AddAdmin(ctx context.Context, cmd AddAdminCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	target := strings.TrimSpace(cmd.Target)
	logger.Info("add admin started",
		"event", "access_add_admin_started",
		"module", "identity-access/access-control",
		"layer", "application",
		"caller", caller,
		"target", target,
	)

	err := uc.Sequencer.Do(func() error {
		callerAdmin, err := uc.Repo.IsAdmin(ctx, caller)
		if err != nil {
			return err
		}
		if !callerAdmin {
			return domainerrors.ErrUnauthorized
		}
		if !entities.ValidPrincipal(target) {
			return domainerrors.ErrInvalidPrincipal
		}
		targetAdmin, err := uc.Repo.IsAdmin(ctx, target)
		if err != nil {
			return err
		}
		if targetAdmin {
			return domainerrors.ErrAlreadyAdmin
		}

		auditID, err := uc.newAuditID(ctx)
		if err != nil {
			return err
		}
		return uc.Repo.AddAdmin(ctx, ports.AddAdminInput{
			AuditID:   auditID,
			Target:    target,
			GrantedBy: caller,
			At:        uc.now(),
		})
	})
	if err != nil {
		logger.Warn("add admin rejected",
			"event", "access_add_admin_rejected",
			"module", "identity-access/access-control",
			"layer", "application",
			"caller", caller,
			"target", target,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return err
	}

	uc.invalidate(ctx, target)
	logger.Info("add admin completed",
		"event", "access_add_admin_completed",
		"module", "identity-access/access-control",
		"layer", "application",
		"caller", caller,
		"target", target,
	)
	return nil
}

// RemoveAdmin requires an admin caller and an admin target. Self-removal is
// rejected; this is the only guard behind "cannot remove the last admin" (two
// co-admins can still demote each other to zero, which is preserved behavior).
func (uc AccessUseCase) RemoveAdmin(ctx context.Context, cmd RemoveAdminCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	target := strings.TrimSpace(cmd.Target)
	logger.Info("remove admin started",
		"event", "access_remove_admin_started",
		"module", "identity-access/access-control",
		"layer", "application",
		"caller", caller,
		"target", target,
	)

	err := uc.Sequencer.Do(func() error {
		callerAdmin, err := uc.Repo.IsAdmin(ctx, caller)
		if err != nil {
			return err
		}
		if !callerAdmin {
			return domainerrors.ErrUnauthorized
		}
		targetAdmin, err := uc.Repo.IsAdmin(ctx, target)
		if err != nil {
			return err
		}
		if !targetAdmin {
			return domainerrors.ErrNotAdmin
		}
		if caller == target {
			return domainerrors.ErrCannotRemoveLastAdmin
		}

		auditID, err := uc.newAuditID(ctx)
		if err != nil {
			return err
		}
		return uc.Repo.RemoveAdmin(ctx, ports.RemoveAdminInput{
			AuditID:   auditID,
			Target:    target,
			RemovedBy: caller,
			At:        uc.now(),
		})
	})
	if err != nil {
		logger.Warn("remove admin rejected",
			"event", "access_remove_admin_rejected",
			"module", "identity-access/access-control",
			"layer", "application",
			"caller", caller,
			"target", target,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return err
	}

	uc.invalidate(ctx, target)
	logger.Info("remove admin completed",
		"event", "access_remove_admin_completed",
		"module", "identity-access/access-control",
		"layer", "application",
		"caller", caller,
		"target", target,
	)
	return nil
}
