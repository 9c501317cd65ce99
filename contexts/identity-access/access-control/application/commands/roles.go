package commands

import (
	"context"
	"strings"

	application "govledger/contexts/identity-access/access-control/application"
	"govledger/contexts/identity-access/access-control/domain/entities"
	domainerrors "govledger/contexts/identity-access/access-control/domain/errors"
	"govledger/contexts/identity-access/access-control/ports"
)

type GrantUserRoleCommand struct {
	Caller string
	Target string
}

type RevokeUserRoleCommand struct {
	Caller string
	Target string
}

type RenounceRoleCommand struct {
	Caller string
}

// GrantUserRole sets the user tag unconditionally for non-admin targets,
// overwriting any existing entry. Admins keep their tag through the admin
// lifecycle instead.
func (uc AccessUseCase) GrantUserRole(ctx context.Context, cmd GrantUserRoleCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	target := strings.TrimSpace(cmd.Target)

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
		return uc.Repo.SetUserRole(ctx, ports.SetUserRoleInput{
			AuditID:   auditID,
			Target:    target,
			GrantedBy: caller,
			At:        uc.now(),
		})
	})
	if err != nil {
		logger.Warn("grant user role rejected",
			"event", "access_grant_role_rejected",
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
	logger.Info("user role granted",
		"event", "access_grant_role_completed",
		"module", "identity-access/access-control",
		"layer", "application",
		"caller", caller,
		"target", target,
	)
	return nil
}

// RevokeUserRole clears a non-admin role entry. Admins are demoted through
// RemoveAdmin, never through revocation.
func (uc AccessUseCase) RevokeUserRole(ctx context.Context, cmd RevokeUserRoleCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	target := strings.TrimSpace(cmd.Target)

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
		if targetAdmin {
			return domainerrors.ErrCannotRevokeAdmin
		}
		if _, found, err := uc.Repo.GetRole(ctx, target); err != nil {
			return err
		} else if !found {
			return domainerrors.ErrNoRoleFound
		}

		auditID, err := uc.newAuditID(ctx)
		if err != nil {
			return err
		}
		return uc.Repo.ClearRole(ctx, ports.ClearRoleInput{
			AuditID: auditID,
			Target:  target,
			Actor:   caller,
			Action:  "revoke_user_role",
			At:      uc.now(),
		})
	})
	if err != nil {
		logger.Warn("revoke user role rejected",
			"event", "access_revoke_role_rejected",
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
	logger.Info("user role revoked",
		"event", "access_revoke_role_completed",
		"module", "identity-access/access-control",
		"layer", "application",
		"caller", caller,
		"target", target,
	)
	return nil
}

// RenounceRole drops the caller's own role entry. Admins can never
// self-renounce, however many other admins exist.
func (uc AccessUseCase) RenounceRole(ctx context.Context, cmd RenounceRoleCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)

	err := uc.Sequencer.Do(func() error {
		if _, found, err := uc.Repo.GetRole(ctx, caller); err != nil {
			return err
		} else if !found {
			return domainerrors.ErrNoRoleFound
		}
		callerAdmin, err := uc.Repo.IsAdmin(ctx, caller)
		if err != nil {
			return err
		}
		if callerAdmin {
			return domainerrors.ErrCannotRemoveLastAdmin
		}

		auditID, err := uc.newAuditID(ctx)
		if err != nil {
			return err
		}
		return uc.Repo.ClearRole(ctx, ports.ClearRoleInput{
			AuditID: auditID,
			Target:  caller,
			Actor:   caller,
			Action:  "renounce_role",
			At:      uc.now(),
		})
	})
	if err != nil {
		logger.Warn("renounce role rejected",
			"event", "access_renounce_role_rejected",
			"module", "identity-access/access-control",
			"layer", "application",
			"caller", caller,
			"code", domainerrors.Code(err),
			"error", err.Error(),
		)
		return err
	}

	uc.invalidate(ctx, caller)
	logger.Info("role renounced",
		"event", "access_renounce_role_completed",
		"module", "identity-access/access-control",
		"layer", "application",
		"caller", caller,
	)
	return nil
}
