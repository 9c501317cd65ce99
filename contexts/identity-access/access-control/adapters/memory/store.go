package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"govledger/contexts/identity-access/access-control/domain/entities"
	"govledger/contexts/identity-access/access-control/ports"

	"github.com/google/uuid"
)

type decisionRecord struct {
	allowed   bool
	expiresAt time.Time
}

// Store is the in-memory adapter backing every access-control port. It is the
// default wiring for tests and DSN-less local runs.
type Store struct {
	mu sync.RWMutex

	owner     string
	admins    map[string]struct{}
	roles     map[string]entities.RoleGrant
	audit     []entities.AuditEntry
	decisions map[string]decisionRecord
}

func NewStore() *Store {
	return &Store{
		admins:    make(map[string]struct{}),
		roles:     make(map[string]entities.RoleGrant),
		decisions: make(map[string]decisionRecord),
	}
}

func (s *Store) EnsureDeployed(_ context.Context, deployer string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner != "" {
		return nil
	}
	deployer = strings.TrimSpace(deployer)
	s.owner = deployer
	s.admins[deployer] = struct{}{}
	s.roles[deployer] = entities.RoleGrant{
		Principal: deployer,
		Role:      entities.RoleAdmin,
		GrantedBy: deployer,
		GrantedAt: at.UTC(),
	}
	return nil
}

func (s *Store) GetOwner(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner, nil
}

func (s *Store) IsAdmin(_ context.Context, principal string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.admins[strings.TrimSpace(principal)]
	return ok, nil
}

func (s *Store) ListAdmins(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]string, 0, len(s.admins))
	for principal := range s.admins {
		items = append(items, principal)
	}
	sort.Strings(items)
	return items, nil
}

func (s *Store) GetRole(_ context.Context, principal string) (entities.Role, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grant, ok := s.roles[strings.TrimSpace(principal)]
	if !ok {
		return "", false, nil
	}
	return grant.Role, true, nil
}

func (s *Store) AddAdmin(_ context.Context, input ports.AddAdminInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := strings.TrimSpace(input.Target)
	s.admins[target] = struct{}{}
	s.roles[target] = entities.RoleGrant{
		Principal: target,
		Role:      entities.RoleAdmin,
		GrantedBy: strings.TrimSpace(input.GrantedBy),
		GrantedAt: input.At.UTC(),
	}
	s.appendAudit(input.AuditID, "add_admin", input.GrantedBy, target, input.At)
	return nil
}

func (s *Store) RemoveAdmin(_ context.Context, input ports.RemoveAdminInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := strings.TrimSpace(input.Target)
	delete(s.admins, target)
	delete(s.roles, target)
	s.appendAudit(input.AuditID, "remove_admin", input.RemovedBy, target, input.At)
	return nil
}

func (s *Store) SetUserRole(_ context.Context, input ports.SetUserRoleInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := strings.TrimSpace(input.Target)
	s.roles[target] = entities.RoleGrant{
		Principal: target,
		Role:      entities.RoleUser,
		GrantedBy: strings.TrimSpace(input.GrantedBy),
		GrantedAt: input.At.UTC(),
	}
	s.appendAudit(input.AuditID, "grant_user_role", input.GrantedBy, target, input.At)
	return nil
}

func (s *Store) ClearRole(_ context.Context, input ports.ClearRoleInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := strings.TrimSpace(input.Target)
	delete(s.roles, target)
	s.appendAudit(input.AuditID, input.Action, input.Actor, target, input.At)
	return nil
}

func (s *Store) ReplaceOwner(_ context.Context, input ports.ReplaceOwnerInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	newOwner := strings.TrimSpace(input.NewOwner)
	s.owner = newOwner
	if input.PromoteToAdmin {
		s.admins[newOwner] = struct{}{}
		s.roles[newOwner] = entities.RoleGrant{
			Principal: newOwner,
			Role:      entities.RoleAdmin,
			GrantedBy: strings.TrimSpace(input.PreviousOwner),
			GrantedAt: input.At.UTC(),
		}
	}
	s.appendAudit(input.AuditID, "transfer_ownership", input.PreviousOwner, newOwner, input.At)
	return nil
}

func (s *Store) ListAuditTrail(_ context.Context, limit int) ([]entities.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.audit) {
		limit = len(s.audit)
	}
	items := make([]entities.AuditEntry, limit)
	// Newest first.
	for i := 0; i < limit; i++ {
		items[i] = s.audit[len(s.audit)-1-i]
	}
	return items, nil
}

func (s *Store) GetDecision(_ context.Context, key string) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.decisions[key]
	if !ok {
		return false, false, nil
	}
	if !record.expiresAt.After(time.Now().UTC()) {
		delete(s.decisions, key)
		return false, false, nil
	}
	return record.allowed, true, nil
}

func (s *Store) PutDecision(_ context.Context, key string, allowed bool, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions[key] = decisionRecord{
		allowed:   allowed,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (s *Store) Invalidate(_ context.Context, principal string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range ports.DecisionKeys(principal) {
		delete(s.decisions, key)
	}
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) appendAudit(auditID string, action string, actor string, subject string, at time.Time) {
	s.audit = append(s.audit, entities.AuditEntry{
		AuditID:    strings.TrimSpace(auditID),
		Action:     action,
		Actor:      strings.TrimSpace(actor),
		Subject:    strings.TrimSpace(subject),
		OccurredAt: at.UTC(),
	})
}

var _ ports.Repository = (*Store)(nil)
var _ ports.AuthorizationCache = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
