package votingsystem

import (
	"context"
	"errors"
	"testing"
	"time"

	accesscontroladapter "govledger/contexts/governance/voting-system/adapters/accesscontrol"
	"govledger/contexts/governance/voting-system/application/commands"
	"govledger/contexts/governance/voting-system/domain/entities"
	domainerrors "govledger/contexts/governance/voting-system/domain/errors"
	"govledger/contexts/governance/voting-system/ports"
	httptransport "govledger/contexts/governance/voting-system/transport/http"
	accesscontrol "govledger/contexts/identity-access/access-control"
	accesscommands "govledger/contexts/identity-access/access-control/application/commands"
	"govledger/internal/shared/ledgerseq"
)

// newModules wires voting on top of a real access-control instance so the
// authorization bridge is exercised, not stubbed. The deployer is admin,
// "principal.alice" and "principal.bob" hold the user role.
func newModules(t *testing.T) (Module, accesscontrol.Module) {
	t.Helper()
	sequencer := ledgerseq.New()
	access := accesscontrol.NewInMemoryModule("principal.deployer", sequencer, nil)
	for _, principal := range []string{"principal.alice", "principal.bob"} {
		err := access.Access.GrantUserRole(context.Background(), accesscommands.GrantUserRoleCommand{
			Caller: "principal.deployer",
			Target: principal,
		})
		if err != nil {
			t.Fatalf("seeding role for %s failed: %v", principal, err)
		}
	}
	voting := NewInMemoryModule(accesscontroladapter.Provider{
		Authorization: access.Authorization,
	}, sequencer, nil)
	return voting, access
}

func TestCreateProposalAllocatesDenseIDs(t *testing.T) {
	voting, _ := newModules(t)
	ctx := context.Background()
	voting.Store.SetHeight(10)

	created, err := voting.Handler.CreateProposalHandler(ctx, "principal.alice", httptransport.CreateProposalRequest{
		Title:       "Fund the relay",
		Description: "Allocate treasury funds to the relay program.",
		Duration:    144,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ProposalID != 1 {
		t.Fatalf("expected first proposal id 1, got %d", created.ProposalID)
	}
	if created.StartHeight != 10 || created.EndHeight != 154 {
		t.Fatalf("unexpected window [%d, %d]", created.StartHeight, created.EndHeight)
	}

	// A rejected create consumes no id.
	_, err = voting.Handler.CreateProposalHandler(ctx, "principal.alice", httptransport.CreateProposalRequest{
		Title:       "Too short",
		Description: "Below the minimum duration.",
		Duration:    100,
	})
	if !errors.Is(err, domainerrors.ErrInvalidDuration) {
		t.Fatalf("expected invalid duration, got %v", err)
	}
	second, err := voting.Handler.CreateProposalHandler(ctx, "principal.bob", httptransport.CreateProposalRequest{
		Title:       "Second proposal",
		Description: "Created after one rejected attempt.",
		Duration:    144,
	})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.ProposalID != 2 {
		t.Fatalf("expected dense id 2 after a failed create, got %d", second.ProposalID)
	}
}

func TestCreateProposalRequiresAuthorization(t *testing.T) {
	voting, _ := newModules(t)
	_, err := voting.Handler.CreateProposalHandler(context.Background(), "principal.stranger", httptransport.CreateProposalRequest{
		Title:       "Drive-by proposal",
		Description: "Submitted without any role.",
		Duration:    144,
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if domainerrors.Code(err) != 200 {
		t.Fatalf("expected code 200, got %d", domainerrors.Code(err))
	}
}

func TestCastVoteTalliesAndWriteOnce(t *testing.T) {
	voting, _ := newModules(t)
	ctx := context.Background()
	voting.Store.SetHeight(10)

	created, err := voting.Handler.CreateProposalHandler(ctx, "principal.alice", httptransport.CreateProposalRequest{
		Title:       "Fund the relay",
		Description: "Allocate treasury funds to the relay program.",
		Duration:    144,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	tally, err := voting.Handler.CastVoteHandler(ctx, "principal.alice", created.ProposalID, httptransport.CastVoteRequest{Choice: "yes"})
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if tally.YesVotes != 1 || tally.NoVotes != 0 {
		t.Fatalf("expected tallies (1, 0), got (%d, %d)", tally.YesVotes, tally.NoVotes)
	}

	_, err = voting.Handler.CastVoteHandler(ctx, "principal.alice", created.ProposalID, httptransport.CastVoteRequest{Choice: "no"})
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected already-voted, got %v", err)
	}

	vote, err := voting.Handler.VoteHandler(ctx, created.ProposalID, "principal.alice")
	if err != nil {
		t.Fatalf("vote query failed: %v", err)
	}
	if !vote.Found || vote.Choice != "yes" {
		t.Fatalf("expected recorded yes vote, got %+v", vote)
	}
}

func TestCastVoteGuards(t *testing.T) {
	voting, _ := newModules(t)
	ctx := context.Background()
	voting.Store.SetHeight(10)

	_, err := voting.Handler.CastVoteHandler(ctx, "principal.alice", 99, httptransport.CastVoteRequest{Choice: "yes"})
	if !errors.Is(err, domainerrors.ErrProposalNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}

	created, err := voting.Handler.CreateProposalHandler(ctx, "principal.alice", httptransport.CreateProposalRequest{
		Title:       "Fund the relay",
		Description: "Allocate treasury funds to the relay program.",
		Duration:    144,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = voting.Handler.CastVoteHandler(ctx, "principal.stranger", created.ProposalID, httptransport.CastVoteRequest{Choice: "yes"})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	_, err = voting.Handler.CastVoteHandler(ctx, "principal.alice", created.ProposalID, httptransport.CastVoteRequest{Choice: "maybe"})
	if !errors.Is(err, domainerrors.ErrInvalidVote) {
		t.Fatalf("expected invalid vote, got %v", err)
	}

	// The window is inclusive at the end height.
	voting.Store.SetHeight(created.EndHeight)
	if _, err := voting.Handler.CastVoteHandler(ctx, "principal.alice", created.ProposalID, httptransport.CastVoteRequest{Choice: "yes"}); err != nil {
		t.Fatalf("vote at end height failed: %v", err)
	}
	voting.Store.SetHeight(created.EndHeight + 1)
	_, err = voting.Handler.CastVoteHandler(ctx, "principal.bob", created.ProposalID, httptransport.CastVoteRequest{Choice: "no"})
	if !errors.Is(err, domainerrors.ErrProposalNotActive) {
		t.Fatalf("expected not-active past the window, got %v", err)
	}
}

func TestFinalizeProposal(t *testing.T) {
	voting, _ := newModules(t)
	ctx := context.Background()
	voting.Store.SetHeight(10)

	created, err := voting.Handler.CreateProposalHandler(ctx, "principal.alice", httptransport.CreateProposalRequest{
		Title:       "Fund the relay",
		Description: "Allocate treasury funds to the relay program.",
		Duration:    144,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := voting.Handler.CastVoteHandler(ctx, "principal.alice", created.ProposalID, httptransport.CastVoteRequest{Choice: "yes"}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	// Window still open, including the boundary height itself.
	_, err = voting.Handler.FinalizeProposalHandler(ctx, "principal.stranger", created.ProposalID)
	if !errors.Is(err, domainerrors.ErrProposalStillActive) {
		t.Fatalf("expected still-active, got %v", err)
	}
	voting.Store.SetHeight(created.EndHeight)
	_, err = voting.Handler.FinalizeProposalHandler(ctx, "principal.stranger", created.ProposalID)
	if !errors.Is(err, domainerrors.ErrProposalStillActive) {
		t.Fatalf("expected still-active at end height, got %v", err)
	}

	// Past the window any principal may finalize.
	voting.Store.SetHeight(created.EndHeight + 1)
	finalized, err := voting.Handler.FinalizeProposalHandler(ctx, "principal.stranger", created.ProposalID)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if finalized.Status != string(entities.ProposalStatusPassed) {
		t.Fatalf("expected passed, got %s", finalized.Status)
	}

	_, err = voting.Handler.FinalizeProposalHandler(ctx, "principal.stranger", created.ProposalID)
	if !errors.Is(err, domainerrors.ErrProposalNotActive) {
		t.Fatalf("expected not-active on second finalize, got %v", err)
	}
}

func TestFinalizeTieFails(t *testing.T) {
	voting, _ := newModules(t)
	ctx := context.Background()
	voting.Store.SetHeight(10)

	created, err := voting.Handler.CreateProposalHandler(ctx, "principal.alice", httptransport.CreateProposalRequest{
		Title:       "Contested proposal",
		Description: "Splits the electorate down the middle.",
		Duration:    144,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := voting.Handler.CastVoteHandler(ctx, "principal.alice", created.ProposalID, httptransport.CastVoteRequest{Choice: "yes"}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if _, err := voting.Handler.CastVoteHandler(ctx, "principal.bob", created.ProposalID, httptransport.CastVoteRequest{Choice: "no"}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	voting.Store.SetHeight(created.EndHeight + 1)
	finalized, err := voting.Handler.FinalizeProposalHandler(ctx, "principal.alice", created.ProposalID)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if finalized.Status != string(entities.ProposalStatusFailed) {
		t.Fatalf("expected a tie to fail, got %s", finalized.Status)
	}
}

func TestCancelProposal(t *testing.T) {
	voting, _ := newModules(t)
	ctx := context.Background()
	voting.Store.SetHeight(10)

	created, err := voting.Handler.CreateProposalHandler(ctx, "principal.alice", httptransport.CreateProposalRequest{
		Title:       "Emergency target",
		Description: "Will be cancelled by an admin.",
		Duration:    144,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = voting.Handler.CancelProposalHandler(ctx, "principal.alice", created.ProposalID)
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for non-admin, got %v", err)
	}
	if err := voting.Handler.CancelProposalHandler(ctx, "principal.deployer", created.ProposalID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	result, err := voting.Handler.ProposalResultHandler(ctx, created.ProposalID)
	if err != nil {
		t.Fatalf("result query failed: %v", err)
	}
	if result.Status != string(entities.ProposalStatusFailed) {
		t.Fatalf("expected cancelled proposal to be failed, got %s", result.Status)
	}

	err = voting.Handler.CancelProposalHandler(ctx, "principal.deployer", created.ProposalID)
	if !errors.Is(err, domainerrors.ErrProposalNotActive) {
		t.Fatalf("expected not-active on second cancel, got %v", err)
	}
}

func TestUpdateVotingConfig(t *testing.T) {
	voting, _ := newModules(t)
	ctx := context.Background()
	voting.Store.SetHeight(10)

	err := voting.Handler.UpdateVotingConfigHandler(ctx, "principal.alice", httptransport.UpdateVotingConfigRequest{
		MinDuration: 10,
		MaxDuration: 100,
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for non-admin, got %v", err)
	}
	err = voting.Handler.UpdateVotingConfigHandler(ctx, "principal.deployer", httptransport.UpdateVotingConfigRequest{
		MinDuration: 100,
		MaxDuration: 100,
	})
	if !errors.Is(err, domainerrors.ErrInvalidDuration) {
		t.Fatalf("expected invalid duration for min == max, got %v", err)
	}

	if err := voting.Handler.UpdateVotingConfigHandler(ctx, "principal.deployer", httptransport.UpdateVotingConfigRequest{
		MinDuration: 10,
		MaxDuration: 100,
	}); err != nil {
		t.Fatalf("config update failed: %v", err)
	}
	config, err := voting.Handler.VotingConfigHandler(ctx)
	if err != nil {
		t.Fatalf("config query failed: %v", err)
	}
	if config.MinDuration != 10 || config.MaxDuration != 100 {
		t.Fatalf("unexpected config %+v", config)
	}

	// New bounds apply to subsequent creates only.
	if _, err := voting.Handler.CreateProposalHandler(ctx, "principal.alice", httptransport.CreateProposalRequest{
		Title:       "Short proposal",
		Description: "Valid under the new bounds.",
		Duration:    10,
	}); err != nil {
		t.Fatalf("create under new bounds failed: %v", err)
	}
}

func TestFinalizerSweep(t *testing.T) {
	voting, _ := newModules(t)
	ctx := context.Background()
	voting.Store.SetHeight(10)

	first, err := voting.Proposals.CreateProposal(ctx, commands.CreateProposalCommand{
		Caller:      "principal.alice",
		Title:       "Sweeps on elapse",
		Description: "Resolved by the background finalizer.",
		Duration:    144,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := voting.Proposals.CastVote(ctx, commands.CastVoteCommand{
		Caller:     "principal.alice",
		ProposalID: first.ProposalID,
		Choice:     entities.VoteChoiceYes,
	}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	voting.Store.SetHeight(60)
	second, err := voting.Proposals.CreateProposal(ctx, commands.CreateProposalCommand{
		Caller:      "principal.bob",
		Title:       "Still in flight",
		Description: "Window has not elapsed yet.",
		Duration:    144,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	voting.Store.SetHeight(first.EndHeight + 1)
	if err := voting.Finalizer.RunOnce(ctx); err != nil {
		t.Fatalf("finalizer sweep failed: %v", err)
	}

	result, err := voting.Queries.GetProposalResult(ctx, first.ProposalID)
	if err != nil {
		t.Fatalf("result query failed: %v", err)
	}
	if result.Status != entities.ProposalStatusPassed {
		t.Fatalf("expected swept proposal to pass, got %s", result.Status)
	}
	inFlight, err := voting.Queries.GetProposalResult(ctx, second.ProposalID)
	if err != nil {
		t.Fatalf("result query failed: %v", err)
	}
	if inFlight.Status != entities.ProposalStatusActive {
		t.Fatalf("expected in-flight proposal untouched, got %s", inFlight.Status)
	}
}

// The api and worker binaries hold separate sequencers, so the repository is
// the arbiter for terminal transitions.
func TestTerminalTransitionCommitsOnce(t *testing.T) {
	voting, access := newModules(t)
	ctx := context.Background()
	voting.Store.SetHeight(10)

	created, err := voting.Proposals.CreateProposal(ctx, commands.CreateProposalCommand{
		Caller:      "principal.alice",
		Title:       "Rotate the relay keys",
		Description: "Rotate relay operator keys next window.",
		Duration:    144,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	sweeper := commands.ProposalUseCase{
		Repo:      voting.Store,
		Authz:     accesscontroladapter.Provider{Authorization: access.Authorization},
		Heights:   voting.Store,
		Clock:     voting.Store,
		Sequencer: ledgerseq.New(),
	}

	err = voting.Proposals.CancelProposal(ctx, commands.CancelProposalCommand{
		Caller:     "principal.deployer",
		ProposalID: created.ProposalID,
	})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	voting.Store.SetHeight(200)
	_, err = sweeper.FinalizeProposal(ctx, commands.FinalizeProposalCommand{
		Caller:     "principal.bob",
		ProposalID: created.ProposalID,
	})
	if !errors.Is(err, domainerrors.ErrProposalNotActive) {
		t.Fatalf("expected proposal not active, got %v", err)
	}

	// Even a write that read the proposal before the cancel committed cannot
	// overwrite the terminal status.
	err = voting.Store.SetProposalStatus(ctx, ports.SetStatusInput{
		ProposalID: created.ProposalID,
		Status:     entities.ProposalStatusPassed,
		At:         time.Now().UTC(),
	})
	if !errors.Is(err, domainerrors.ErrProposalNotActive) {
		t.Fatalf("expected proposal not active, got %v", err)
	}

	stored, found, err := voting.Store.GetProposal(ctx, created.ProposalID)
	if err != nil || !found {
		t.Fatalf("reading proposal failed: found=%v err=%v", found, err)
	}
	if stored.Status != entities.ProposalStatusFailed {
		t.Fatalf("expected failed to stick, got %s", stored.Status)
	}
}
