package ledgerseq

import "sync"

// Sequencer serializes all state-changing ledger calls for one deployed
// instance into a single global order. The original host chain provides this
// guarantee externally (one call = one atomic transaction); outside that host
// it has to be reproduced explicitly, so every mutating use-case runs its
// whole check-then-write span under the instance sequencer.
type Sequencer struct {
	mu sync.Mutex
}

func New() *Sequencer {
	return &Sequencer{}
}

// Do runs fn as one serialized ledger call. A nil Sequencer runs fn directly,
// which is only acceptable for single-goroutine test wiring.
func (s *Sequencer) Do(fn func() error) error {
	if s == nil {
		return fn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}
