package server

import "sync"

// accountLocks serializes read-snapshot -> validate -> audit per account.
// Two concurrent requests against the same account must not both pass the
// risk-budget check against the same pre-update snapshot.
//
// Entries are never evicted. One mutex per account the process has seen is
// small enough at prop-firm account counts; revisit if this ever fronts an
// unbounded ID space.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: map[string]*sync.Mutex{}}
}

// acquire locks the account's mutex and returns its unlock func.
func (l *accountLocks) acquire(accountID string) func() {
	l.mu.Lock()
	m, ok := l.locks[accountID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[accountID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
