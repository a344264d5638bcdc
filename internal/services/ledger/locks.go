package ledger

import "sync"

// walletLocks serializes ledger operations per wallet within this
// process. Entries live for the process lifetime; the key space is
// bounded by the registered user base.
type walletLocks struct {
	mu   sync.Mutex
	held map[uint]*sync.Mutex
}

func newWalletLocks() *walletLocks {
	return &walletLocks{held: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex for userID and returns the unlock func.
func (l *walletLocks) Lock(userID uint) func() {
	l.mu.Lock()
	m, ok := l.held[userID]
	if !ok {
		m = &sync.Mutex{}
		l.held[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
