package economy

import (
	"sort"
	"sync"
)

// Ledger is the authoritative in-memory store of per-user balances. Accounts
// are created lazily on first access and live for the process lifetime.
//
// Every read-modify-write on a single account happens under that account's
// own lock, so two concurrent operations on the same user cannot interleave
// between the balance check and the mutation.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*account
	order    []string // first-touch order, used to break leaderboard ties
	start    int64
}

type account struct {
	mu      sync.Mutex
	balance int64
}

// LeaderboardEntry is one row of the richest-users query.
type LeaderboardEntry struct {
	UserID  string
	Balance int64
}

// NewLedger creates an empty ledger. New accounts open with startingBalance.
func NewLedger(startingBalance int64) *Ledger {
	return &Ledger{
		accounts: make(map[string]*account),
		start:    startingBalance,
	}
}

// account returns the account for userID, creating it if needed.
func (l *Ledger) account(userID string) *account {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[userID]
	if !ok {
		acct = &account{balance: l.start}
		l.accounts[userID] = acct
		l.order = append(l.order, userID)
	}
	return acct
}

// Balance returns the stored balance, or the starting balance for a user
// never seen before.
func (l *Ledger) Balance(userID string) int64 {
	acct := l.account(userID)
	acct.mu.Lock()
	defer acct.mu.Unlock()
	return acct.balance
}

// Adjust atomically applies delta to the user's balance. It fails with
// ErrInsufficientFunds if the result would go negative, leaving the balance
// untouched.
func (l *Ledger) Adjust(userID string, delta int64) (int64, error) {
	acct := l.account(userID)
	acct.mu.Lock()
	defer acct.mu.Unlock()

	if acct.balance+delta < 0 {
		return acct.balance, ErrInsufficientFunds
	}
	acct.balance += delta
	return acct.balance, nil
}

// AdjustFloored applies delta but clamps the result at zero instead of
// failing. It returns the new balance and the delta actually applied, which
// may be smaller in magnitude than requested. Used for robbery fines.
func (l *Ledger) AdjustFloored(userID string, delta int64) (int64, int64) {
	acct := l.account(userID)
	acct.mu.Lock()
	defer acct.mu.Unlock()

	prior := acct.balance
	acct.balance += delta
	if acct.balance < 0 {
		acct.balance = 0
	}
	return acct.balance, acct.balance - prior
}

// WithAccount runs fn with the user's balance while holding the account
// lock, then applies the returned delta. If fn returns an error nothing is
// applied. The whole check-evaluate-apply sequence is atomic with respect to
// any other operation on the same account.
func (l *Ledger) WithAccount(userID string, fn func(balance int64) (int64, error)) (int64, error) {
	acct := l.account(userID)
	acct.mu.Lock()
	defer acct.mu.Unlock()

	delta, err := fn(acct.balance)
	if err != nil {
		return acct.balance, err
	}
	if acct.balance+delta < 0 {
		return acct.balance, ErrInsufficientFunds
	}
	acct.balance += delta
	return acct.balance, nil
}

// Transfer atomically moves amount from one user to another. Both account
// locks are taken in lexicographic order of user id so two opposite-direction
// transfers cannot deadlock, and no reader ever observes the debit without
// the matching credit.
func (l *Ledger) Transfer(fromID, toID string, amount int64) (int64, int64, error) {
	if amount < 1 {
		return 0, 0, ErrInvalidAmount
	}
	if fromID == toID {
		return 0, 0, ErrSelfTransfer
	}

	from := l.account(fromID)
	to := l.account(toID)

	first, second := from, to
	if toID < fromID {
		first, second = to, from
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if from.balance < amount {
		return from.balance, to.balance, ErrInsufficientFunds
	}
	from.balance -= amount
	to.balance += amount
	return from.balance, to.balance, nil
}

// TopBalances returns up to n accounts ordered by descending balance. Equal
// balances keep the ledger's first-touch order.
func (l *Ledger) TopBalances(n int) []LeaderboardEntry {
	l.mu.Lock()
	entries := make([]LeaderboardEntry, 0, len(l.order))
	for _, userID := range l.order {
		acct := l.accounts[userID]
		acct.mu.Lock()
		entries = append(entries, LeaderboardEntry{UserID: userID, Balance: acct.balance})
		acct.mu.Unlock()
	}
	l.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Balance > entries[j].Balance
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
