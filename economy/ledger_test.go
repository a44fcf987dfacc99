package economy

import (
	"errors"
	"sync"
	"testing"
)

func TestLedgerLazyAccounts(t *testing.T) {
	lg := NewLedger(0)
	if got := lg.Balance("alice"); got != 0 {
		t.Errorf("expected 0 for a fresh account, got %d", got)
	}

	lg = NewLedger(1000)
	if got := lg.Balance("bob"); got != 1000 {
		t.Errorf("expected starting balance 1000, got %d", got)
	}
}

func TestAdjustRejectsOverdraft(t *testing.T) {
	lg := NewLedger(0)
	if _, err := lg.Adjust("alice", 100); err != nil {
		t.Fatalf("credit failed: %v", err)
	}

	if _, err := lg.Adjust("alice", -150); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := lg.Balance("alice"); got != 100 {
		t.Errorf("failed adjust must not change the balance, got %d", got)
	}

	newBal, err := lg.Adjust("alice", -100)
	if err != nil || newBal != 0 {
		t.Errorf("exact debit should succeed to 0, got %d err %v", newBal, err)
	}
}

func TestAdjustFlooredClampsAtZero(t *testing.T) {
	lg := NewLedger(0)
	lg.Adjust("alice", 100)

	newBal, applied := lg.AdjustFloored("alice", -1000)
	if newBal != 0 {
		t.Errorf("expected clamp at 0, got %d", newBal)
	}
	if applied != -100 {
		t.Errorf("expected applied delta -100, got %d", applied)
	}

	newBal, applied = lg.AdjustFloored("alice", 50)
	if newBal != 50 || applied != 50 {
		t.Errorf("credit through AdjustFloored: got %d applied %d", newBal, applied)
	}
}

func TestTransfer(t *testing.T) {
	lg := NewLedger(0)
	lg.Adjust("a", 100)

	fromBal, toBal, err := lg.Transfer("a", "b", 50)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if fromBal != 50 || toBal != 50 {
		t.Errorf("expected 50/50 after transfer, got %d/%d", fromBal, toBal)
	}

	if lg.Balance("a")+lg.Balance("b") != 100 {
		t.Error("transfer must conserve the sum of both balances")
	}
}

func TestTransferErrors(t *testing.T) {
	lg := NewLedger(0)
	lg.Adjust("a", 100)

	if _, _, err := lg.Transfer("a", "a", 10); !errors.Is(err, ErrSelfTransfer) {
		t.Errorf("expected ErrSelfTransfer, got %v", err)
	}
	if _, _, err := lg.Transfer("a", "b", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if _, _, err := lg.Transfer("a", "b", -5); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for negative, got %v", err)
	}
	if _, _, err := lg.Transfer("a", "b", 101); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if lg.Balance("a") != 100 || lg.Balance("b") != 0 {
		t.Error("failed transfers must not move money")
	}
}

func TestConcurrentTransfersIntoOneRecipient(t *testing.T) {
	lg := NewLedger(0)
	const senders = 50
	const amount = 50

	for i := 0; i < senders; i++ {
		lg.Adjust(senderID(i), 100)
	}

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, _, err := lg.Transfer(id, "bank", amount); err != nil {
				t.Errorf("transfer from %s: %v", id, err)
			}
		}(senderID(i))
	}
	wg.Wait()

	if got := lg.Balance("bank"); got != senders*amount {
		t.Errorf("expected recipient balance %d, got %d", senders*amount, got)
	}
	for i := 0; i < senders; i++ {
		if got := lg.Balance(senderID(i)); got != 100-amount {
			t.Errorf("sender %d expected %d, got %d", i, 100-amount, got)
		}
	}
}

func TestConcurrentOppositeTransfers(t *testing.T) {
	lg := NewLedger(0)
	lg.Adjust("a", 10000)
	lg.Adjust("b", 10000)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			lg.Transfer("a", "b", 1)
		}()
		go func() {
			defer wg.Done()
			lg.Transfer("b", "a", 1)
		}()
	}
	wg.Wait()

	if sum := lg.Balance("a") + lg.Balance("b"); sum != 20000 {
		t.Errorf("opposite transfers lost money: sum %d", sum)
	}
}

func TestConcurrentAdjustsSameAccount(t *testing.T) {
	lg := NewLedger(0)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lg.Adjust("alice", 1)
		}()
	}
	wg.Wait()

	if got := lg.Balance("alice"); got != 200 {
		t.Errorf("expected 200 after 200 concurrent credits, got %d", got)
	}
}

func TestWithAccountAtomicity(t *testing.T) {
	lg := NewLedger(0)
	lg.Adjust("alice", 100)

	newBal, err := lg.WithAccount("alice", func(balance int64) (int64, error) {
		if balance < 60 {
			return 0, ErrInsufficientFunds
		}
		return -60, nil
	})
	if err != nil || newBal != 40 {
		t.Fatalf("expected 40, got %d err %v", newBal, err)
	}

	_, err = lg.WithAccount("alice", func(balance int64) (int64, error) {
		if balance < 60 {
			return 0, ErrInsufficientFunds
		}
		return -60, nil
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if lg.Balance("alice") != 40 {
		t.Error("a failed WithAccount must not change the balance")
	}
}

func TestTopBalancesTieOrder(t *testing.T) {
	lg := NewLedger(0)
	lg.Adjust("first", 10)
	lg.Adjust("rich", 20)
	lg.Adjust("second", 10)

	top := lg.TopBalances(10)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].UserID != "rich" {
		t.Errorf("expected rich first, got %s", top[0].UserID)
	}
	if top[1].UserID != "first" || top[2].UserID != "second" {
		t.Errorf("ties must keep first-touch order, got %s then %s", top[1].UserID, top[2].UserID)
	}

	top = lg.TopBalances(2)
	if len(top) != 2 {
		t.Errorf("expected truncation to 2, got %d", len(top))
	}
}

func senderID(i int) string {
	return "sender-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
}
