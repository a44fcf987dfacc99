package economy

import (
	"errors"
	"testing"
)

func newTestService(src Source) *Service {
	return NewService(src, 0)
}

func TestDailyScenario(t *testing.T) {
	svc := newTestService(draws(0.5))

	outcome, err := svc.Daily("alice")
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if outcome.NetDelta < 100 || outcome.NetDelta >= 600 {
		t.Errorf("daily reward out of range: %d", outcome.NetDelta)
	}
	if outcome.ResultingBalance != outcome.NetDelta {
		t.Errorf("account started at 0, expected balance %d, got %d",
			outcome.NetDelta, outcome.ResultingBalance)
	}

	_, err = svc.Daily("alice")
	var cdErr *CooldownError
	if !errors.As(err, &cdErr) {
		t.Fatalf("expected CooldownError, got %v", err)
	}
	if cdErr.Remaining <= 0 {
		t.Errorf("expected positive remaining, got %s", cdErr.Remaining)
	}

	// the denied attempt must not have touched the balance
	if got := svc.Balance("alice"); got != outcome.ResultingBalance {
		t.Errorf("denied claim changed balance to %d", got)
	}
}

func TestBuyScenario(t *testing.T) {
	svc := newTestService(draws())
	svc.ledger.Adjust("alice", 100)

	purchase, err := svc.Buy("alice", "coffee")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if purchase.NewBalance != 50 {
		t.Errorf("expected balance 50 after coffee, got %d", purchase.NewBalance)
	}
	if got := svc.InventoryOf("alice")["coffee"]; got != 1 {
		t.Errorf("expected 1 coffee in inventory, got %d", got)
	}

	if _, err := svc.Buy("alice", "yacht"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("expected ErrUnknownItem, got %v", err)
	}

	if _, err := svc.Buy("alice", "car"); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := svc.InventoryOf("alice")["car"]; got != 0 {
		t.Errorf("failed buy must not add items, got %d cars", got)
	}
}

func TestGiveScenario(t *testing.T) {
	svc := newTestService(draws())
	svc.ledger.Adjust("a", 100)

	res, err := svc.Give("a", "b", 50)
	if err != nil {
		t.Fatalf("give: %v", err)
	}
	if res.FromBalance != 50 || res.ToBalance != 50 {
		t.Errorf("expected 50/50, got %d/%d", res.FromBalance, res.ToBalance)
	}

	if _, err := svc.Give("a", "a", 10); !errors.Is(err, ErrSelfTransfer) {
		t.Errorf("expected ErrSelfTransfer, got %v", err)
	}
}

func TestPayIsGive(t *testing.T) {
	svc := newTestService(draws())
	svc.ledger.Adjust("a", 100)

	res, err := svc.Pay("a", "b", 30)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if res.FromBalance != 70 || res.ToBalance != 30 {
		t.Errorf("expected 70/30, got %d/%d", res.FromBalance, res.ToBalance)
	}
}

func TestWagerOutcomeBalanceInvariant(t *testing.T) {
	svc := newTestService(draws(0.2))
	svc.ledger.Adjust("alice", 500)

	outcome, err := svc.Coinflip("alice", 100, Heads)
	if err != nil {
		t.Fatalf("coinflip: %v", err)
	}
	if outcome.NetDelta != 100 {
		t.Errorf("forced heads win should net +100, got %d", outcome.NetDelta)
	}
	if outcome.ResultingBalance != 500+outcome.NetDelta {
		t.Errorf("resultingBalance must equal prior+netDelta, got %d", outcome.ResultingBalance)
	}
	if svc.Balance("alice") != outcome.ResultingBalance {
		t.Error("reported balance must match the ledger")
	}
}

func TestWagerRejectsInvalidAmount(t *testing.T) {
	svc := newTestService(draws())

	if _, err := svc.Gamble("alice", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for zero bet, got %v", err)
	}
	if _, err := svc.Slots("alice", -5); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for negative bet, got %v", err)
	}
}

func TestInsufficientFundsConsumesNoRandomness(t *testing.T) {
	// the empty source panics on any draw
	svc := newTestService(draws())

	if _, err := svc.Mines("alice", 50); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := svc.Balance("alice"); got != 0 {
		t.Errorf("failed wager must not move money, got %d", got)
	}
}

func TestTowersScenarioThroughService(t *testing.T) {
	svc := newTestService(draws(0.1, 0.1, 0.1, 0.9))
	svc.ledger.Adjust("alice", 100)

	outcome, err := svc.Towers("alice", 100)
	if err != nil {
		t.Fatalf("towers: %v", err)
	}
	d := outcome.Details.(TowersDetails)
	if d.Floor != 4 || d.Multiplier != 2.5 {
		t.Errorf("expected floor 4 at 2.5x, got %d at %v", d.Floor, d.Multiplier)
	}
	if outcome.ResultingBalance != 250 {
		t.Errorf("expected balance 250, got %d", outcome.ResultingBalance)
	}
}

func TestRobBankFineIsFloored(t *testing.T) {
	svc := newTestService(draws(0.9, 0.5)) // fail, fine 1000
	svc.ledger.Adjust("alice", 100)

	outcome, err := svc.RobBank("alice")
	if err != nil {
		t.Fatalf("rob-bank: %v", err)
	}
	if outcome.ResultingBalance != 0 {
		t.Errorf("fine must clamp the balance at 0, got %d", outcome.ResultingBalance)
	}
	if outcome.NetDelta != -100 {
		t.Errorf("netDelta must reflect the applied debit, got %d", outcome.NetDelta)
	}
	d := outcome.Details.(RobDetails)
	if d.Amount != 1000 {
		t.Errorf("details keep the drawn fine, got %d", d.Amount)
	}
}

func TestRobBankCooldownRecordsOnFailureToo(t *testing.T) {
	svc := newTestService(draws(0.9, 0.5))

	if _, err := svc.RobBank("alice"); err != nil {
		t.Fatalf("rob-bank: %v", err)
	}

	_, err := svc.RobBank("alice")
	var cdErr *CooldownError
	if !errors.As(err, &cdErr) {
		t.Fatalf("a failed robbery still starts the cooldown, got %v", err)
	}
}

func TestRobATMNeverGated(t *testing.T) {
	vals := make([]float64, 0, 40)
	for i := 0; i < 20; i++ {
		vals = append(vals, 0.1, 0.5) // success + loot draw
	}
	svc := newTestService(draws(vals...))

	for i := 0; i < 20; i++ {
		if _, err := svc.RobATM("alice"); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}
}

func TestWalletAggregates(t *testing.T) {
	svc := newTestService(draws())
	svc.ledger.Adjust("alice", 200)
	svc.inventory.Add("alice", "coffee", 3)

	w := svc.Wallet("alice")
	if w.Balance != 200 || w.ItemCount != 3 {
		t.Errorf("unexpected wallet %+v", w)
	}
}

func TestLeaderboardThroughService(t *testing.T) {
	svc := newTestService(draws())
	svc.ledger.Adjust("a", 10)
	svc.ledger.Adjust("b", 30)
	svc.ledger.Adjust("c", 20)

	top := svc.Leaderboard(2)
	if len(top) != 2 || top[0].UserID != "b" || top[1].UserID != "c" {
		t.Errorf("unexpected leaderboard %v", top)
	}
}

func TestWorkThroughService(t *testing.T) {
	svc := newTestService(draws(0.0, 0.0))

	outcome, err := svc.Work("alice")
	if err != nil {
		t.Fatalf("work: %v", err)
	}
	d := outcome.Details.(WorkDetails)
	if d.Amount != 50 || d.Flavor != 0 {
		t.Errorf("unexpected work details %+v", d)
	}

	// no cooldown on work
	svc.src = &lockedSource{src: draws(0.0, 0.0)}
	if _, err := svc.Work("alice"); err != nil {
		t.Errorf("immediate second work: %v", err)
	}
}
