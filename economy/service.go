package economy

// WagerOutcome is the structured result of one economy operation, handed to
// the presentation layer for rendering.
type WagerOutcome struct {
	Kind             Kind
	NetDelta         int64
	ResultingBalance int64
	Details          any
}

// Purchase is the result of a successful shop buy.
type Purchase struct {
	Item       ShopItem
	NewBalance int64
}

// TransferResult reports both balances after a give/pay.
type TransferResult struct {
	FromBalance int64
	ToBalance   int64
}

// WalletView aggregates a user's balance and item holdings.
type WalletView struct {
	Balance   int64
	ItemCount int64
}

// Service owns the ledger, cooldown, and inventory state and exposes one
// operation per economy subcommand. It is safe for concurrent use by many
// independent callers, including near-simultaneous requests from the same
// user.
type Service struct {
	ledger    *Ledger
	cooldowns *CooldownTracker
	inventory *Inventory
	src       Source
}

// NewService wires a fresh economy around the given random source. Accounts
// open with startingBalance.
func NewService(src Source, startingBalance int64) *Service {
	return &Service{
		ledger:    NewLedger(startingBalance),
		cooldowns: NewCooldownTracker(),
		inventory: NewInventory(),
		src:       &lockedSource{src: src},
	}
}

// Balance returns the user's current balance.
func (s *Service) Balance(userID string) int64 {
	return s.ledger.Balance(userID)
}

// Wallet returns the user's balance together with their total item count.
func (s *Service) Wallet(userID string) WalletView {
	return WalletView{
		Balance:   s.ledger.Balance(userID),
		ItemCount: s.inventory.TotalCount(userID),
	}
}

// InventoryOf returns the user's item counts.
func (s *Service) InventoryOf(userID string) map[string]int64 {
	return s.inventory.Items(userID)
}

// Shop returns the static catalog.
func (s *Service) Shop() []ShopItem {
	return Catalog
}

// Leaderboard returns the top n accounts by descending balance.
func (s *Service) Leaderboard(n int) []LeaderboardEntry {
	return s.ledger.TopBalances(n)
}

// Buy debits the item's price and adds one unit to the user's inventory.
func (s *Service) Buy(userID, itemKey string) (*Purchase, error) {
	item, ok := ItemByKey(itemKey)
	if !ok {
		return nil, ErrUnknownItem
	}
	newBalance, err := s.ledger.Adjust(userID, -item.Price)
	if err != nil {
		return nil, err
	}
	s.inventory.Add(userID, item.Key, 1)
	return &Purchase{Item: item, NewBalance: newBalance}, nil
}

// Give moves amount from one user to another. Pay is the same operation
// under its other command name.
func (s *Service) Give(fromID, toID string, amount int64) (*TransferResult, error) {
	fromBalance, toBalance, err := s.ledger.Transfer(fromID, toID, amount)
	if err != nil {
		return nil, err
	}
	return &TransferResult{FromBalance: fromBalance, ToBalance: toBalance}, nil
}

// Pay is give under its second command name.
func (s *Service) Pay(fromID, toID string, amount int64) (*TransferResult, error) {
	return s.Give(fromID, toID, amount)
}

// Coinflip bets on heads or tails at even money.
func (s *Service) Coinflip(userID string, bet int64, choice CoinSide) (*WagerOutcome, error) {
	return s.playWager(userID, KindCoinflip, bet, string(choice))
}

// Gamble plays the tiered multiplier game.
func (s *Service) Gamble(userID string, bet int64) (*WagerOutcome, error) {
	return s.playWager(userID, KindGamble, bet, "")
}

// Slots spins three reels.
func (s *Service) Slots(userID string, bet int64) (*WagerOutcome, error) {
	return s.playWager(userID, KindSlots, bet, "")
}

// Mines plays one round of the minefield game.
func (s *Service) Mines(userID string, bet int64) (*WagerOutcome, error) {
	return s.playWager(userID, KindMines, bet, "")
}

// Roulette bets on red, black, or green.
func (s *Service) Roulette(userID string, bet int64, choice RouletteColor) (*WagerOutcome, error) {
	return s.playWager(userID, KindRoulette, bet, string(choice))
}

// Towers climbs up to five floors, banking 0.5x per floor reached.
func (s *Service) Towers(userID string, bet int64) (*WagerOutcome, error) {
	return s.playWager(userID, KindTowers, bet, "")
}

// Whack plays whack-a-mole.
func (s *Service) Whack(userID string, bet int64) (*WagerOutcome, error) {
	return s.playWager(userID, KindWhack, bet, "")
}

// Daily claims the 24h reward.
func (s *Service) Daily(userID string) (*WagerOutcome, error) {
	return s.playActivity(userID, KindDaily)
}

// Work earns a small wage, no cooldown.
func (s *Service) Work(userID string) (*WagerOutcome, error) {
	return s.playActivity(userID, KindWork)
}

// Beg asks strangers for money, 30s cooldown per attempt.
func (s *Service) Beg(userID string) (*WagerOutcome, error) {
	return s.playActivity(userID, KindBeg)
}

// RobBank attempts a bank robbery, 2h cooldown per attempt.
func (s *Service) RobBank(userID string) (*WagerOutcome, error) {
	return s.playActivity(userID, KindRobBank)
}

// RobATM attempts an ATM robbery, no cooldown.
func (s *Service) RobATM(userID string) (*WagerOutcome, error) {
	return s.playActivity(userID, KindRobATM)
}

// playWager runs a bet-taking game. The balance check, draw, and delta are
// applied inside one account critical section; on insufficient funds no
// randomness is consumed.
func (s *Service) playWager(userID string, kind Kind, bet int64, choice string) (*WagerOutcome, error) {
	if bet < 1 {
		return nil, ErrInvalidAmount
	}

	var result WagerResult
	newBalance, err := s.ledger.WithAccount(userID, func(balance int64) (int64, error) {
		if balance < bet {
			return 0, ErrInsufficientFunds
		}
		var evalErr error
		result, evalErr = Evaluate(kind, bet, choice, s.src)
		if evalErr != nil {
			return 0, evalErr
		}
		return result.NetDelta, nil
	})
	if err != nil {
		return nil, err
	}

	return &WagerOutcome{
		Kind:             kind,
		NetDelta:         result.NetDelta,
		ResultingBalance: newBalance,
		Details:          result.Details,
	}, nil
}

// playActivity runs a no-bet activity. Cooldown-gated activities record the
// attempt, win or lose; robbery fines are applied as floored debits.
func (s *Service) playActivity(userID string, kind Kind) (*WagerOutcome, error) {
	if ok, remaining := s.cooldowns.TryClaim(userID, kind); !ok {
		return nil, &CooldownError{Activity: kind, Remaining: remaining}
	}

	result, err := Evaluate(kind, 0, "", s.src)
	if err != nil {
		return nil, err
	}

	var newBalance, applied int64
	if result.Floored {
		newBalance, applied = s.ledger.AdjustFloored(userID, result.NetDelta)
	} else {
		applied = result.NetDelta
		newBalance, err = s.ledger.Adjust(userID, result.NetDelta)
		if err != nil {
			return nil, err
		}
	}

	return &WagerOutcome{
		Kind:             kind,
		NetDelta:         applied,
		ResultingBalance: newBalance,
		Details:          result.Details,
	}, nil
}
