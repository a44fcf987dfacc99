package economy

import "fmt"

// Kind identifies one economy activity or mini-game.
type Kind string

const (
	KindCoinflip Kind = "coinflip"
	KindGamble   Kind = "gamble"
	KindSlots    Kind = "slots"
	KindMines    Kind = "mines"
	KindRoulette Kind = "roulette"
	KindTowers   Kind = "towers"
	KindWhack    Kind = "whack"
	KindRobBank  Kind = "rob-bank"
	KindRobATM   Kind = "rob-atm"
	KindBeg      Kind = "beg"
	KindDaily    Kind = "daily"
	KindWork     Kind = "work"
)

// CoinSide is a coinflip choice or result.
type CoinSide string

const (
	Heads CoinSide = "heads"
	Tails CoinSide = "tails"
)

// RouletteColor is a roulette choice or result.
type RouletteColor string

const (
	Red   RouletteColor = "red"
	Black RouletteColor = "black"
	Green RouletteColor = "green"
)

// GambleTier is the payout band a gamble draw landed in.
type GambleTier int

const (
	GambleLose GambleTier = iota
	GambleSmallWin
	GambleBigWin
	GambleJackpot
)

func (t GambleTier) String() string {
	switch t {
	case GambleLose:
		return "lose"
	case GambleSmallWin:
		return "small win"
	case GambleBigWin:
		return "big win"
	case GambleJackpot:
		return "jackpot"
	default:
		return "unknown"
	}
}

// Slot machine symbols, drawn uniformly per reel.
var slotSymbols = []string{"🍒", "🍋", "🍊", "🍇", "⭐", "💎"}

const (
	slotDiamond = "💎"
	slotStar    = "⭐"
)

// WorkFlavors are the cosmetic job descriptions for /eco work. The evaluator
// reports an index into this slice.
var WorkFlavors = []string{
	"You worked as a developer and earned",
	"You delivered food and earned",
	"You walked dogs and earned",
	"You did freelance work and earned",
	"You worked at a coffee shop and earned",
}

// Per-game outcome details, carried in WagerOutcome.Details for rendering.
type (
	CoinflipDetails struct {
		Choice CoinSide
		Landed CoinSide
		Won    bool
	}

	GambleDetails struct {
		Tier     GambleTier
		Winnings int64 // gross payout, 0 on a loss
	}

	SlotsDetails struct {
		Reels    [3]string
		Winnings int64 // gross payout; equals the bet on a push
	}

	MinesDetails struct {
		HitMine  bool
		Winnings int64
	}

	RouletteDetails struct {
		Choice RouletteColor
		Landed RouletteColor
		Payout int64
	}

	TowersDetails struct {
		Floor      int
		Multiplier float64
		Winnings   int64
	}

	WhackDetails struct {
		Moles    int64
		Winnings int64
	}

	RobDetails struct {
		Success bool
		Amount  int64 // loot on success, the drawn fine on failure
	}

	BegDetails struct {
		Received bool
		Amount   int64
	}

	DailyDetails struct {
		Amount int64
	}

	WorkDetails struct {
		Amount int64
		Flavor int
	}
)

// WagerResult is the pure evaluation of one game round. NetDelta is the
// signed balance change; Floored marks debits that must clamp at zero
// instead of failing (robbery fines).
type WagerResult struct {
	NetDelta int64
	Floored  bool
	Details  any
}

type evalFunc func(bet int64, choice string, src Source) WagerResult

// evaluators maps each game kind to its payout rules. Dispatching through
// the table keeps every game a standalone pure function.
var evaluators = map[Kind]evalFunc{
	KindCoinflip: evalCoinflip,
	KindGamble:   evalGamble,
	KindSlots:    evalSlots,
	KindMines:    evalMines,
	KindRoulette: evalRoulette,
	KindTowers:   evalTowers,
	KindWhack:    evalWhack,
	KindRobBank:  evalRobBank,
	KindRobATM:   evalRobATM,
	KindBeg:      evalBeg,
	KindDaily:    evalDaily,
	KindWork:     evalWork,
}

// Evaluate runs the payout rules for one game kind. It consumes draws from
// src and touches no state; callers of bet-taking kinds must have verified
// the balance covers the bet before consuming any randomness.
func Evaluate(kind Kind, bet int64, choice string, src Source) (WagerResult, error) {
	eval, ok := evaluators[kind]
	if !ok {
		return WagerResult{}, fmt.Errorf("unknown game kind %q", kind)
	}
	return eval(bet, choice, src), nil
}

func evalCoinflip(bet int64, choice string, src Source) WagerResult {
	landed := Heads
	if src.Float64() >= 0.5 {
		landed = Tails
	}
	won := CoinSide(choice) == landed
	delta := -bet
	if won {
		delta = bet
	}
	return WagerResult{
		NetDelta: delta,
		Details:  CoinflipDetails{Choice: CoinSide(choice), Landed: landed, Won: won},
	}
}

func evalGamble(bet int64, _ string, src Source) WagerResult {
	r := src.Float64()

	var tier GambleTier
	var winnings int64
	switch {
	case r < 0.4:
		tier = GambleLose
	case r < 0.7:
		tier, winnings = GambleSmallWin, bet*3/2
	case r < 0.95:
		tier, winnings = GambleBigWin, bet*2
	default:
		tier, winnings = GambleJackpot, bet*5
	}

	delta := winnings - bet
	if tier == GambleLose {
		delta = -bet
	}
	return WagerResult{
		NetDelta: delta,
		Details:  GambleDetails{Tier: tier, Winnings: winnings},
	}
}

func evalSlots(bet int64, _ string, src Source) WagerResult {
	var reels [3]string
	for i := range reels {
		reels[i] = slotSymbols[uniformInt(src, 0, int64(len(slotSymbols)))]
	}

	var winnings int64
	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		switch reels[0] {
		case slotDiamond:
			winnings = bet * 10
		case slotStar:
			winnings = bet * 5
		default:
			winnings = bet * 3
		}
	case reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]:
		winnings = bet // push
	}

	return WagerResult{
		NetDelta: winnings - bet,
		Details:  SlotsDetails{Reels: reels, Winnings: winnings},
	}
}

func evalMines(bet int64, _ string, src Source) WagerResult {
	if src.Float64() < 0.4 {
		return WagerResult{
			NetDelta: -bet,
			Details:  MinesDetails{HitMine: true},
		}
	}
	winnings := bet * 9 / 5
	return WagerResult{
		NetDelta: winnings - bet,
		Details:  MinesDetails{Winnings: winnings},
	}
}

func evalRoulette(bet int64, choice string, src Source) WagerResult {
	r := src.Float64()

	var landed RouletteColor
	switch {
	case r < 0.02:
		landed = Green
	case r < 0.51:
		landed = Red
	default:
		landed = Black
	}

	var payout int64
	if RouletteColor(choice) == landed {
		if landed == Green {
			payout = bet * 35
		} else {
			payout = bet * 2
		}
	}

	return WagerResult{
		NetDelta: payout - bet,
		Details:  RouletteDetails{Choice: RouletteColor(choice), Landed: landed, Payout: payout},
	}
}

func evalTowers(bet int64, _ string, src Source) WagerResult {
	floor := 1
	advanced := 0
	for i := 0; i < 5; i++ {
		if src.Float64() >= 0.7 {
			break
		}
		floor++
		advanced++
	}

	// multiplier = 1 + 0.5 per floor advanced; bet*(2+advanced)/2 is its
	// exact integer floor
	winnings := bet * int64(2+advanced) / 2
	return WagerResult{
		NetDelta: winnings - bet,
		Details: TowersDetails{
			Floor:      floor,
			Multiplier: 1 + 0.5*float64(advanced),
			Winnings:   winnings,
		},
	}
}

func evalWhack(bet int64, _ string, src Source) WagerResult {
	moles := uniformInt(src, 1, 11)
	winnings := bet * (10 + moles) / 10
	return WagerResult{
		NetDelta: winnings - bet,
		Details:  WhackDetails{Moles: moles, Winnings: winnings},
	}
}

func evalRobBank(_ int64, _ string, src Source) WagerResult {
	if src.Float64() < 0.3 {
		loot := uniformInt(src, 1000, 6000)
		return WagerResult{
			NetDelta: loot,
			Details:  RobDetails{Success: true, Amount: loot},
		}
	}
	fine := uniformInt(src, 500, 1500)
	return WagerResult{
		NetDelta: -fine,
		Floored:  true,
		Details:  RobDetails{Amount: fine},
	}
}

func evalRobATM(_ int64, _ string, src Source) WagerResult {
	if src.Float64() < 0.6 {
		loot := uniformInt(src, 100, 600)
		return WagerResult{
			NetDelta: loot,
			Details:  RobDetails{Success: true, Amount: loot},
		}
	}
	fine := uniformInt(src, 100, 300)
	return WagerResult{
		NetDelta: -fine,
		Floored:  true,
		Details:  RobDetails{Amount: fine},
	}
}

func evalBeg(_ int64, _ string, src Source) WagerResult {
	if src.Float64() < 0.3 {
		return WagerResult{Details: BegDetails{}}
	}
	amount := uniformInt(src, 1, 51)
	return WagerResult{
		NetDelta: amount,
		Details:  BegDetails{Received: true, Amount: amount},
	}
}

func evalDaily(_ int64, _ string, src Source) WagerResult {
	amount := uniformInt(src, 100, 600)
	return WagerResult{
		NetDelta: amount,
		Details:  DailyDetails{Amount: amount},
	}
}

func evalWork(_ int64, _ string, src Source) WagerResult {
	amount := uniformInt(src, 50, 250)
	flavor := int(uniformInt(src, 0, int64(len(WorkFlavors))))
	return WagerResult{
		NetDelta: amount,
		Details:  WorkDetails{Amount: amount, Flavor: flavor},
	}
}
