package cogs

import (
	"errors"
	"fmt"
	"strings"

	"ecobot-go/economy"
	"ecobot-go/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// EconomyCog handles the /eco command group. All state lives in the
// economy service; the cog only parses interactions and renders outcomes.
type EconomyCog struct {
	svc              *economy.Service
	log              zerolog.Logger
	leaderboardLimit int
}

func NewEconomyCog(svc *economy.Service, log zerolog.Logger, leaderboardLimit int) *EconomyCog {
	return &EconomyCog{svc: svc, log: log, leaderboardLimit: leaderboardLimit}
}

// RegisterEconomyCommands builds the /eco application command schema.
func (c *EconomyCog) RegisterEconomyCommands() *discordgo.ApplicationCommand {
	betOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "bet",
		Description: "Amount of coins to bet",
		Required:    true,
		MinValue:    &minBet,
	}

	return &discordgo.ApplicationCommand{
		Name:        "eco",
		Description: "Economy commands",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "balance",
				Description: "Check a balance",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "User to check (defaults to you)",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "wallet",
				Description: "Check a wallet summary",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "User to check (defaults to you)",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "inventory",
				Description: "Show owned items",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "User to check (defaults to you)",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "shop",
				Description: "Browse the item shop",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "buy",
				Description: "Buy an item from the shop",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "item",
						Description: "Item to buy",
						Required:    true,
						Choices:     shopChoices(),
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "give",
				Description: "Give coins to another user",
				Options:     transferOptions(),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "pay",
				Description: "Pay coins to another user",
				Options:     transferOptions(),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "leaderboard",
				Description: "Show the richest users",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "coinflip",
				Description: "Flip a coin at even money",
				Options: []*discordgo.ApplicationCommandOption{
					betOption,
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "choice",
						Description: "Heads or tails",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Heads", Value: string(economy.Heads)},
							{Name: "Tails", Value: string(economy.Tails)},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "gamble",
				Description: "Gamble for a tiered multiplier",
				Options:     []*discordgo.ApplicationCommandOption{betOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "slots",
				Description: "Spin the slot machine",
				Options:     []*discordgo.ApplicationCommandOption{betOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "mines",
				Description: "Cross the minefield",
				Options:     []*discordgo.ApplicationCommandOption{betOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "roulette",
				Description: "Bet on a roulette color",
				Options: []*discordgo.ApplicationCommandOption{
					betOption,
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "color",
						Description: "Color to bet on",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Red", Value: string(economy.Red)},
							{Name: "Black", Value: string(economy.Black)},
							{Name: "Green", Value: string(economy.Green)},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "towers",
				Description: "Climb the tower for rising multipliers",
				Options:     []*discordgo.ApplicationCommandOption{betOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "whack",
				Description: "Play whack-a-mole",
				Options:     []*discordgo.ApplicationCommandOption{betOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "daily",
				Description: "Claim your daily reward",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "work",
				Description: "Work for some coins",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "beg",
				Description: "Beg strangers for coins",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "rob-bank",
				Description: "Rob the bank (high risk, high reward)",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "rob-atm",
				Description: "Rob an ATM (lower risk, lower reward)",
			},
		},
	}
}

var minBet float64 = 1

func transferOptions() []*discordgo.ApplicationCommandOption {
	var minAmount float64 = 1
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "Recipient",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "amount",
			Description: "Amount of coins",
			Required:    true,
			MinValue:    &minAmount,
		},
	}
}

func shopChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(economy.Catalog))
	for _, item := range economy.Catalog {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s %s (%s coins)", item.Icon, item.DisplayName, utils.FormatCoins(item.Price)),
			Value: item.Key,
		})
	}
	return choices
}

// HandleEconomyCommand dispatches one /eco interaction.
func (c *EconomyCog) HandleEconomyCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)
	userID := interactionUserID(i)

	switch sub.Name {
	case "balance":
		target, name := c.targetUser(s, i, opts)
		balance := c.svc.Balance(target)
		respondEmbed(s, i, utils.CreateBrandedEmbed(
			"💰 Balance",
			fmt.Sprintf("**%s** has **%s** %s", name, utils.FormatCoins(balance), utils.CoinEmoji),
			utils.BotColor,
		))

	case "wallet":
		target, name := c.targetUser(s, i, opts)
		w := c.svc.Wallet(target)
		embed := utils.CreateBrandedEmbed("👛 Wallet", fmt.Sprintf("Wallet of **%s**", name), utils.BotColor)
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Coins", Value: fmt.Sprintf("%s %s", utils.FormatCoins(w.Balance), utils.CoinEmoji), Inline: true},
			{Name: "Items", Value: utils.FormatCoins(w.ItemCount), Inline: true},
		}
		respondEmbed(s, i, embed)

	case "inventory":
		target, name := c.targetUser(s, i, opts)
		c.respondInventory(s, i, target, name)

	case "shop":
		c.respondShop(s, i)

	case "buy":
		c.handleBuy(s, i, userID, opts["item"].StringValue())

	case "give", "pay":
		recipient := opts["user"].UserValue(s)
		c.handleTransfer(s, i, userID, recipient, opts["amount"].IntValue())

	case "leaderboard":
		c.respondLeaderboard(s, i)

	case "coinflip":
		outcome, err := c.svc.Coinflip(userID, opts["bet"].IntValue(), economy.CoinSide(opts["choice"].StringValue()))
		c.respondWager(s, i, userID, opts["bet"].IntValue(), outcome, err)

	case "gamble":
		outcome, err := c.svc.Gamble(userID, opts["bet"].IntValue())
		c.respondWager(s, i, userID, opts["bet"].IntValue(), outcome, err)

	case "slots":
		outcome, err := c.svc.Slots(userID, opts["bet"].IntValue())
		c.respondWager(s, i, userID, opts["bet"].IntValue(), outcome, err)

	case "mines":
		outcome, err := c.svc.Mines(userID, opts["bet"].IntValue())
		c.respondWager(s, i, userID, opts["bet"].IntValue(), outcome, err)

	case "roulette":
		outcome, err := c.svc.Roulette(userID, opts["bet"].IntValue(), economy.RouletteColor(opts["color"].StringValue()))
		c.respondWager(s, i, userID, opts["bet"].IntValue(), outcome, err)

	case "towers":
		outcome, err := c.svc.Towers(userID, opts["bet"].IntValue())
		c.respondWager(s, i, userID, opts["bet"].IntValue(), outcome, err)

	case "whack":
		outcome, err := c.svc.Whack(userID, opts["bet"].IntValue())
		c.respondWager(s, i, userID, opts["bet"].IntValue(), outcome, err)

	case "daily":
		outcome, err := c.svc.Daily(userID)
		c.respondActivity(s, i, outcome, err)

	case "work":
		outcome, err := c.svc.Work(userID)
		c.respondActivity(s, i, outcome, err)

	case "beg":
		outcome, err := c.svc.Beg(userID)
		c.respondActivity(s, i, outcome, err)

	case "rob-bank":
		outcome, err := c.svc.RobBank(userID)
		c.respondActivity(s, i, outcome, err)

	case "rob-atm":
		outcome, err := c.svc.RobATM(userID)
		c.respondActivity(s, i, outcome, err)

	default:
		respondError(s, i, "Unknown subcommand.")
	}
}

func (c *EconomyCog) targetUser(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) (id, name string) {
	if opt, ok := opts["user"]; ok {
		u := opt.UserValue(s)
		return u.ID, u.Username
	}
	if i.Member != nil {
		return i.Member.User.ID, i.Member.User.Username
	}
	return i.User.ID, i.User.Username
}

func (c *EconomyCog) respondInventory(s *discordgo.Session, i *discordgo.InteractionCreate, target, name string) {
	items := c.svc.InventoryOf(target)

	var b strings.Builder
	for _, item := range economy.Catalog {
		if count := items[item.Key]; count > 0 {
			fmt.Fprintf(&b, "%s **%s** × %s\n", item.Icon, item.DisplayName, utils.FormatCoins(count))
		}
	}
	if b.Len() == 0 {
		b.WriteString("Nothing here yet. Visit `/eco shop`!")
	}

	respondEmbed(s, i, utils.CreateBrandedEmbed(
		fmt.Sprintf("🎒 %s's Inventory", name),
		b.String(),
		utils.BotColor,
	))
}

func (c *EconomyCog) respondShop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := utils.CreateBrandedEmbed("🛒 Item Shop", "Buy items with `/eco buy`", utils.BotColor)
	for _, item := range c.svc.Shop() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s %s", item.Icon, item.DisplayName),
			Value:  fmt.Sprintf("%s %s", utils.FormatCoins(item.Price), utils.CoinEmoji),
			Inline: true,
		})
	}
	respondEmbed(s, i, embed)
}

func (c *EconomyCog) handleBuy(s *discordgo.Session, i *discordgo.InteractionCreate, userID, itemKey string) {
	purchase, err := c.svc.Buy(userID, itemKey)
	if err != nil {
		switch {
		case errors.Is(err, economy.ErrUnknownItem):
			respondError(s, i, "That item isn't in the shop.")
		case errors.Is(err, economy.ErrInsufficientFunds):
			item, _ := economy.ItemByKey(itemKey)
			respondEmbed(s, i, utils.InsufficientFundsEmbed(item.Price, c.svc.Balance(userID),
				fmt.Sprintf("a %s", item.DisplayName)))
		default:
			c.log.Error().Err(err).Str("item", itemKey).Msg("buy failed")
			respondError(s, i, "Purchase failed. Please try again.")
		}
		return
	}

	respondEmbed(s, i, utils.CreateBrandedEmbed(
		"✅ Purchase Complete",
		fmt.Sprintf("You bought %s **%s** for **%s** %s.\nNew balance: **%s** %s",
			purchase.Item.Icon, purchase.Item.DisplayName,
			utils.FormatCoins(purchase.Item.Price), utils.CoinEmoji,
			utils.FormatCoins(purchase.NewBalance), utils.CoinEmoji),
		utils.SuccessColor,
	))
}

func (c *EconomyCog) handleTransfer(s *discordgo.Session, i *discordgo.InteractionCreate, fromID string, to *discordgo.User, amount int64) {
	res, err := c.svc.Give(fromID, to.ID, amount)
	if err != nil {
		switch {
		case errors.Is(err, economy.ErrSelfTransfer):
			respondError(s, i, "You can't send coins to yourself.")
		case errors.Is(err, economy.ErrInvalidAmount):
			respondError(s, i, "Amount must be at least 1.")
		case errors.Is(err, economy.ErrInsufficientFunds):
			respondEmbed(s, i, utils.InsufficientFundsEmbed(amount, c.svc.Balance(fromID), "that transfer"))
		default:
			c.log.Error().Err(err).Msg("transfer failed")
			respondError(s, i, "Transfer failed. Please try again.")
		}
		return
	}

	respondEmbed(s, i, utils.CreateBrandedEmbed(
		"💸 Transfer Complete",
		fmt.Sprintf("Sent **%s** %s to **%s**.\nYour balance: **%s** %s",
			utils.FormatCoins(amount), utils.CoinEmoji, to.Username,
			utils.FormatCoins(res.FromBalance), utils.CoinEmoji),
		utils.SuccessColor,
	))
}

func (c *EconomyCog) respondLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	top := c.svc.Leaderboard(c.leaderboardLimit)
	if len(top) == 0 {
		respondEmbed(s, i, utils.CreateBrandedEmbed("🏆 Leaderboard", "No accounts yet.", utils.BotColor))
		return
	}

	var b strings.Builder
	for rank, entry := range top {
		fmt.Fprintf(&b, "**%d.** <@%s> — %s %s\n",
			rank+1, entry.UserID, utils.FormatCoins(entry.Balance), utils.CoinEmoji)
	}
	respondEmbed(s, i, utils.CreateBrandedEmbed("🏆 Leaderboard", b.String(), utils.BotColor))
}

// respondWager renders a bet-taking game outcome. A lost round is a normal
// result embed, not an error.
func (c *EconomyCog) respondWager(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, bet int64, outcome *economy.WagerOutcome, err error) {
	if err != nil {
		switch {
		case errors.Is(err, economy.ErrInvalidAmount):
			respondError(s, i, "Bet must be at least 1.")
		case errors.Is(err, economy.ErrInsufficientFunds):
			respondEmbed(s, i, utils.InsufficientFundsEmbed(bet, c.svc.Balance(userID), "that bet"))
		default:
			c.log.Error().Err(err).Msg("wager failed")
			respondError(s, i, "Something went wrong. Please try again.")
		}
		return
	}

	title, body := describeOutcome(outcome)
	color := utils.SuccessColor
	if outcome.NetDelta < 0 {
		color = utils.ErrorColor
	}

	embed := utils.CreateBrandedEmbed(title, body, color)
	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name:   "Result",
			Value:  fmt.Sprintf("%s%s %s", utils.ProfitPrefix(outcome.NetDelta), utils.FormatCoins(outcome.NetDelta), utils.CoinEmoji),
			Inline: true,
		},
		{
			Name:   "Balance",
			Value:  fmt.Sprintf("%s %s", utils.FormatCoins(outcome.ResultingBalance), utils.CoinEmoji),
			Inline: true,
		},
	}
	respondEmbed(s, i, embed)
}

// respondActivity renders a no-bet activity outcome.
func (c *EconomyCog) respondActivity(s *discordgo.Session, i *discordgo.InteractionCreate, outcome *economy.WagerOutcome, err error) {
	if err != nil {
		var cdErr *economy.CooldownError
		if errors.As(err, &cdErr) {
			respondEmbed(s, i, utils.CooldownEmbed(fmt.Sprintf("/eco %s", cdErr.Activity), cdErr.Remaining))
			return
		}
		c.log.Error().Err(err).Msg("activity failed")
		respondError(s, i, "Something went wrong. Please try again.")
		return
	}

	title, body := describeOutcome(outcome)
	color := utils.SuccessColor
	if outcome.NetDelta < 0 {
		color = utils.ErrorColor
	}

	embed := utils.CreateBrandedEmbed(title, body, color)
	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name:   "Balance",
			Value:  fmt.Sprintf("%s %s", utils.FormatCoins(outcome.ResultingBalance), utils.CoinEmoji),
			Inline: true,
		},
	}
	respondEmbed(s, i, embed)
}

// describeOutcome turns one outcome's details into an embed title and body.
func describeOutcome(outcome *economy.WagerOutcome) (title, body string) {
	switch d := outcome.Details.(type) {
	case economy.CoinflipDetails:
		if d.Won {
			return "🪙 Coinflip — You Won!", fmt.Sprintf("The coin landed on **%s**.", d.Landed)
		}
		return "🪙 Coinflip — You Lost", fmt.Sprintf("The coin landed on **%s**, you picked **%s**.", d.Landed, d.Choice)

	case economy.GambleDetails:
		switch d.Tier {
		case economy.GambleSmallWin:
			return "🎲 Gamble — Small Win!", fmt.Sprintf("You won **%s** coins.", utils.FormatCoins(d.Winnings))
		case economy.GambleBigWin:
			return "🎲 Gamble — Big Win!", fmt.Sprintf("You won **%s** coins.", utils.FormatCoins(d.Winnings))
		case economy.GambleJackpot:
			return "🎲 Gamble — JACKPOT!", fmt.Sprintf("You won **%s** coins.", utils.FormatCoins(d.Winnings))
		default:
			return "🎲 Gamble — You Lost", "The house takes it all."
		}

	case economy.SlotsDetails:
		reels := strings.Join(d.Reels[:], " | ")
		switch {
		case d.Winnings > 0 && outcome.NetDelta > 0:
			return "🎰 Slots — Winner!", fmt.Sprintf("%s\nYou won **%s** coins.", reels, utils.FormatCoins(d.Winnings))
		case d.Winnings > 0:
			return "🎰 Slots — Push", fmt.Sprintf("%s\nTwo of a kind, your bet is returned.", reels)
		default:
			return "🎰 Slots — No Luck", reels
		}

	case economy.MinesDetails:
		if d.HitMine {
			return "💣 Mines — Boom!", "You stepped on a mine."
		}
		return "💣 Mines — Safe!", fmt.Sprintf("You crossed the field and won **%s** coins.", utils.FormatCoins(d.Winnings))

	case economy.RouletteDetails:
		if d.Payout > 0 {
			return "🎡 Roulette — You Won!", fmt.Sprintf("The ball landed on **%s**.", d.Landed)
		}
		return "🎡 Roulette — You Lost", fmt.Sprintf("The ball landed on **%s**, you picked **%s**.", d.Landed, d.Choice)

	case economy.TowersDetails:
		return "🗼 Towers", fmt.Sprintf("You reached floor **%d** at **%.1fx** and banked **%s** coins.",
			d.Floor, d.Multiplier, utils.FormatCoins(d.Winnings))

	case economy.WhackDetails:
		return "🔨 Whack-a-Mole", fmt.Sprintf("You whacked **%d** moles and won **%s** coins.",
			d.Moles, utils.FormatCoins(d.Winnings))

	case economy.RobDetails:
		if d.Success {
			return "🦹 Robbery — Success!", fmt.Sprintf("You got away with **%s** coins.", utils.FormatCoins(d.Amount))
		}
		return "🚓 Robbery — Busted!", fmt.Sprintf("You were caught and fined **%s** coins.", utils.FormatCoins(d.Amount))

	case economy.BegDetails:
		if d.Received {
			return "🥺 Beg", fmt.Sprintf("A kind stranger gave you **%s** coins.", utils.FormatCoins(d.Amount))
		}
		return "🥺 Beg", "Nobody gave you anything. Try again later."

	case economy.DailyDetails:
		return "📅 Daily Reward", fmt.Sprintf("You claimed **%s** coins.", utils.FormatCoins(d.Amount))

	case economy.WorkDetails:
		return "💼 Work", fmt.Sprintf("%s **%s** coins.", economy.WorkFlavors[d.Flavor], utils.FormatCoins(d.Amount))
	}

	return "Result", ""
}
