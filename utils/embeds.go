package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Embed colors used across the bot.
const (
	BotColor     = 0x5865F2
	SuccessColor = 0x2ECC71
	ErrorColor   = 0xFF0000
	WarnColor    = 0xF39C12
)

const CoinEmoji = "🪙"

// CreateBrandedEmbed creates a basic embed with bot branding.
func CreateBrandedEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "EcoBot",
		},
	}
}

// InsufficientFundsEmbed tells the user how short they are for betDescription.
func InsufficientFundsEmbed(required, current int64, betDescription string) *discordgo.MessageEmbed {
	return CreateBrandedEmbed(
		"Not Enough Coins",
		fmt.Sprintf("You don't have enough coins for %s.\n**Your balance:** %s %s\n**Required:** %s %s",
			betDescription,
			FormatCoins(current), CoinEmoji,
			FormatCoins(required), CoinEmoji),
		ErrorColor,
	)
}

// CooldownEmbed tells the user when an activity becomes available again.
func CooldownEmbed(activity string, remaining time.Duration) *discordgo.MessageEmbed {
	return CreateBrandedEmbed(
		"⏰ Slow Down",
		fmt.Sprintf("You can use `%s` again in **%s**.", activity, FormatDuration(remaining)),
		WarnColor,
	)
}

// FormatCoins renders an amount with thousands separators.
func FormatCoins(amount int64) string {
	return FormatNumber(amount)
}

func FormatNumber(num int64) string {
	negative := num < 0
	if negative {
		num = -num
	}

	str := strconv.FormatInt(num, 10)
	if len(str) > 3 {
		var result strings.Builder
		for i, r := range str {
			if i > 0 && (len(str)-i)%3 == 0 {
				result.WriteString(",")
			}
			result.WriteRune(r)
		}
		str = result.String()
	}

	if negative {
		return "-" + str
	}
	return str
}

// FormatDuration formats a duration into a human-readable string.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "Ready!"
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 24 {
		days := hours / 24
		hours = hours % 24
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	} else if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// ProfitPrefix returns "+" for gains so deltas always carry a sign.
func ProfitPrefix(delta int64) string {
	if delta > 0 {
		return "+"
	}
	return ""
}
