package cogs

import (
	"fmt"
	"runtime"
	"time"

	"ecobot-go/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// invitePermissions is the permission set requested in the invite link:
// send messages, embed links, add reactions, read message history, use
// application commands.
const invitePermissions = 277025557568

// InfoCog handles the /bot command group.
type InfoCog struct {
	log       zerolog.Logger
	startedAt time.Time
}

func NewInfoCog(log zerolog.Logger, startedAt time.Time) *InfoCog {
	return &InfoCog{log: log, startedAt: startedAt}
}

// RegisterBotCommands builds the /bot command schema.
func (c *InfoCog) RegisterBotCommands() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "bot",
		Description: "Bot information",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "invite",
				Description: "Get the bot's invite link",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "stats",
				Description: "Show bot statistics",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "uptime",
				Description: "Show how long the bot has been running",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "permissions",
				Description: "Check the bot's permissions in this channel",
			},
		},
	}
}

// HandleBotCommand dispatches one /bot interaction.
func (c *InfoCog) HandleBotCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Options[0].Name {
	case "invite":
		url := fmt.Sprintf(
			"https://discord.com/api/oauth2/authorize?client_id=%s&permissions=%d&scope=bot%%20applications.commands",
			s.State.User.ID, invitePermissions)
		respondEmbed(s, i, utils.CreateBrandedEmbed(
			"📨 Invite EcoBot",
			fmt.Sprintf("[Click here to add me to your server](%s)", url),
			utils.BotColor,
		))

	case "stats":
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		embed := utils.CreateBrandedEmbed("📊 Bot Stats", "", utils.BotColor)
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Servers", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
			{Name: "Uptime", Value: utils.FormatDuration(time.Since(c.startedAt)), Inline: true},
			{Name: "Memory", Value: fmt.Sprintf("%.1f MB", float64(m.Alloc)/1024/1024), Inline: true},
			{Name: "Go", Value: runtime.Version(), Inline: true},
		}
		respondEmbed(s, i, embed)

	case "uptime":
		respondEmbed(s, i, utils.CreateBrandedEmbed(
			"⏱️ Uptime",
			fmt.Sprintf("Online for **%s**.", utils.FormatDuration(time.Since(c.startedAt))),
			utils.BotColor,
		))

	case "permissions":
		c.respondPermissions(s, i)
	}
}

func (c *InfoCog) respondPermissions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respondError(s, i, "This check only works inside a server.")
		return
	}

	perms, err := s.State.UserChannelPermissions(s.State.User.ID, i.ChannelID)
	if err != nil {
		c.log.Error().Err(err).Str("channel", i.ChannelID).Msg("resolve permissions")
		respondError(s, i, "Couldn't resolve my permissions here.")
		return
	}

	checks := []struct {
		name string
		bit  int64
	}{
		{"Send Messages", discordgo.PermissionSendMessages},
		{"Embed Links", discordgo.PermissionEmbedLinks},
		{"Add Reactions", discordgo.PermissionAddReactions},
		{"Read Message History", discordgo.PermissionReadMessageHistory},
		{"Manage Messages", discordgo.PermissionManageMessages},
	}

	var body string
	for _, check := range checks {
		mark := "❌"
		if perms&check.bit != 0 {
			mark = "✅"
		}
		body += fmt.Sprintf("%s %s\n", mark, check.name)
	}

	respondEmbed(s, i, utils.CreateBrandedEmbed("🔐 My Permissions Here", body, utils.BotColor))
}
