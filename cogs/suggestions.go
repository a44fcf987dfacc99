package cogs

import (
	"fmt"

	"ecobot-go/suggestions"
	"ecobot-go/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// SuggestionsCog handles /suggest and the /suggestion admin group.
type SuggestionsCog struct {
	store *suggestions.Store
	log   zerolog.Logger
}

func NewSuggestionsCog(store *suggestions.Store, log zerolog.Logger) *SuggestionsCog {
	return &SuggestionsCog{store: store, log: log}
}

// RegisterSuggestCommand builds the /suggest command schema.
func (c *SuggestionsCog) RegisterSuggestCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "suggest",
		Description: "Submit a suggestion",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "suggestion",
				Description: "Your suggestion",
				Required:    true,
			},
		},
	}
}

// RegisterSuggestionCommands builds the /suggestion admin command schema.
func (c *SuggestionsCog) RegisterSuggestionCommands() *discordgo.ApplicationCommand {
	channelOption := func(name, desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        name,
			Description: desc,
			Required:    true,
			ChannelTypes: []discordgo.ChannelType{
				discordgo.ChannelTypeGuildText,
			},
		}
	}
	decisionOptions := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "message_id",
			Description: "Message ID of the suggestion",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the decision",
		},
	}

	return &discordgo.ApplicationCommand{
		Name:        "suggestion",
		Description: "Manage the suggestion system",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Enable or disable suggestions",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "enabled",
						Description: "Whether suggestions are accepted",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "channel",
				Description: "Set the suggestions channel",
				Options:     []*discordgo.ApplicationCommandOption{channelOption("channel", "Channel new suggestions are posted to")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "appch",
				Description: "Set the approved-suggestions channel",
				Options:     []*discordgo.ApplicationCommandOption{channelOption("channel", "Channel approved suggestions are mirrored to")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "rejch",
				Description: "Set the rejected-suggestions channel",
				Options:     []*discordgo.ApplicationCommandOption{channelOption("channel", "Channel rejected suggestions are mirrored to")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "approve",
				Description: "Approve a suggestion",
				Options:     decisionOptions,
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "reject",
				Description: "Reject a suggestion",
				Options:     decisionOptions,
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "staffadd",
				Description: "Add a staff role that can decide suggestions",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Role to add",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "staffremove",
				Description: "Remove a staff role",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Role to remove",
						Required:    true,
					},
				},
			},
		},
	}
}

// HandleSuggestCommand posts a new suggestion into the configured channel
// and seeds it with vote reactions.
func (c *SuggestionsCog) HandleSuggestCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respondError(s, i, "Suggestions only work inside a server.")
		return
	}

	st := c.store.Get(i.GuildID)
	if !st.Enabled {
		respondError(s, i, "Suggestions are disabled on this server.")
		return
	}
	if st.ChannelID == "" {
		respondError(s, i, "No suggestions channel is configured. Ask an admin to run `/suggestion channel`.")
		return
	}

	text := i.ApplicationCommandData().Options[0].StringValue()
	author := i.Member.User

	embed := utils.CreateBrandedEmbed("💡 New Suggestion", text, utils.BotColor)
	embed.Author = &discordgo.MessageEmbedAuthor{
		Name:    author.Username,
		IconURL: author.AvatarURL(""),
	}

	msg, err := s.ChannelMessageSendEmbed(st.ChannelID, embed)
	if err != nil {
		c.log.Error().Err(err).Str("channel", st.ChannelID).Msg("post suggestion")
		respondError(s, i, "Couldn't post your suggestion. Please try again.")
		return
	}

	for _, emoji := range []string{"👍", "👎"} {
		if err := s.MessageReactionAdd(st.ChannelID, msg.ID, emoji); err != nil {
			c.log.Warn().Err(err).Msg("seed vote reaction")
		}
	}

	respondEphemeral(s, i, utils.CreateBrandedEmbed(
		"✅ Suggestion Submitted",
		fmt.Sprintf("Your suggestion was posted in <#%s>.", st.ChannelID),
		utils.SuccessColor,
	))
}

// HandleSuggestionCommand dispatches one /suggestion admin interaction.
func (c *SuggestionsCog) HandleSuggestionCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respondError(s, i, "This command only works inside a server.")
		return
	}

	sub := i.ApplicationCommandData().Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "status", "channel", "appch", "rejch", "staffadd", "staffremove":
		if !hasManageGuild(i) {
			respondError(s, i, "You need the Manage Server permission for that.")
			return
		}
	case "approve", "reject":
		if !hasManageGuild(i) && !c.store.HasStaffRole(i.GuildID, i.Member.Roles) {
			respondError(s, i, "You need the Manage Server permission or a staff role for that.")
			return
		}
	}

	switch sub.Name {
	case "status":
		enabled := opts["enabled"].BoolValue()
		c.store.SetEnabled(i.GuildID, enabled)
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		respondEmbed(s, i, utils.CreateBrandedEmbed("⚙️ Suggestions",
			fmt.Sprintf("Suggestions are now **%s**.", state), utils.SuccessColor))

	case "channel":
		ch := opts["channel"].ChannelValue(s)
		c.store.SetChannel(i.GuildID, ch.ID)
		respondEmbed(s, i, utils.CreateBrandedEmbed("⚙️ Suggestions",
			fmt.Sprintf("New suggestions will be posted in <#%s>.", ch.ID), utils.SuccessColor))

	case "appch":
		ch := opts["channel"].ChannelValue(s)
		c.store.SetApprovedChannel(i.GuildID, ch.ID)
		respondEmbed(s, i, utils.CreateBrandedEmbed("⚙️ Suggestions",
			fmt.Sprintf("Approved suggestions will be mirrored to <#%s>.", ch.ID), utils.SuccessColor))

	case "rejch":
		ch := opts["channel"].ChannelValue(s)
		c.store.SetRejectedChannel(i.GuildID, ch.ID)
		respondEmbed(s, i, utils.CreateBrandedEmbed("⚙️ Suggestions",
			fmt.Sprintf("Rejected suggestions will be mirrored to <#%s>.", ch.ID), utils.SuccessColor))

	case "approve":
		c.decide(s, i, opts, true)

	case "reject":
		c.decide(s, i, opts, false)

	case "staffadd":
		role := opts["role"].RoleValue(s, i.GuildID)
		if c.store.AddStaffRole(i.GuildID, role.ID) {
			respondEmbed(s, i, utils.CreateBrandedEmbed("⚙️ Suggestions",
				fmt.Sprintf("Added **%s** as a staff role.", role.Name), utils.SuccessColor))
		} else {
			respondError(s, i, fmt.Sprintf("**%s** is already a staff role.", role.Name))
		}

	case "staffremove":
		role := opts["role"].RoleValue(s, i.GuildID)
		if c.store.RemoveStaffRole(i.GuildID, role.ID) {
			respondEmbed(s, i, utils.CreateBrandedEmbed("⚙️ Suggestions",
				fmt.Sprintf("Removed **%s** from the staff roles.", role.Name), utils.SuccessColor))
		} else {
			respondError(s, i, fmt.Sprintf("**%s** is not a staff role.", role.Name))
		}
	}
}

// decide applies an approve/reject decision: the original message's embed is
// recolored and annotated, and a copy is mirrored to the decision channel if
// one is configured.
func (c *SuggestionsCog) decide(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption, approved bool) {
	st := c.store.Get(i.GuildID)
	if st.ChannelID == "" {
		respondError(s, i, "No suggestions channel is configured.")
		return
	}

	messageID := opts["message_id"].StringValue()
	reason := ""
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}

	msg, err := s.ChannelMessage(st.ChannelID, messageID)
	if err != nil || len(msg.Embeds) == 0 {
		respondError(s, i, "Couldn't find that suggestion in the suggestions channel.")
		return
	}

	verdict := "Rejected"
	color := utils.ErrorColor
	mirror := st.RejectedChannel
	if approved {
		verdict = "Approved"
		color = utils.SuccessColor
		mirror = st.ApprovedChannel
	}

	embed := msg.Embeds[0]
	embed.Color = color
	embed.Title = fmt.Sprintf("💡 Suggestion %s", verdict)
	decision := fmt.Sprintf("%s by %s", verdict, i.Member.User.Username)
	if reason != "" {
		decision += "\n**Reason:** " + reason
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Decision",
		Value: decision,
	})

	if _, err := s.ChannelMessageEditEmbed(st.ChannelID, messageID, embed); err != nil {
		c.log.Error().Err(err).Str("message", messageID).Msg("edit suggestion")
		respondError(s, i, "Couldn't update the suggestion message.")
		return
	}

	if mirror != "" {
		if _, err := s.ChannelMessageSendEmbed(mirror, embed); err != nil {
			c.log.Warn().Err(err).Str("channel", mirror).Msg("mirror suggestion")
		}
	}

	respondEmbed(s, i, utils.CreateBrandedEmbed("✅ Done",
		fmt.Sprintf("Suggestion %s.", verdict), utils.SuccessColor))
}

// hasManageGuild reports whether the invoking member holds Manage Server.
func hasManageGuild(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionManageServer != 0
}
