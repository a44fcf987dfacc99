package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"ecobot-go/cogs"
	"ecobot-go/economy"
	"ecobot-go/suggestions"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Bot wires the Discord session to the cogs and tracks readiness for the
// status endpoints.
type Bot struct {
	session   *discordgo.Session
	log       zerolog.Logger
	startedAt time.Time
	ready     atomic.Bool

	eco  *cogs.EconomyCog
	sugg *cogs.SuggestionsCog
	info *cogs.InfoCog
}

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("create session")
	}

	startedAt := time.Now()
	svc := economy.NewService(economy.NewTimeSource(), cfg.StartingBalance)

	bot := &Bot{
		session:   session,
		log:       log,
		startedAt: startedAt,
		eco:       cogs.NewEconomyCog(svc, log, cfg.LeaderboardLimit),
		sugg:      cogs.NewSuggestionsCog(suggestions.NewStore(), log),
		info:      cogs.NewInfoCog(log, startedAt),
	}

	statusServer := NewStatusServer(log, bot.infoSnapshot)
	go func() {
		if err := statusServer.ListenAndServe(cfg.Port); err != nil {
			log.Error().Err(err).Msg("status server stopped")
		}
	}()

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteractionCreate)

	if err := session.Open(); err != nil {
		log.Fatal().Err(err).Msg("open gateway")
	}
	defer session.Close()

	log.Info().Msg("bot is running, press CTRL+C to exit")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop

	log.Info().Msg("shutting down")
}

// infoSnapshot feeds the status endpoints.
func (b *Bot) infoSnapshot() BotInfo {
	info := BotInfo{
		Ready:  b.ready.Load(),
		Uptime: time.Since(b.startedAt),
	}
	if b.session.State != nil && b.session.State.User != nil {
		info.Name = b.session.State.User.Username
		info.ID = b.session.State.User.ID
		info.Guilds = len(b.session.State.Guilds)
	}
	return info
}

func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	b.log.Info().
		Str("username", event.User.Username).
		Str("id", event.User.ID).
		Msg("logged in")
	b.ready.Store(true)

	if err := s.UpdateStatusComplex(discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{
			{Name: "/eco daily", Type: discordgo.ActivityTypeGame},
		},
		Status: "online",
	}); err != nil {
		b.log.Warn().Err(err).Msg("update presence")
	}

	if err := b.registerSlashCommands(s); err != nil {
		b.log.Error().Err(err).Msg("register slash commands")
	}
}

func (b *Bot) registerSlashCommands(s *discordgo.Session) error {
	commands := []*discordgo.ApplicationCommand{
		b.eco.RegisterEconomyCommands(),
		b.sugg.RegisterSuggestCommand(),
		b.sugg.RegisterSuggestionCommands(),
		b.info.RegisterBotCommands(),
	}

	for _, command := range commands {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, "", command); err != nil {
			return fmt.Errorf("create command %s: %w", command.Name, err)
		}
	}

	b.log.Info().Int("count", len(commands)).Msg("registered slash commands")
	return nil
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "eco":
		b.eco.HandleEconomyCommand(s, i)
	case "suggest":
		b.sugg.HandleSuggestCommand(s, i)
	case "suggestion":
		b.sugg.HandleSuggestionCommand(s, i)
	case "bot":
		b.info.HandleBotCommand(s, i)
	}
}
