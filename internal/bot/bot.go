// Package bot is the Discord-facing edge: it registers the /stats slash
// command, answers it with a stats embed, and posts the same embed on
// the daily schedule. All failures are reported to the user and logged;
// the host process never crashes on an upstream error.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/usemate/statsbot/internal/logger"
	"github.com/usemate/statsbot/internal/stats"
)

const commandName = "stats"

// computeTimeout caps one aggregation pass; draining the full order
// history can take a while on cold cache.
const computeTimeout = 60 * time.Second

// Bot wraps a Discord session around the stats service.
type Bot struct {
	session   *discordgo.Session
	stats     stats.Service
	channelID string
}

// New builds a Bot from a bot token. channelID is where scheduled daily
// posts go; it may be empty when the schedule is disabled.
func New(token string, svc stats.Service, channelID string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	return &Bot{session: session, stats: svc, channelID: channelID}, nil
}

// Start opens the gateway connection and installs the interaction
// handler. It returns once the connection is established; events are
// delivered on the session's own goroutines.
func (b *Bot) Start() error {
	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logger.L().Info().Str("user", r.User.String()).Msg("logged in")
	})
	b.session.AddHandler(b.handleInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	return nil
}

// Close shuts the gateway connection down.
func (b *Bot) Close() error {
	return b.session.Close()
}

// RegisterCommands creates the /stats guild command. Run once per guild
// (mode "register" in main); Discord persists registrations.
func (b *Bot) RegisterCommands(appID, guildID string) error {
	_, err := b.session.ApplicationCommandCreate(appID, guildID, &discordgo.ApplicationCommand{
		Name:        commandName,
		Description: "Get daily stats",
	})
	if err != nil {
		return fmt.Errorf("register %s command: %w", commandName, err)
	}
	return nil
}

// handleInteraction answers /stats. The reply is deferred first because
// a cold-cache aggregation exceeds Discord's 3-second interaction
// deadline.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name != commandName {
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		logger.L().Error().Err(err).Msg("defer reply failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), computeTimeout)
	defer cancel()

	snapshot, err := b.stats.ComputeSnapshot(ctx)
	if err != nil {
		logger.L().Error().Err(err).Msg("stats command failed")
		msg := "Could not fetch stats right now, please try again later."
		_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &msg})
		return
	}

	embeds := []*discordgo.MessageEmbed{StatsEmbed(snapshot)}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Embeds: &embeds}); err != nil {
		logger.L().Error().Err(err).Msg("edit reply failed")
	}
}

// PostDaily computes a snapshot and posts the embed to the configured
// channel; invoked by the scheduler.
func (b *Bot) PostDaily(ctx context.Context) error {
	if b.channelID == "" {
		return fmt.Errorf("daily post: no channel configured")
	}

	ctx, cancel := context.WithTimeout(ctx, computeTimeout)
	defer cancel()

	snapshot, err := b.stats.ComputeSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("daily post: %w", err)
	}
	if _, err := b.session.ChannelMessageSendEmbed(b.channelID, StatsEmbed(snapshot)); err != nil {
		return fmt.Errorf("daily post: send embed: %w", err)
	}
	return nil
}
