package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tavern_bot/internal/domain"
	"tavern_bot/internal/logger"
	"tavern_bot/internal/service"

	"github.com/bwmarrin/discordgo"
)

const (
	commandTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

type Options struct {
	// AppID and GuildID are used when RegisterOnStart is set.
	AppID           string
	GuildID         string
	RegisterOnStart bool
	StatusInterval  time.Duration

	// Version is announced in UpdateChannelID when it differs from the last
	// one Releases recorded. An empty channel disables announcements.
	Version         string
	UpdateChannelID string
	Releases        *service.ReleaseTracker
}

// Bot is the Discord gateway adapter: it dispatches slash commands to the
// router and feeds message and voice activity to the activity service.
type Bot struct {
	session        *discordgo.Session
	router         *Router
	activity       *service.ActivityService
	opts           Options
	statusInterval time.Duration
	stopCh         chan struct{}
	stopOnce       sync.Once
	// mu orders wg.Add against Stop so no handler starts after the wait begins
	mu             sync.Mutex
	stopping       bool
	rotateOnce     sync.Once
	wg             sync.WaitGroup
	started        time.Time
	log            *slog.Logger
}

func New(token string, router *Router, activity *service.ActivityService, opts Options) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsGuildVoiceStates

	return &Bot{
		session:        s,
		router:         router,
		activity:       activity,
		opts:           opts,
		statusInterval: opts.StatusInterval,
		stopCh:         make(chan struct{}),
		log:            logger.With("component", "bot"),
	}, nil
}

// Start opens the gateway connection and begins handling events.
func (b *Bot) Start() error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteraction)
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onVoiceStateUpdate)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	b.started = time.Now()

	if b.opts.RegisterOnStart {
		cmds, err := RegisterCommands(b.session, b.opts.AppID, b.opts.GuildID)
		if err != nil {
			b.log.Error("register commands", "error", err)
		} else {
			b.log.Info("commands registered", "count", len(cmds), "guild_id", b.opts.GuildID)
		}
	}
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("bot logged in", "user", r.User.Username, "guilds", len(r.Guilds))

	// Ready fires again on reconnect; rotate only once.
	b.rotateOnce.Do(func() {
		if !b.track() {
			return
		}
		go b.rotateStatus()

		if b.opts.UpdateChannelID != "" && b.opts.Releases != nil && b.track() {
			go b.announceRelease()
		}
	})
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if !b.track() {
		return
	}
	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		req := requestFrom(i)
		reply := b.router.Handle(ctx, req)
		if err := respond(s, i.Interaction, reply); err != nil {
			b.log.Error("error sending reply", "command", req.Name, "user_id", req.UserID, "error", err)
		}
	}()
}

func respond(s *discordgo.Session, i *discordgo.Interaction, r *Reply) error {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{r.Embed}}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// track registers a background task unless the bot is stopping.
// The caller must call b.wg.Done when it returns true.
func (b *Bot) track() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopping {
		return false
	}
	b.wg.Add(1)
	return true
}

// halt refuses new tasks and signals running ones to finish.
func (b *Bot) halt() {
	b.mu.Lock()
	b.stopping = true
	b.mu.Unlock()
	close(b.stopCh)
}

// drain waits for tracked tasks and reports whether they all finished in time.
func (b *Bot) drain(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	b.stopOnce.Do(func() {
		b.log.Info("stopping bot...")
		b.halt()

		if b.drain(shutdownTimeout) {
			b.log.Info("bot stopped gracefully")
		} else {
			b.log.Warn("bot shutdown timeout, some handlers may not have completed")
		}

		if err := b.session.Close(); err != nil {
			b.log.Warn("close gateway", "error", err)
		}
	})
}

// Status implements the dashboard's bot status probe.
func (b *Bot) Status() domain.BotStatus {
	st := domain.BotStatus{Status: "offline"}
	if b.session.State == nil || !b.session.DataReady {
		return st
	}
	st.Status = "online"
	st.PingMS = b.session.HeartbeatLatency().Milliseconds()
	st.UptimeSeconds = int64(time.Since(b.started).Seconds())

	b.session.State.RLock()
	defer b.session.State.RUnlock()
	st.Guilds = len(b.session.State.Guilds)
	for _, g := range b.session.State.Guilds {
		st.Users += g.MemberCount
	}
	return st
}

// LookupProfile fetches a user from the Discord API for ranking display.
func (b *Bot) LookupProfile(ctx context.Context, userID string) (*domain.DiscordProfile, error) {
	u, err := b.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", userID, err)
	}
	p := &domain.DiscordProfile{ID: u.ID, Username: u.Username, DisplayName: u.GlobalName, Avatar: u.Avatar}
	if p.DisplayName == "" {
		p.DisplayName = u.Username
	}
	return p, nil
}
