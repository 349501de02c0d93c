package handlers

import (
	"context"
	"time"

	"tavern_bot/internal/domain"
	"tavern_bot/internal/service"
)

// OAuthProvider is the Discord login flow.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*domain.DiscordProfile, error)
}

// StatusReporter snapshots the gateway connection.
type StatusReporter interface {
	Status() domain.BotStatus
}

type Handler struct {
	Economy  *service.EconomyService
	Memes    *service.MemeService
	Activity *service.ActivityService
	Admin    *service.AdminService
	Tokens   *service.TokenService
	OAuth    OAuthProvider
	Bot      StatusReporter

	// StateSecret signs the OAuth state cookie.
	StateSecret []byte
	// SecureCookies marks cookies Secure; set in production behind TLS.
	SecureCookies bool

	now func() time.Time
}

type HandlerConfig struct {
	StateSecret   string
	SecureCookies bool
}

func NewHandler(economy *service.EconomyService, memes *service.MemeService, activity *service.ActivityService,
	admin *service.AdminService, tokens *service.TokenService, oauth OAuthProvider, bot StatusReporter, cfg HandlerConfig) *Handler {
	return &Handler{
		Economy:       economy,
		Memes:         memes,
		Activity:      activity,
		Admin:         admin,
		Tokens:        tokens,
		OAuth:         oauth,
		Bot:           bot,
		StateSecret:   []byte(cfg.StateSecret),
		SecureCookies: cfg.SecureCookies,
		now:           time.Now,
	}
}
