package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tavern_bot/internal/domain"

	"golang.org/x/oauth2"
)

var discordEndpoint = oauth2.Endpoint{
	AuthURL:   "https://discord.com/oauth2/authorize",
	TokenURL:  "https://discord.com/api/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

const discordAPIBase = "https://discord.com/api/v10"

// DiscordOAuth exchanges authorization codes for the logged-in user's identity.
type DiscordOAuth struct {
	cfg     *oauth2.Config
	apiBase string
}

func NewDiscordOAuth(clientID, clientSecret, redirectURL string) *DiscordOAuth {
	return &DiscordOAuth{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"identify"},
			Endpoint:     discordEndpoint,
		},
		apiBase: discordAPIBase,
	}
}

// WithEndpoints points the client at other URLs; tests use it with httptest.
func (o *DiscordOAuth) WithEndpoints(authURL, tokenURL, apiBase string) *DiscordOAuth {
	o.cfg.Endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL, AuthStyle: oauth2.AuthStyleInParams}
	o.apiBase = apiBase
	return o
}

func (o *DiscordOAuth) AuthCodeURL(state string) string {
	return o.cfg.AuthCodeURL(state)
}

type discordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
}

// Exchange trades code for a token and fetches /users/@me.
func (o *DiscordOAuth) Exchange(ctx context.Context, code string) (*domain.DiscordProfile, error) {
	tok, err := o.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.apiBase+"/users/@me", nil)
	if err != nil {
		return nil, err
	}
	resp, err := o.cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch user: status %d", resp.StatusCode)
	}

	var u discordUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("decode user: empty id")
	}

	p := &domain.DiscordProfile{ID: u.ID, Username: u.Username, DisplayName: u.GlobalName, Avatar: u.Avatar}
	if p.DisplayName == "" {
		p.DisplayName = u.Username
	}
	return p, nil
}
