package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"tavern_bot/internal/cache"
	"tavern_bot/internal/domain"
	"tavern_bot/internal/logger"
	"tavern_bot/internal/repository"
)

const (
	DefaultRankingLimit = 10
	MaxRankingLimit     = 50

	profileTTL = 10 * time.Minute
	// a single voice session credits at most this much
	maxVoiceSession = 24 * time.Hour
	// join records outlive the cap so long sessions are clamped rather than lost
	voiceRecordTTL = 7 * 24 * time.Hour
)

// ProfileLookup resolves Discord profiles for ranking display.
type ProfileLookup interface {
	LookupProfile(ctx context.Context, userID string) (*domain.DiscordProfile, error)
}

type RankedUser struct {
	domain.RankingEntry
	Profile *domain.DiscordProfile `json:"profile,omitempty"`
}

// ActivityService tracks chat and voice activity and serves rankings.
type ActivityService struct {
	store    repository.Store
	cache    cache.Cache
	profiles ProfileLookup
	now      func() time.Time
	log      *slog.Logger
}

func NewActivityService(store repository.Store, c cache.Cache, now func() time.Time) *ActivityService {
	if now == nil {
		now = time.Now
	}
	return &ActivityService{store: store, cache: c, now: now, log: logger.With("component", "activity")}
}

// SetProfileLookup wires the Discord profile resolver once the gateway session exists.
func (s *ActivityService) SetProfileLookup(p ProfileLookup) {
	s.profiles = p
}

func (s *ActivityService) RecordMessage(ctx context.Context, userID string) error {
	return s.store.Repos().Users.IncrementChatCount(ctx, userID)
}

func voiceKey(userID string) string {
	return "voice:" + userID
}

// VoiceJoin remembers when the user entered voice. A second join keeps the first
// timestamp unless it is older than the session cap, which means a leave was missed.
func (s *ActivityService) VoiceJoin(ctx context.Context, userID string) error {
	raw, err := s.cache.Get(ctx, voiceKey(userID))
	switch {
	case err == nil:
		if started, perr := strconv.ParseInt(string(raw), 10, 64); perr == nil &&
			s.now().Sub(time.Unix(started, 0)) <= maxVoiceSession {
			return nil
		}
	case !errors.Is(err, cache.ErrCacheMiss):
		return err
	}
	ts := strconv.FormatInt(s.now().Unix(), 10)
	return s.cache.Set(ctx, voiceKey(userID), []byte(ts), voiceRecordTTL)
}

// VoiceLeave credits the elapsed session time, capped at maxVoiceSession, and returns it.
func (s *ActivityService) VoiceLeave(ctx context.Context, userID string) (time.Duration, error) {
	raw, err := s.cache.Get(ctx, voiceKey(userID))
	if errors.Is(err, cache.ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if err := s.cache.Delete(ctx, voiceKey(userID)); err != nil {
		return 0, err
	}

	started, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		s.log.Warn("bad voice session value", "user_id", userID, "value", string(raw))
		return 0, nil
	}
	elapsed := s.now().Sub(time.Unix(started, 0))
	if elapsed <= 0 {
		return 0, nil
	}
	elapsed = min(elapsed, maxVoiceSession)
	secs := int64(elapsed / time.Second)
	if secs == 0 {
		return 0, nil
	}
	if err := s.store.Repos().Users.AddVoiceSeconds(ctx, userID, secs); err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

// ClampLimit applies the ranking default and upper bound.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRankingLimit
	}
	if limit > MaxRankingLimit {
		return MaxRankingLimit
	}
	return limit
}

func (s *ActivityService) Ranking(ctx context.Context, kind domain.RankingKind, limit int) ([]RankedUser, error) {
	if kind != domain.RankingChat && kind != domain.RankingVoice {
		return nil, domain.ErrInvalidInput.Withf("Unknown ranking %q.", kind)
	}
	entries, err := s.store.Repos().Users.Ranking(ctx, kind, ClampLimit(limit))
	if err != nil {
		return nil, err
	}

	res := make([]RankedUser, 0, len(entries))
	for _, e := range entries {
		res = append(res, RankedUser{RankingEntry: e, Profile: s.profile(ctx, e.UserID)})
	}
	return res, nil
}

// profile is best effort; a failed lookup leaves the entry undecorated.
func (s *ActivityService) profile(ctx context.Context, userID string) *domain.DiscordProfile {
	if s.profiles == nil {
		return nil
	}
	raw, err := s.cache.GetOrSet(ctx, "profile:"+userID, profileTTL, func() ([]byte, error) {
		p, err := s.profiles.LookupProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(p)
	})
	if err != nil {
		s.log.Debug("profile lookup failed", "user_id", userID, "error", err)
		return nil
	}
	var p domain.DiscordProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}

func (s *ActivityService) Overview(ctx context.Context) (*domain.Overview, error) {
	return s.store.Repos().Users.Overview(ctx)
}
