package service

import (
	"context"
	"log/slog"

	"tavern_bot/internal/domain"
	"tavern_bot/internal/logger"
	"tavern_bot/internal/repository"
)

// AdminService gates privileged economy changes on a fixed set of Discord ids.
type AdminService struct {
	store   repository.Store
	economy *EconomyService
	admins  map[string]struct{}
	log     *slog.Logger
}

func NewAdminService(store repository.Store, economy *EconomyService, adminIDs []string) *AdminService {
	admins := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		if id != "" {
			admins[id] = struct{}{}
		}
	}
	return &AdminService{store: store, economy: economy, admins: admins, log: logger.With("component", "admin")}
}

func (s *AdminService) IsAdmin(userID string) bool {
	_, ok := s.admins[userID]
	return ok
}

type GrantBuffRequest struct {
	UserID     string  `json:"userId" binding:"required"`
	ItemID     int64   `json:"itemId"`
	Multiplier float64 `json:"multiplier" binding:"required"`
	Days       int     `json:"days" binding:"required"`
}

func (s *AdminService) GrantBuff(ctx context.Context, actorID string, req GrantBuffRequest) (*domain.Buff, error) {
	if !s.IsAdmin(actorID) {
		return nil, domain.ErrNotAdmin
	}
	buff, err := s.economy.GrantDurationBuff(ctx, req.UserID, req.ItemID, req.Multiplier, req.Days)
	if err != nil {
		return nil, err
	}
	s.log.Info("admin action", "action", "grant_buff", "admin_id", actorID, "target", req.UserID)
	return buff, nil
}

// AddBalance credits (or debits, for negative amounts) a user's balance and journals it.
func (s *AdminService) AddBalance(ctx context.Context, actorID, userID string, amount int64) (int64, error) {
	if !s.IsAdmin(actorID) {
		return 0, domain.ErrNotAdmin
	}
	if amount == 0 {
		return 0, domain.ErrInvalidInput.Withf("Amount must not be zero.")
	}

	var newBalance int64
	err := s.store.WithinUserTx(ctx, userID, func(ctx context.Context, r repository.Repos) error {
		u, err := r.Users.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		if u.Balance+amount < 0 {
			return domain.ErrInsufficientFunds.Withf("Balance would drop below zero (balance: %d).", u.Balance)
		}
		newBalance, err = r.Users.AdjustBalance(ctx, userID, amount)
		if err != nil {
			return err
		}
		return r.Transactions.Create(ctx, &domain.Transaction{
			UserID: userID,
			Type:   domain.TxGrant,
			Amount: amount,
			Meta:   map[string]interface{}{"admin_id": actorID},
		})
	})
	if err != nil {
		return 0, err
	}

	observeCoins("grant", amount)
	s.log.Info("admin action", "action", "add_balance", "admin_id", actorID, "target", userID, "amount", amount)
	return newBalance, nil
}
