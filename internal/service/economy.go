package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"tavern_bot/internal/catalog"
	"tavern_bot/internal/domain"
	"tavern_bot/internal/game"
	"tavern_bot/internal/logger"
	"tavern_bot/internal/repository"
)

const dayLayout = "2006-01-02"

type EconomyOptions struct {
	DailyReward int64
	// MaxBet caps a single gamble; 0 means no cap.
	MaxBet int64
	Roller game.Roller
	Now    func() time.Time
	Events Publisher
}

// EconomyService runs purchase, use, gamble and check-in. Each call is one
// transaction holding the user's row lock.
type EconomyService struct {
	store  repository.Store
	buffs  *Buffs
	roller game.Roller
	now    func() time.Time
	events Publisher
	reward int64
	maxBet int64
	log    *slog.Logger
}

func NewEconomyService(store repository.Store, opts EconomyOptions) *EconomyService {
	if opts.Roller == nil {
		opts.Roller = game.CryptoRoller{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Events == nil {
		opts.Events = nopPublisher{}
	}
	return &EconomyService{
		store:  store,
		buffs:  NewBuffs(opts.Now),
		roller: opts.Roller,
		now:    opts.Now,
		events: opts.Events,
		reward: opts.DailyReward,
		maxBet: opts.MaxBet,
		log:    logger.With("component", "economy"),
	}
}

// Buffs exposes the registry bound to the service clock.
func (s *EconomyService) Buffs() *Buffs {
	return s.buffs
}

func (s *EconomyService) publish(t domain.EventType, userID string, amount int64, detail string) {
	s.events.Publish(domain.Event{Type: t, UserID: userID, Amount: amount, Detail: detail, At: s.now()})
}

type PurchaseResult struct {
	Item       domain.ShopItem `json:"item"`
	NewBalance int64           `json:"newBalance"`
	Quantity   int             `json:"quantity"`
}

func (s *EconomyService) Purchase(ctx context.Context, userID string, itemID int64) (res *PurchaseResult, err error) {
	defer func() { observe("purchase", err) }()

	err = s.store.WithinUserTx(ctx, userID, func(ctx context.Context, r repository.Repos) error {
		item, err := r.Items.Get(ctx, itemID)
		if err != nil {
			return err
		}
		if !item.Available {
			return domain.ErrItemUnavailable
		}
		if !item.Consumable {
			owned, err := r.Inventory.Has(ctx, userID, itemID)
			if err != nil {
				return err
			}
			if owned {
				return domain.ErrAlreadyOwned.Withf("You already own %s %s.", item.Emoji, item.Name)
			}
		}

		u, err := r.Users.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		if u.Balance < item.Price {
			return domain.ErrInsufficientFunds.Withf("Not enough balance. Price: %d, balance: %d.", item.Price, u.Balance)
		}

		newBalance, err := r.Users.AdjustBalance(ctx, userID, -item.Price)
		if err != nil {
			return err
		}
		qty, err := r.Inventory.Add(ctx, userID, itemID, 1)
		if err != nil {
			return err
		}
		if err := r.Transactions.Create(ctx, &domain.Transaction{
			UserID: userID,
			Type:   domain.TxPurchase,
			Amount: -item.Price,
			Meta:   map[string]interface{}{"item_id": itemID, "quantity": qty},
		}); err != nil {
			return err
		}

		res = &PurchaseResult{Item: *item, NewBalance: newBalance, Quantity: qty}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observeCoins("purchase", -res.Item.Price)
	s.publish(domain.EventPurchase, userID, res.Item.Price, res.Item.Name)
	s.log.Info("item purchased", "user_id", userID, "item_id", itemID, "balance", res.NewBalance)
	return res, nil
}

type UseResult struct {
	Item      domain.ShopItem `json:"item"`
	Remaining int             `json:"remaining"`
}

// UseItem removes one unit of a consumable the user owns. It activates nothing.
func (s *EconomyService) UseItem(ctx context.Context, userID string, itemID int64) (res *UseResult, err error) {
	defer func() { observe("use", err) }()

	err = s.store.WithinUserTx(ctx, userID, func(ctx context.Context, r repository.Repos) error {
		item, err := r.Items.Get(ctx, itemID)
		if err != nil {
			return err
		}
		res, err = useItem(ctx, r, userID, item)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func useItem(ctx context.Context, r repository.Repos, userID string, item *domain.ShopItem) (*UseResult, error) {
	if !item.Consumable {
		return nil, domain.ErrNotConsumable.Withf("%s %s cannot be used.", item.Emoji, item.Name)
	}
	owned, err := r.Inventory.Has(ctx, userID, item.ID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domain.ErrNotOwned
	}
	left, err := r.Inventory.Consume(ctx, userID, item.ID, 1)
	if err != nil {
		return nil, err
	}
	return &UseResult{Item: *item, Remaining: left}, nil
}

type ActivateResult struct {
	UseResult
	Buff        domain.BuffType `json:"buff"`
	Description string          `json:"description"`
}

// ActivateItem uses one unit of an item and turns on the one-shot buff it grants.
// Stews are refused because check-in consumes them on its own.
func (s *EconomyService) ActivateItem(ctx context.Context, userID string, itemID int64) (res *ActivateResult, err error) {
	defer func() { observe("activate", err) }()

	err = s.store.WithinUserTx(ctx, userID, func(ctx context.Context, r repository.Repos) error {
		item, err := r.Items.Get(ctx, itemID)
		if err != nil {
			return err
		}
		if !item.Consumable {
			return domain.ErrNotConsumable.Withf("%s %s cannot be used.", item.Emoji, item.Name)
		}
		if catalog.IsStew(itemID) {
			return domain.ErrAutoUsed.Withf("%s %s is used automatically when you check in.", item.Emoji, item.Name)
		}
		buffType, ok := catalog.OneShotBuffs[itemID]
		if !ok {
			return domain.ErrNoEffect
		}
		active, err := s.buffs.HasActive(ctx, r.Buffs, userID, buffType)
		if err != nil {
			return err
		}
		if active {
			return domain.ErrBuffActive.Withf("%s %s is already active. Use it up first.", item.Emoji, item.Name)
		}

		used, err := useItem(ctx, r, userID, item)
		if err != nil {
			return err
		}
		if err := s.buffs.ActivateOneShot(ctx, r.Buffs, userID, buffType, itemID); err != nil {
			return err
		}
		res = &ActivateResult{UseResult: *used, Buff: buffType, Description: catalog.BuffDescriptions[buffType]}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(domain.EventItemUsed, userID, 0, res.Item.Name)
	return res, nil
}

type GambleResult struct {
	game.Gamble
	LuckyBeer  bool  `json:"luckyBeer"`
	NewBalance int64 `json:"newBalance"`
}

// Gamble bets amount on a d100 roll; amount 0 bets the whole balance.
func (s *EconomyService) Gamble(ctx context.Context, userID string, amount int64) (res *GambleResult, err error) {
	defer func() { observe("gamble", err) }()

	if amount < 0 {
		return nil, domain.ErrInvalidBet
	}

	err = s.store.WithinUserTx(ctx, userID, func(ctx context.Context, r repository.Repos) error {
		u, err := r.Users.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		if u.Balance <= 0 {
			return domain.ErrNoBalance
		}
		bet := amount
		if bet == 0 {
			bet = u.Balance
		}
		if s.maxBet > 0 && bet > s.maxBet {
			return domain.ErrBetTooHigh.Withf("The table limit is %d.", s.maxBet)
		}
		if u.Balance < bet {
			return domain.ErrInsufficientFunds.Withf("Not enough balance. Balance: %d.", u.Balance)
		}
		if !game.PayoutFits(u.Balance, bet) {
			return domain.ErrBetTooHigh.Withf("The house cannot cover a jackpot on %d.", bet)
		}

		lucky, err := s.buffs.ConsumeOneShot(ctx, r.Buffs, userID, domain.BuffLuckyBeer)
		if err != nil {
			return err
		}

		g := game.Resolve(bet, s.roller.Roll(), lucky != nil)
		newBalance, err := r.Users.AdjustBalance(ctx, userID, g.Net)
		if err != nil {
			return err
		}
		meta := g.ToDetails()
		meta["lucky_beer"] = lucky != nil
		if err := r.Transactions.Create(ctx, &domain.Transaction{
			UserID: userID,
			Type:   domain.TxGamble,
			Amount: g.Net,
			Meta:   meta,
		}); err != nil {
			return err
		}

		res = &GambleResult{Gamble: *g, LuckyBeer: lucky != nil, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tier := "loss"
	ev := domain.EventGamble
	switch {
	case res.Jackpot:
		tier, ev = "jackpot", domain.EventJackpot
	case res.Won:
		tier = "win"
	}
	GambleOutcomes.WithLabelValues(tier).Inc()
	observeCoins("gamble", res.Net)
	s.publish(ev, userID, res.Net, tier)
	return res, nil
}

type CheckinResult struct {
	Day        string           `json:"day"`
	Reward     int64            `json:"reward"`
	Multiplier float64          `json:"multiplier"`
	Stew       *domain.ShopItem `json:"stew,omitempty"`
	// BoostBuff is set when an active daily_boost buff supplied the multiplier.
	BoostBuff  *domain.Buff `json:"boostBuff,omitempty"`
	NewBalance int64        `json:"newBalance"`
}

// Today is the UTC calendar day used for check-in.
func (s *EconomyService) Today() string {
	return s.now().UTC().Format(dayLayout)
}

// DailyCheckin credits the daily reward once per UTC day, boosted by the
// strongest stew held or an active daily_boost buff, whichever is higher.
// A stew is consumed only when it supplied the multiplier.
func (s *EconomyService) DailyCheckin(ctx context.Context, userID string) (res *CheckinResult, err error) {
	defer func() { observe("checkin", err) }()

	today := s.Today()
	err = s.store.WithinUserTx(ctx, userID, func(ctx context.Context, r repository.Repos) error {
		u, err := r.Users.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		if u.CheckedInOn(today) {
			return domain.ErrAlreadyCheckedIn
		}

		stewID, stewMult, err := bestStew(ctx, r.Inventory, userID)
		if err != nil {
			return err
		}
		boost, err := s.buffs.Active(ctx, r.Buffs, userID, domain.BuffDailyBoost)
		if err != nil {
			return err
		}

		res = &CheckinResult{Day: today, Multiplier: 1.0}
		useStew := stewID != 0 && (boost == nil || stewMult > boost.Multiplier)
		switch {
		case useStew:
			res.Multiplier = stewMult
		case boost != nil && boost.Multiplier > 1.0:
			res.Multiplier = boost.Multiplier
			res.BoostBuff = boost
		}
		res.Reward = int64(math.Floor(float64(s.reward) * res.Multiplier))

		res.NewBalance, err = r.Users.Checkin(ctx, userID, today, res.Reward)
		if err != nil {
			return err
		}

		meta := map[string]interface{}{"day": today, "multiplier": res.Multiplier}
		if useStew {
			if _, err := r.Inventory.Consume(ctx, userID, stewID, 1); err != nil {
				return err
			}
			stew, err := r.Items.Get(ctx, stewID)
			if err != nil {
				return err
			}
			res.Stew = stew
			meta["stew_id"] = stewID
		}

		return r.Transactions.Create(ctx, &domain.Transaction{
			UserID: userID,
			Type:   domain.TxCheckin,
			Amount: res.Reward,
			Meta:   meta,
		})
	})
	if err != nil {
		return nil, err
	}

	observeCoins("checkin", res.Reward)
	s.publish(domain.EventCheckin, userID, res.Reward, "")
	return res, nil
}

// bestStew returns the strongest stew the user holds, or 0 when none.
func bestStew(ctx context.Context, inv repository.Inventory, userID string) (int64, float64, error) {
	for _, id := range catalog.StewPriority {
		has, err := inv.Has(ctx, userID, id)
		if err != nil {
			return 0, 0, err
		}
		if has {
			return id, catalog.StewMultipliers[id], nil
		}
	}
	return 0, 1.0, nil
}

// GrantDurationBuff activates a daily_boost buff for days days. Used by admins.
func (s *EconomyService) GrantDurationBuff(ctx context.Context, userID string, itemID int64, multiplier float64, days int) (buff *domain.Buff, err error) {
	defer func() { observe("grant", err) }()

	if multiplier < 1 || days < 1 {
		return nil, domain.ErrInvalidBuffRequest
	}
	err = s.store.WithinUserTx(ctx, userID, func(ctx context.Context, r repository.Repos) error {
		buff, err = s.buffs.ActivateDuration(ctx, r.Buffs, userID, domain.BuffDailyBoost, itemID, multiplier, days)
		if err != nil {
			return err
		}
		return r.Transactions.Create(ctx, &domain.Transaction{
			UserID: userID,
			Type:   domain.TxGrant,
			Meta: map[string]interface{}{
				"buff":       string(domain.BuffDailyBoost),
				"item_id":    itemID,
				"multiplier": buff.Multiplier,
				"days":       days,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("duration buff granted", "user_id", userID, "multiplier", buff.Multiplier, "days", days)
	return buff, nil
}

type Profile struct {
	User      *domain.User            `json:"user"`
	Inventory []domain.InventoryEntry `json:"inventory"`
	Buffs     []domain.ActiveBuff     `json:"buffs"`
	// CheckedInToday is relative to the UTC day.
	CheckedInToday bool `json:"checkedInToday"`
}

func (s *EconomyService) Profile(ctx context.Context, userID string) (*Profile, error) {
	r := s.store.Repos()
	u, err := r.Users.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	inv, err := r.Inventory.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	buffs, err := s.buffs.ListActive(ctx, r.Buffs, r.Items, userID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		inv = []domain.InventoryEntry{}
	}
	return &Profile{User: u, Inventory: inv, Buffs: buffs, CheckedInToday: u.CheckedInOn(s.Today())}, nil
}

// Shop lists items for sale; empty category lists all.
func (s *EconomyService) Shop(ctx context.Context, category domain.ItemCategory) ([]domain.ShopItem, error) {
	if category != "" && !category.Valid() {
		return nil, domain.ErrInvalidInput.Withf("Unknown category %q.", category)
	}
	return s.store.Repos().Items.List(ctx, category)
}

func (s *EconomyService) Item(ctx context.Context, itemID int64) (*domain.ShopItem, error) {
	return s.store.Repos().Items.Get(ctx, itemID)
}

// History lists the user's journal, newest first. txType filters by
// transaction type; empty means all.
func (s *EconomyService) History(ctx context.Context, userID, txType string, limit int) ([]*domain.Transaction, error) {
	switch txType {
	case "", domain.TxPurchase, domain.TxGamble, domain.TxCheckin, domain.TxGrant:
	default:
		return nil, domain.ErrInvalidInput.Withf("Unknown transaction type %q.", txType)
	}
	return s.store.Repos().Transactions.ListByUser(ctx, userID, txType, limit)
}
