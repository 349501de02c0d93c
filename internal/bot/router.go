package bot

import (
	"context"
	"log/slog"

	"tavern_bot/internal/domain"
	"tavern_bot/internal/logger"
	"tavern_bot/internal/service"
)

type handlerFunc func(ctx context.Context, req Request) (*Reply, error)

// Router turns slash command requests into replies using the services.
type Router struct {
	economy  *service.EconomyService
	memes    *service.MemeService
	handlers map[string]handlerFunc
	failures map[string]string
	log      *slog.Logger
}

func NewRouter(economy *service.EconomyService, memes *service.MemeService) *Router {
	r := &Router{economy: economy, memes: memes, log: logger.With("component", "bot_router")}
	r.handlers = map[string]handlerFunc{
		cmdBalance:   r.balance,
		cmdCheckin:   r.checkin,
		cmdGamble:    r.gamble,
		cmdShop:      r.shop,
		cmdBuy:       r.buy,
		cmdUse:       r.use,
		cmdInventory: r.inventory,
		cmdSave:      r.save,
		cmdLoad:      r.load,
		cmdDig:       r.dig,
		cmdEdit:      r.edit,
		cmdDelete:    r.delete,
		cmdStats:     r.stats,
	}
	r.failures = map[string]string{
		cmdBalance:   "Lookup failed",
		cmdCheckin:   "Check-in failed",
		cmdGamble:    "Gamble failed",
		cmdShop:      "Shop unavailable",
		cmdBuy:       "Purchase failed",
		cmdUse:       "Use failed",
		cmdInventory: "Lookup failed",
		cmdSave:      "Save failed",
		cmdLoad:      "Search failed",
		cmdDig:       "Search failed",
		cmdEdit:      "Edit failed",
		cmdDelete:    "Delete failed",
		cmdStats:     "Search failed",
	}
	return r
}

// Handle always produces a reply: typed failures are shown verbatim, anything
// else becomes a generic error and is logged.
func (r *Router) Handle(ctx context.Context, req Request) *Reply {
	h, ok := r.handlers[req.Name]
	if !ok {
		return failure("Unknown command", "That command is not available.")
	}

	reply, err := h(ctx, req)
	if err == nil {
		return reply
	}

	title := r.failures[req.Name]
	if de, ok := domain.AsError(err); ok {
		return failure(title, de.Message)
	}
	r.log.Error("command failed", "command", req.Name, "user_id", req.UserID, "error", err)
	return failure(title, "Something went wrong. Try again in a moment.")
}
