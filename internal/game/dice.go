package game

import (
	"crypto/rand"
	"math"
	"math/big"
)

// Gamble is a single d100 roll against a win threshold.
type Gamble struct {
	Bet       int64 `json:"bet"`
	Threshold int   `json:"threshold"`
	Roll      int   `json:"roll"`
	Won       bool  `json:"won"`
	Jackpot   bool  `json:"jackpot"`
	// Net is the signed balance change: -Bet on a loss, +Bet on a win, +4*Bet on a jackpot.
	Net int64 `json:"net"`
}

const (
	RollSides = 100

	GambleThreshold      = 51
	LuckyBeerThreshold   = 41
	JackpotRoll          = 100
	JackpotNetMultiplier = 4

	// MaxSafeBet keeps stake plus jackpot winnings within int64.
	MaxSafeBet = math.MaxInt64 / (JackpotNetMultiplier + 1)
)

// PayoutFits reports whether a jackpot on bet can be credited to balance
// without overflowing.
func PayoutFits(balance, bet int64) bool {
	if bet < 0 || bet > MaxSafeBet {
		return false
	}
	return balance <= math.MaxInt64-bet*JackpotNetMultiplier
}

// Roller produces uniform integers in [1, RollSides].
type Roller interface {
	Roll() int
}

// CryptoRoller rolls with crypto/rand.
type CryptoRoller struct{}

func (CryptoRoller) Roll() int {
	n, err := rand.Int(rand.Reader, big.NewInt(RollSides))
	if err != nil {
		n = big.NewInt(0)
	}
	return int(n.Int64()) + 1
}

// FixedRoller returns its rolls in order, repeating the last one.
type FixedRoller struct {
	Rolls []int
	next  int
}

func (f *FixedRoller) Roll() int {
	if len(f.Rolls) == 0 {
		return 1
	}
	r := f.Rolls[f.next]
	if f.next < len(f.Rolls)-1 {
		f.next++
	}
	return r
}

// Threshold is the minimum winning roll, lowered while lucky beer is active.
func Threshold(lucky bool) int {
	if lucky {
		return LuckyBeerThreshold
	}
	return GambleThreshold
}

// WinChance returns the probability of winning as a percentage.
func WinChance(lucky bool) int {
	return RollSides - Threshold(lucky) + 1
}

// Resolve settles a bet for a given roll.
func Resolve(bet int64, roll int, lucky bool) *Gamble {
	g := &Gamble{Bet: bet, Threshold: Threshold(lucky), Roll: roll}
	switch {
	case roll == JackpotRoll:
		g.Won, g.Jackpot = true, true
		g.Net = bet * JackpotNetMultiplier
	case roll >= g.Threshold:
		g.Won = true
		g.Net = bet
	default:
		g.Net = -bet
	}
	return g
}

// Payout is the total returned to the player including the stake; 0 on a loss.
func (g *Gamble) Payout() int64 {
	if !g.Won {
		return 0
	}
	return g.Bet + g.Net
}

func (g *Gamble) ToDetails() map[string]interface{} {
	return map[string]interface{}{
		"bet":       g.Bet,
		"roll":      g.Roll,
		"threshold": g.Threshold,
		"won":       g.Won,
		"jackpot":   g.Jackpot,
	}
}
