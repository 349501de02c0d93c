package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOutcomeTable(t *testing.T) {
	cases := []struct {
		name    string
		roll    int
		lucky   bool
		won     bool
		jackpot bool
		net     int64
	}{
		{"lowest roll loses", 1, false, false, false, -100},
		{"just below threshold", 50, false, false, false, -100},
		{"threshold wins", 51, false, true, false, 100},
		{"99 is a plain win", 99, false, true, false, 100},
		{"jackpot", 100, false, true, true, 400},
		{"lucky threshold", 41, true, true, false, 100},
		{"lucky below threshold", 40, true, false, false, -100},
		{"lucky jackpot", 100, true, true, true, 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := Resolve(100, tc.roll, tc.lucky)
			assert.Equal(t, tc.won, g.Won)
			assert.Equal(t, tc.jackpot, g.Jackpot)
			assert.Equal(t, tc.net, g.Net)
		})
	}
}

func TestPayout(t *testing.T) {
	assert.Equal(t, int64(500), Resolve(100, 100, false).Payout())
	assert.Equal(t, int64(200), Resolve(100, 70, false).Payout())
	assert.Equal(t, int64(0), Resolve(100, 10, false).Payout())
}

func TestPayoutFits(t *testing.T) {
	assert.True(t, PayoutFits(1000, 1000))
	assert.True(t, PayoutFits(MaxSafeBet, MaxSafeBet))
	assert.False(t, PayoutFits(MaxSafeBet+1, MaxSafeBet+1))
	assert.False(t, PayoutFits(math.MaxInt64, 1))
	assert.False(t, PayoutFits(100, -1))

	g := Resolve(MaxSafeBet, JackpotRoll, false)
	assert.Positive(t, MaxSafeBet+g.Net)
}

func TestWinChance(t *testing.T) {
	assert.Equal(t, 50, WinChance(false))
	assert.Equal(t, 60, WinChance(true))
}

func TestCryptoRollerRange(t *testing.T) {
	r := CryptoRoller{}
	for i := 0; i < 1000; i++ {
		v := r.Roll()
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, RollSides)
	}
}

func TestFixedRollerRepeatsLast(t *testing.T) {
	r := &FixedRoller{Rolls: []int{10, 100}}
	assert.Equal(t, 10, r.Roll())
	assert.Equal(t, 100, r.Roll())
	assert.Equal(t, 100, r.Roll())
}
