package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const stateMaxAge = 10 * time.Minute

// NewOAuthState returns "nonce.issuedAt.mac". The same value goes into a
// short-lived cookie and the authorize URL; the callback must see both match.
func NewOAuthState(secret []byte, now time.Time) string {
	payload := uuid.NewString() + "." + strconv.FormatInt(now.Unix(), 10)
	return payload + "." + stateMAC(secret, payload)
}

// ValidateOAuthState checks the MAC and that the state is recent.
func ValidateOAuthState(state string, secret []byte, now time.Time) bool {
	i := strings.LastIndexByte(state, '.')
	if i <= 0 {
		return false
	}
	payload, mac := state[:i], state[i+1:]

	provided, err := hex.DecodeString(mac)
	if err != nil {
		return false
	}
	expected, _ := hex.DecodeString(stateMAC(secret, payload))
	if !hmac.Equal(expected, provided) {
		return false
	}

	_, ts, ok := strings.Cut(payload, ".")
	if !ok {
		return false
	}
	issued, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}
	age := now.Unix() - issued
	// allow small clock skew
	return age <= int64(stateMaxAge/time.Second) && age >= -300
}

func stateMAC(secret []byte, payload string) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}
