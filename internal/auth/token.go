package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/StealFarm_Go/internal/clock"
	"github.com/osse101/StealFarm_Go/internal/domain"
)

// currentKeyVersion prefixes every issued token so keys can be rotated
const currentKeyVersion = "1"

// Tokens issues and verifies signed session tokens of the form
// "<key version>.<base64 claims>.<base64 hmac-sha256>".
type Tokens struct {
	cur   string
	keys  map[string][]byte
	ttl   time.Duration
	clock clock.Clock
}

type claims struct {
	PlayerID string `json:"i"`
	Expires  int64  `json:"e"`
}

// NewTokens creates a token issuer with a single key version
func NewTokens(secret string, ttl time.Duration, clk clock.Clock) (*Tokens, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty auth secret", domain.ErrInvalidInput)
	}
	return &Tokens{
		cur:   currentKeyVersion,
		keys:  map[string][]byte{currentKeyVersion: []byte(secret)},
		ttl:   ttl,
		clock: clk,
	}, nil
}

// Issue creates a token for playerID and returns it with its expiry
func (t *Tokens) Issue(playerID string) (string, time.Time, error) {
	expires := t.clock.Now().Add(t.ttl)
	body, err := json.Marshal(claims{PlayerID: playerID, Expires: expires.Unix()})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to encode token: %w", err)
	}

	sig := sign(body, t.keys[t.cur])
	token := t.cur +
		"." +
		base64.RawURLEncoding.EncodeToString(body) +
		"." +
		base64.RawURLEncoding.EncodeToString(sig)
	return token, expires, nil
}

// Verify checks signature and expiry and returns the bound player id
func (t *Tokens) Verify(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: malformed token", domain.ErrUnauthorized)
	}

	key, ok := t.keys[parts[0]]
	if !ok {
		return "", fmt.Errorf("%w: unknown key version", domain.ErrUnauthorized)
	}

	body, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: bad token body", domain.ErrUnauthorized)
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: bad token signature", domain.ErrUnauthorized)
	}

	if subtle.ConstantTimeCompare(sig, sign(body, key)) != 1 {
		return "", fmt.Errorf("%w: signature mismatch", domain.ErrUnauthorized)
	}

	var c claims
	if err := json.Unmarshal(body, &c); err != nil {
		return "", fmt.Errorf("%w: bad token claims", domain.ErrUnauthorized)
	}

	if !t.clock.Now().Before(time.Unix(c.Expires, 0)) {
		return "", fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
	}
	if c.PlayerID == "" {
		return "", fmt.Errorf("%w: token has no subject", domain.ErrUnauthorized)
	}

	return c.PlayerID, nil
}

func sign(body, key []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(body)
	return mac.Sum(nil)
}
