package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

type hmacPayload struct {
	UserID   int64  `json:"uid"`
	Username string `json:"usr"`
	Role     string `json:"rol"`
	TokenID  string `json:"jti"`
	Issued   int64  `json:"iat"`
	Expires  int64  `json:"exp"`
}

// HMACStrategy implements compact "payload.signature" tokens signed with HMAC-SHA256.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	opts = opts.withDefaults()
	return &HMACStrategy{secret: []byte(secret), ttl: opts.TTL, now: opts.Now}
}

// IssueToken generates signed auth token for the claims.
func (s *HMACStrategy) IssueToken(claims model.Claims) (string, error) {
	claims = stamp(claims, s.now(), s.ttl)
	raw, err := json.Marshal(hmacPayload{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     string(claims.Role),
		TokenID:  claims.TokenID,
		Issued:   claims.IssuedAt.Unix(),
		Expires:  claims.ExpiresAt.Unix(),
	})
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + s.sign(payload), nil
}

// ParseToken validates token and returns encoded claims.
func (s *HMACStrategy) ParseToken(token string) (*model.Claims, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sig == "" {
		return nil, ErrTokenMalformed
	}

	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return nil, ErrTokenSignature
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	var decoded hmacPayload
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded.Expires == 0 {
		return nil, ErrTokenMalformed
	}

	expires := time.Unix(decoded.Expires, 0)
	if !s.now().Before(expires) {
		return nil, ErrTokenExpired
	}

	return &model.Claims{
		UserID:    decoded.UserID,
		Username:  decoded.Username,
		Role:      model.Role(decoded.Role),
		TokenID:   decoded.TokenID,
		IssuedAt:  time.Unix(decoded.Issued, 0),
		ExpiresAt: expires,
	}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
