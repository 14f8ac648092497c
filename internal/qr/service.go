package qr

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrUserNotFound is returned when issuing a token for an unknown user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken is returned for tokens that are unknown or expired.
	// Callers map it to a generic 400 so scanners learn nothing.
	ErrInvalidToken = errors.New("invalid or expired token")
)

var (
	issuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sams_qr_tokens_issued_total",
		Help: "QR tokens issued.",
	})
	verifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sams_qr_verifications_total",
		Help: "QR token verifications by result.",
	}, []string{"result"})
)

type userSource interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// Service issues and verifies short-lived QR tokens that resolve a scanned
// code to a user without putting identity in the code itself.
type Service struct {
	users  userSource
	tokens Store
	ttl    time.Duration
}

// NewService creates a token service. ttl defaults to 5 minutes.
func NewService(users userSource, tokens Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{users: users, tokens: tokens, ttl: ttl}
}

// Issue creates a token for the user. It fails closed when the user does not
// exist, and opportunistically sweeps expired tokens from the store.
func (s *Service) Issue(ctx context.Context, userID int) (string, error) {
	found, err := s.users.Exists(ctx, userID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrUserNotFound
	}

	token, err := newToken()
	if err != nil {
		return "", err
	}
	if err := s.tokens.Save(ctx, token, userID, s.ttl); err != nil {
		return "", err
	}
	s.tokens.Sweep(ctx)
	issuedTotal.Inc()
	return token, nil
}

// Verify resolves a token to its user id. It does not consume the token:
// repeated scans stay valid until natural expiry, which tolerates duplicate
// and retried scans within the token's lifetime.
func (s *Service) Verify(ctx context.Context, token string) (int, error) {
	userID, err := s.tokens.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			verifiedTotal.WithLabelValues("invalid").Inc()
			return 0, ErrInvalidToken
		}
		return 0, err
	}
	verifiedTotal.WithLabelValues("ok").Inc()
	return userID, nil
}

// newToken returns 128 bits of hex-encoded randomness. Collisions are
// negligible, so no uniqueness check is made.
func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
