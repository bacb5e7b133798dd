package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultStateTTL is how long an issued state token stays redeemable.
// An install attempt that takes longer than this has to start over.
const DefaultStateTTL = 10 * time.Minute

// StateStore issues and redeems the anti-CSRF state tokens carried through
// the OAuth redirect/callback cycle. Consume reports whether the state was
// issued by this app and is still fresh; implementations that can should also
// invalidate it so a state is redeemable at most once.
type StateStore interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, state string) (bool, error)
}

// randomState returns a fresh unguessable token (256 bits, URL-safe base64)
func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MemoryStateStore keeps issued states in process memory with expiry.
// Suitable for tests and single-instance deployments; states do not survive
// a restart.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
	ttl    time.Duration

	// now is injectable for expiry tests
	now func() time.Time
}

// NewMemoryStateStore creates an in-memory state store with the default TTL
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{
		states: make(map[string]time.Time),
		ttl:    DefaultStateTTL,
		now:    time.Now,
	}
}

func (s *MemoryStateStore) Issue(ctx context.Context) (string, error) {
	state, err := randomState()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	s.states[state] = s.now().Add(s.ttl)

	return state, nil
}

func (s *MemoryStateStore) Consume(ctx context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.states[state]
	if !ok {
		return false, nil
	}

	delete(s.states, state)

	return s.now().Before(expiry), nil
}

// purgeExpiredLocked drops stale entries so abandoned install attempts don't
// accumulate. Caller must hold the lock.
func (s *MemoryStateStore) purgeExpiredLocked() {
	now := s.now()
	for state, expiry := range s.states {
		if now.After(expiry) {
			delete(s.states, state)
		}
	}
}

// SignedStateStore issues self-validating HS256-signed states instead of
// storing them. It needs no shared storage, which makes it the choice for
// multi-instance deployments without Redis, at the cost of one-time-use:
// a signed state stays redeemable until its expiry claim lapses.
type SignedStateStore struct {
	secret []byte
	ttl    time.Duration

	now func() time.Time
}

// NewSignedStateStore creates a stateless store signing states with the
// given secret
func NewSignedStateStore(secret string) (*SignedStateStore, error) {
	if secret == "" {
		return nil, fmt.Errorf("state signing secret is required")
	}
	return &SignedStateStore{
		secret: []byte(secret),
		ttl:    DefaultStateTTL,
		now:    time.Now,
	}, nil
}

func (s *SignedStateStore) Issue(ctx context.Context) (string, error) {
	nonce, err := randomState()
	if err != nil {
		return "", err
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        nonce,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	return token.SignedString(s.secret)
}

func (s *SignedStateStore) Consume(ctx context.Context, state string) (bool, error) {
	token, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		// Forged, malformed or expired states are all just invalid
		return false, nil
	}
	return true, nil
}
