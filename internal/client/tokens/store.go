// Package tokens persists the session token across client restarts.
//
// The token is kept in the metadata table next to an absolute expiry. A
// token past its expiry is discarded on load, mirroring a browser cookie
// with a max-age.
package tokens

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/sicmundus/tracker/internal/client/repositories/metadata"
	"github.com/sicmundus/tracker/internal/dbx"
)

const (
	KeyToken     = "auth_token"
	KeyExpiresAt = "auth_token_expires_at"
)

// SQLiteStore stores the token in the client database.
type SQLiteStore struct {
	db    *sql.DB
	ttl   time.Duration
	clock clockwork.Clock
}

func NewSQLiteStore(db *sql.DB, ttl time.Duration, clock clockwork.Clock) *SQLiteStore {
	return &SQLiteStore{db: db, ttl: ttl, clock: clock}
}

// Load returns the persisted token, or "" when none is stored or it has
// expired. An expired token is removed.
func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	token, ok, err := repo.Get(ctx, KeyToken)
	if err != nil || !ok || token == "" {
		return "", err
	}

	raw, ok, err := repo.Get(ctx, KeyExpiresAt)
	if err != nil {
		return "", err
	}
	if ok {
		expiresAt, perr := time.Parse(time.RFC3339, raw)
		if perr != nil || !s.clock.Now().Before(expiresAt) {
			return "", s.Clear(ctx)
		}
	}
	return token, nil
}

// Save writes token with an expiry of now+ttl, or the token's own "exp"
// claim when it is a JWT expiring earlier.
func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	expiresAt := s.clock.Now().Add(s.ttl)
	if exp, ok := jwtExpiry(token); ok && exp.Before(expiresAt) {
		expiresAt = exp
	}

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, KeyExpiresAt, expiresAt.UTC().Format(time.RFC3339))
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := metadata.NewSQLiteRepository(s.db).Delete(ctx, KeyToken, KeyExpiresAt); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// jwtExpiry reads the exp claim without verifying the signature; the client
// has no key and only wants to avoid reusing a token the server will reject.
func jwtExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
