package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"storefront/internal/database"
	"storefront/internal/models"
)

const (
	keyToken        = "token"
	keyRefreshToken = "refresh_token"
	keyUser         = "user"
	keyLastOrder    = "lastOrder"
)

// Store keeps credentials, the signed-in user and the last completed order
// in a database.StateStore.
type Store struct {
	state database.StateStore
}

func NewStore(state database.StateStore) *Store {
	return &Store{state: state}
}

func (s *Store) Tokens(ctx context.Context) (models.AuthTokens, error) {
	access, err := s.optional(ctx, keyToken)
	if err != nil {
		return models.AuthTokens{}, err
	}
	refresh, err := s.optional(ctx, keyRefreshToken)
	if err != nil {
		return models.AuthTokens{}, err
	}
	return models.AuthTokens{Access: access, Refresh: refresh}, nil
}

// SaveTokens stores the pair. An empty refresh token keeps the stored one.
func (s *Store) SaveTokens(ctx context.Context, tokens models.AuthTokens) error {
	if err := s.state.Set(ctx, keyToken, tokens.Access); err != nil {
		return errors.Wrap(err, "save access token")
	}
	if tokens.Refresh == "" {
		return nil
	}
	if err := s.state.Set(ctx, keyRefreshToken, tokens.Refresh); err != nil {
		return errors.Wrap(err, "save refresh token")
	}
	return nil
}

// SaveLogin replaces every credential of the previous account. Only a token
// refresh may carry the stored refresh token forward.
func (s *Store) SaveLogin(ctx context.Context, tokens models.AuthTokens, user *models.User) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}
	if err := s.SaveTokens(ctx, tokens); err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	return s.saveJSON(ctx, keyUser, user)
}

// User returns nil when nobody is signed in.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	var user models.User
	found, err := s.loadJSON(ctx, keyUser, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (s *Store) Authenticated(ctx context.Context) bool {
	tokens, err := s.Tokens(ctx)
	return err == nil && !tokens.Empty()
}

// Clear drops every credential. The last order backup survives sign-out.
func (s *Store) Clear(ctx context.Context) error {
	return errors.Wrap(s.state.Delete(ctx, keyToken, keyRefreshToken, keyUser), "clear credentials")
}

func (s *Store) SaveLastOrder(ctx context.Context, order models.CompletedOrder) error {
	return s.saveJSON(ctx, keyLastOrder, order)
}

// LastOrder returns nil when no order has been completed on this client.
func (s *Store) LastOrder(ctx context.Context) (*models.CompletedOrder, error) {
	var order models.CompletedOrder
	found, err := s.loadJSON(ctx, keyLastOrder, &order)
	if err != nil || !found {
		return nil, err
	}
	return &order, nil
}

// AccessExpiry reads the exp claim of the access token without verifying
// the signature; the client never holds the signing key.
func AccessExpiry(access string) (time.Time, bool) {
	if access == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the access token carries an exp claim in the past.
// Tokens without a readable exp are treated as live.
func Expired(access string, now time.Time) bool {
	exp, ok := AccessExpiry(access)
	return ok && !now.Before(exp)
}

func (s *Store) optional(ctx context.Context, key string) (string, error) {
	value, err := s.state.Get(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "load %s", key)
	}
	return value, nil
}

func (s *Store) saveJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	return errors.Wrapf(s.state.Set(ctx, key, string(data)), "save %s", key)
}

func (s *Store) loadJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, err := s.optional(ctx, key)
	if err != nil || raw == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, errors.Wrapf(err, "decode %s", key)
	}
	return true, nil
}
