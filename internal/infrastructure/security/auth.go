// Package security provides token issuance, validation and session
// tracking for the API.
package security

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/config"
	"github.com/YoungCoderX/Recipe-Rack/internal/ports/outbound"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService issues and validates JWT access tokens and tracks sessions
// in the cache so tokens can be revoked.
type AuthService struct {
	config    *config.Config
	logger    *zap.Logger
	cache     outbound.CacheRepository
	jwtSecret []byte
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, logger *zap.Logger, cache outbound.CacheRepository) *AuthService {
	return &AuthService{
		config:    cfg,
		logger:    logger.Named("auth"),
		cache:     cache,
		jwtSecret: []byte(cfg.Auth.JWTSecret),
	}
}

// Claims represents JWT claims structure
type Claims struct {
	UserID    string `json:"user_id"`
	Anonymous bool   `json:"anonymous"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// SessionInfo represents a tracked session
type SessionInfo struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Anonymous bool      `json:"anonymous"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueToken creates a session and signs an access token for the user.
func (a *AuthService) IssueToken(ctx context.Context, userID uuid.UUID, anonymous bool) (string, *SessionInfo, error) {
	now := time.Now()
	session := &SessionInfo{
		UserID:    userID.String(),
		SessionID: uuid.New().String(),
		Anonymous: anonymous,
		CreatedAt: now,
		ExpiresAt: now.Add(a.config.Auth.JWTExpiration),
	}

	if err := a.storeSession(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	claims := &Claims{
		UserID:    session.UserID,
		Anonymous: anonymous,
		SessionID: session.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "reciperack",
			Subject:   session.UserID,
			Audience:  []string{"reciperack-api"},
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, session, nil
}

// ValidateToken validates and parses a JWT access token, checking the
// revocation list and that the session still exists.
func (a *AuthService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if revoked, err := a.isTokenRevoked(ctx, claims.ID); err != nil {
		a.logger.Warn("Failed to check token revocation", zap.Error(err))
	} else if revoked {
		return nil, fmt.Errorf("token has been revoked")
	}

	if _, err := a.loadSession(ctx, claims.SessionID); err != nil {
		return nil, fmt.Errorf("session not found or expired")
	}

	return claims, nil
}

// RevokeToken revokes a token by adding it to the revocation list
func (a *AuthService) RevokeToken(ctx context.Context, tokenID string) error {
	key := fmt.Sprintf("revoked_token:%s", tokenID)
	return a.cache.Set(ctx, key, []byte("revoked"), a.config.Auth.JWTExpiration)
}

// EndSession removes a session record, invalidating every token bound to it
func (a *AuthService) EndSession(ctx context.Context, sessionID string) error {
	return a.cache.Delete(ctx, fmt.Sprintf("session:%s", sessionID))
}

func (a *AuthService) storeSession(ctx context.Context, session *SessionInfo) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("session:%s", session.SessionID)
	return a.cache.Set(ctx, key, data, a.config.Auth.JWTExpiration)
}

func (a *AuthService) loadSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	data, err := a.cache.Get(ctx, fmt.Sprintf("session:%s", sessionID))
	if err != nil {
		return nil, err
	}

	var session SessionInfo
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (a *AuthService) isTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	return a.cache.Exists(ctx, fmt.Sprintf("revoked_token:%s", tokenID))
}
