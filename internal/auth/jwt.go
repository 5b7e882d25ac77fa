package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
	ErrWrongGame    = errors.New("token does not belong to this game")
)

// SideClaims is the payload of a side token: proof that the bearer commands
// one side of one game. Issued at create/join and never refreshed; a game
// outliving the expiry window is long abandoned anyway.
type SideClaims struct {
	GameCode string `json:"game_code"`
	Side     int    `json:"side"`
	jwt.RegisteredClaims
}

// Claims is the payload of an account token.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTManager handles token creation and validation.
type JWTManager struct {
	secret        []byte
	sideExpiry    time.Duration
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewJWTManager creates a JWTManager with the given secret.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{
		secret:        []byte(secret),
		sideExpiry:    90 * 24 * time.Hour,
		accessExpiry:  15 * time.Minute,
		refreshExpiry: 7 * 24 * time.Hour,
	}
}

// GenerateSideToken creates a long-lived token binding the bearer to one
// side of one game.
func (m *JWTManager) GenerateSideToken(gameCode string, side int) (string, error) {
	claims := &SideClaims{
		GameCode: gameCode,
		Side:     side,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.sideExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   gameCode,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateSideToken parses a side token and checks it against the game it
// is being presented for.
func (m *JWTManager) ValidateSideToken(tokenStr, gameCode string) (*SideClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SideClaims{}, m.keyFunc)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SideClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.GameCode != gameCode {
		return nil, ErrWrongGame
	}
	if claims.Side != 1 && claims.Side != 2 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateAccessToken creates a short-lived access token for an account.
func (m *JWTManager) GenerateAccessToken(userID string) (string, error) {
	return m.generateUserToken(userID, m.accessExpiry)
}

// GenerateRefreshToken creates a long-lived refresh token.
func (m *JWTManager) GenerateRefreshToken(userID string) (string, error) {
	return m.generateUserToken(userID, m.refreshExpiry)
}

func (m *JWTManager) generateUserToken(userID string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and validates an account token, returning the claims.
func (m *JWTManager) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, m.keyFunc)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *JWTManager) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return m.secret, nil
}

// TokenPair holds an access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}

// GenerateTokenPair creates both account tokens for a user.
func (m *JWTManager) GenerateTokenPair(userID string) (*TokenPair, error) {
	access, err := m.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := m.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(m.accessExpiry.Seconds()),
	}, nil
}
