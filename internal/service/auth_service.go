package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/formaplace/formaplace-backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Role identifies the actor kind a token was issued for.
type Role string

const (
	RoleLearner Role = "learner"
	RoleTrainer Role = "trainer"
	RoleExpert  Role = "expert"
	RoleAdmin   Role = "admin"
)

// Claims extends JWT registered claims with the actor's role and id.
// Tokens are stateless: nothing is persisted server-side, and actor
// existence is re-checked by the authorization gate on every request.
type Claims struct {
	jwt.RegisteredClaims
	Role   Role `json:"role"`
	UserID int  `json:"user_id"`
}

// AuthService issues and verifies session tokens and hashes passwords.
type AuthService struct {
	cfg *config.Config

	// now is the clock used for issuance and verification; injectable so
	// expiry behavior is testable without sleeping.
	now func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg, now: time.Now}
}

// HashPassword hashes a password with the configured bcrypt cost. Hashing
// is always an explicit call-site step, never a persistence hook.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// TTLFor returns the absolute session lifetime for a role. There is no
// refresh: when the token expires the actor logs in again.
func (s *AuthService) TTLFor(role Role) time.Duration {
	switch role {
	case RoleAdmin:
		return s.cfg.AdminTokenTTL
	case RoleTrainer, RoleExpert:
		return s.cfg.StaffTokenTTL
	default:
		return s.cfg.LearnerTokenTTL
	}
}

// GenerateToken creates a signed JWT binding the actor id to its role,
// expiring after the role's TTL.
func (s *AuthService) GenerateToken(role Role, userID int) (string, error) {
	now := s.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTLFor(role))),
		},
		Role:   role,
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims. It does
// not check that the actor still exists; that is the gate's job.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

const passwordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateInitialPassword produces a random initial password for accounts
// created server-side (experts, trainers from accepted demandes). The
// plaintext is mailed once and only the hash is stored.
func (s *AuthService) GenerateInitialPassword() (string, error) {
	const length = 12
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
