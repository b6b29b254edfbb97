package service

import (
	"errors"
	"strings"
	"time"

	"github.com/whitebirds/internal/config"
	"github.com/whitebirds/internal/constants"
	"github.com/whitebirds/internal/logger"
	"github.com/whitebirds/internal/models"
	"github.com/whitebirds/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultSessionHours = 7 * 24

// AuthService signup, signin and session tokens
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewAuthService creates the auth service
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo}
}

// SessionClaims session token payload
type SessionClaims struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// SignupInput signup fields
type SignupInput struct {
	Name     string
	Email    string
	Password string
	MobNo    string
}

// SessionTTL lifetime of a session token and its cookie
func (s *AuthService) SessionTTL() time.Duration {
	hours := s.cfg.JWT.ExpireHours
	if hours <= 0 {
		hours = defaultSessionHours
	}
	return time.Duration(hours) * time.Hour
}

// GenerateToken signs a session token for the user
func (s *AuthService) GenerateToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.SessionTTL())
	claims := SessionClaims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken verifies a session token
func (s *AuthService) ParseToken(tokenString string) (*SessionClaims, error) {
	if strings.TrimSpace(s.cfg.JWT.SecretKey) == "" {
		return nil, ErrInvalidToken
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid || claims.ID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Signup registers a customer and returns the user with a session token
func (s *AuthService) Signup(input SignupInput) (*models.User, string, time.Time, error) {
	email := normalizeEmail(input.Email)
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, "", time.Time{}, err
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if existing != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}

	cost := s.cfg.Security.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), cost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: string(hashed),
		Role:     constants.RoleCustomer,
	}
	if mobile := strings.TrimSpace(input.MobNo); mobile != "" {
		user.MobNo = &mobile
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", time.Time{}, ErrEmailExists
		}
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	logger.Infow("user_signup", "user_id", user.ID)
	return user, token, expiresAt, nil
}

// Signin checks credentials and returns the user (with address) and a session token
func (s *AuthService) Signin(email, password string) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidPassword
	}

	token, expiresAt, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	logger.Infow("user_signin", "user_id", user.ID)
	return user, token, expiresAt, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
