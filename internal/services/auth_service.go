package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agendalab/agenda-backend/internal/config"
	"github.com/agendalab/agenda-backend/internal/dto"
	"github.com/agendalab/agenda-backend/internal/models"
	"github.com/agendalab/agenda-backend/internal/organization"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrUserExists maps to an HTTP 200 warning response, not an error
	// status. Kept that way on purpose.
	ErrUserExists          = errors.New("user already exists")
	ErrMissingRegistration = errors.New("name, email, password and organization are required")
	ErrUnknownOrganization = errors.New("unknown organization")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired refresh token")
	ErrUserNotFound        = errors.New("user not found")
	ErrPasswordRequired    = errors.New("password is required")
)

// timingHash is compared against when no account matches the login email, so
// the response takes the same time either way.
var timingHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	registry *organization.Registry
}

func NewAuthService(db *gorm.DB, cfg *config.Config, registry *organization.Registry) *AuthService {
	return &AuthService{db: db, cfg: cfg, registry: registry}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 || req.Organization == "" {
		return nil, ErrMissingRegistration
	}

	if !s.registry.Exists(req.Organization) {
		return nil, ErrUnknownOrganization
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:             uuid.New(),
		OrganizationID: req.Organization,
		Email:          email,
		Password:       string(hash),
		Name:           req.Name,
		Surname:        req.Surname,
		Role:           "user",
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateTokenPair(&user)
}

// Login answers the identical error for an unknown email and a mismatched
// password. A successful login clears the deactivated flag.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	findErr := s.db.Where("email = ?", email).First(&user).Error

	hash := timingHash
	if findErr == nil {
		hash = []byte(user.Password)
	}
	compareErr := bcrypt.CompareHashAndPassword(hash, []byte(req.Password))

	if findErr != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Deactivated {
		if err := s.db.Model(&user).Update("deactivated", false).Error; err != nil {
			return nil, fmt.Errorf("failed to reactivate user: %w", err)
		}
		user.Deactivated = false
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = ?", tokenHash, false).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	// Rotate: each refresh token is single-use.
	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// Deactivate flags the account instead of deleting it; the next successful
// login reactivates it. Outstanding refresh tokens are revoked.
func (s *AuthService) Deactivate(userID uuid.UUID, password string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if password == "" {
		return ErrPasswordRequired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RefreshToken{}).
			Where("user_id = ?", userID).
			Update("revoked", true).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("deactivated", true).Error
	})
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:             user.ID,
			Email:          user.Email,
			Name:           user.Name,
			Surname:        user.Surname,
			OrganizationID: user.OrganizationID,
			Image:          user.Image,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"name":  user.Name,
		"org":   user.OrganizationID,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:             uuid.New(),
		OrganizationID: user.OrganizationID,
		UserID:         user.ID,
		TokenHash:      tokenHash,
		ExpiresAt:      time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
