package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agendalab/agenda-backend/internal/dto"
	"github.com/agendalab/agenda-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailInUse = errors.New("email already in use by another user")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Profile returns a user without password or role.
func (s *UserService) Profile(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Surname:        user.Surname,
		OrganizationID: user.OrganizationID,
		Image:          user.Image,
	}, nil
}

// UpdateProfile applies the allow-listed profile fields. Role, image,
// organization and token claims are not reachable from here.
func (s *UserService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Surname != nil {
		user.Surname = *req.Surname
	}

	if req.Email != nil && *req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(*req.Email))

		var existing models.User
		err := s.db.Where("email = ? AND id <> ?", email, userID).First(&existing).Error
		if err == nil {
			return nil, ErrEmailInUse
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = email
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if err := s.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	return &dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Surname:        user.Surname,
		OrganizationID: user.OrganizationID,
		Image:          user.Image,
	}, nil
}

// SetAvatar records the stored filename of the user's avatar.
func (s *UserService) SetAvatar(userID uuid.UUID, filename string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("image", filename)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
