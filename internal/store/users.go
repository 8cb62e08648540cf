package store

import (
	"errors"

	"lumea_back_end/internal/models"

	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Create(email, passwordHash string, fullName *string) (*models.User, error) {
	user := models.User{
		Email:    email,
		Password: passwordHash,
		FullName: fullName,
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retourne une page d'utilisateurs, les plus récents d'abord.
func (s *UserStore) List(page, size int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.db.Order("created_at DESC").
		Offset(PageOffset(page, size)).
		Limit(size).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SetRole change le rôle d'un utilisateur. Action réservée aux admins, la
// valeur est validée à la frontière.
func (s *UserStore) SetRole(id uint, role string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.db.Model(&user).Update("role", role).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
