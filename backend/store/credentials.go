package store

import (
	"errors"
	"time"

	"formadapt/backend/models"
	"formadapt/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reset tickets were unbounded in earlier revisions; 30 minutes is a
// deliberate cap, enforced at consumption.
const resetTokenTTL = 30 * time.Minute

// CredentialStore is the only component that ever sees password material.
// Hashes and salts never leave it.
type CredentialStore struct {
	DB *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{DB: db}
}

// Create hashes the password and persists a new account. Email uniqueness is
// backed by the column constraint; the lookup just turns the violation into
// ErrDuplicateEmail before the insert is attempted.
func (s *CredentialStore) Create(name, email, password, role string) (*models.User, error) {
	var existing models.User
	if err := s.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, salt, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		Role:         role,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// Lost a race against a concurrent signup for the same email.
		var again models.User
		if lookupErr := s.DB.Where("email = ?", email).First(&again).Error; lookupErr == nil {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

func (s *CredentialStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *CredentialStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes name, email and/or role. It never touches the
// password.
func (s *CredentialStore) UpdateProfile(id uint, name, email, role *string) (*models.User, error) {
	user, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if email != nil && *email != user.Email {
		var existing models.User
		if err := s.DB.Where("email = ?", *email).First(&existing).Error; err == nil {
			if existing.ID != user.ID {
				return nil, ErrDuplicateEmail
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *email
	}
	if name != nil {
		user.Name = *name
	}
	if role != nil {
		user.Role = *role
	}

	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword re-hashes with a freshly generated salt.
func (s *CredentialStore) UpdatePassword(id uint, newPassword string) error {
	user, err := s.FindByID(id)
	if err != nil {
		return err
	}

	hash, salt, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.DB.Model(user).Updates(map[string]interface{}{
		"password_hash": hash,
		"salt":          salt,
	}).Error
}

// Delete removes an account and its outstanding reset tickets. Deleting an
// absent id is a no-op success; the bool tells callers whether a row
// actually went.
func (s *CredentialStore) Delete(id uint) (bool, error) {
	result := s.DB.Unscoped().Delete(&models.User{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	if err := s.DB.Unscoped().Where("user_id = ?", id).Delete(&models.PasswordResetToken{}).Error; err != nil {
		return false, err
	}
	return result.RowsAffected > 0, nil
}

// List returns all accounts. Password material is excluded by the model's
// JSON tags and must stay that way.
func (s *CredentialStore) List() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateResetToken issues a single-use password-reset ticket for the account.
func (s *CredentialStore) CreateResetToken(userID uint) (string, error) {
	ticket := models.PasswordResetToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.DB.Create(&ticket).Error; err != nil {
		return "", err
	}
	return ticket.Token, nil
}

// ConsumeResetToken resolves a ticket to its account and deletes it. The
// delete's row count decides the race: whichever caller removes the row uses
// the ticket, everyone else gets ErrNotFound. Expired tickets are purged on
// sight.
func (s *CredentialStore) ConsumeResetToken(token string) (uint, error) {
	var ticket models.PasswordResetToken
	if err := s.DB.Where("token = ?", token).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	if time.Now().After(ticket.ExpiresAt) {
		s.DB.Unscoped().Delete(&ticket)
		return 0, ErrNotFound
	}

	result := s.DB.Unscoped().Where("id = ?", ticket.ID).Delete(&models.PasswordResetToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return ticket.UserID, nil
}
