package repositories

import "reviewhub/internal/models"

// UserRepository defines the interface for account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(search string) ([]models.User, error)
	Save(user *models.User) error
	Delete(username string) error
}
