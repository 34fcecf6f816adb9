package db

import (
	"context"

	"github.com/pkg/errors"
	apiError "github.com/techagentng/cleancity/errors"
	"github.com/techagentng/cleancity/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	FindUserIDsByRole(ctx context.Context, roleName string) ([]uint, error)
}

type userRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *GormDB) UserRepository {
	return &userRepo{db.DB}
}

func (u *userRepo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := u.DB.WithContext(ctx).Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to find user")
	}
	return &user, nil
}

// FindUserIDsByRole returns the ids of every unblocked user holding roleName, in id order.
func (u *userRepo) FindUserIDsByRole(ctx context.Context, roleName string) ([]uint, error) {
	var ids []uint
	err := u.DB.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ? AND users.is_blocked = ?", roleName, false).
		Order("users.id").
		Pluck("users.id", &ids).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s users", roleName)
	}
	return ids, nil
}
