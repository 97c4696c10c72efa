package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/internal/user"
)

// AuthRepository lookups return (nil, nil) when no user matches.
type AuthRepository interface {
	CreateUser(ctx context.Context, u *user.User) error
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetUserByID(ctx context.Context, id uint) (*user.User, error)
	GetUserByVerifyToken(ctx context.Context, token string) (*user.User, error)
	UpdateUser(ctx context.Context, u *user.User) error
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *authRepository) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *authRepository) GetUserByID(ctx context.Context, id uint) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *authRepository) GetUserByVerifyToken(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, nil
	}
	return r.first(ctx, "verify_token = ?", token)
}

func (r *authRepository) UpdateUser(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *authRepository) first(ctx context.Context, query string, args ...interface{}) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
