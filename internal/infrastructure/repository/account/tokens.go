package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/veecerts/asset-api/internal/domain/account"
	"github.com/veecerts/asset-api/internal/infrastructure/database/entities"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// TokenRepository handles session token persistence.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token *domain.AuthToken) error {
	entity := entities.AuthToken{
		UUID:      token.UUID,
		UserID:    token.UserID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to create auth token", err)
	}
	token.ID = entity.ID
	token.DateAdded = entity.DateAdded
	return nil
}

func (r *TokenRepository) FindByUUID(ctx context.Context, id uuid.UUID) (*domain.AuthToken, error) {
	var entity entities.AuthToken
	err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to find auth token", err)
	}
	token := domain.AuthToken{
		ID:        entity.ID,
		UUID:      entity.UUID,
		UserID:    entity.UserID,
		Token:     entity.Token,
		ExpiresAt: entity.ExpiresAt,
		DateAdded: entity.DateAdded,
	}
	return &token, nil
}

func (r *TokenRepository) FindUser(ctx context.Context, userID int64) (*domain.User, error) {
	var entity entities.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to find token user", err)
	}
	user := mapUser(entity)
	return &user, nil
}

func (r *TokenRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&entities.AuthToken{}, id).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to delete auth token", err)
	}
	return nil
}

func (r *TokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.AuthToken{}).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypePersistence, "failed to delete user auth tokens", err)
	}
	return nil
}
