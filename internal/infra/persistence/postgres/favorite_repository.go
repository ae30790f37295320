package postgres

import (
	"context"

	"dealscout/internal/domain/entity"
	domainerrors "dealscout/internal/domain/errors"
	"dealscout/internal/domain/repository"
	"dealscout/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// favoriteRepository implements the repository.FavoriteRepository interface.
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository is the constructor for favoriteRepository.
func NewFavoriteRepository(db *gorm.DB) repository.FavoriteRepository {
	return &favoriteRepository{
		db: db,
	}
}

// CreateFavorite persists a new favorite record.
func (repo *favoriteRepository) CreateFavorite(ctx context.Context, favorite *entity.FavoriteRecord) error {
	favoriteM := &model.FavoriteRecordModel{
		ID:     favorite.ID,
		UserID: favorite.UserID,
		DealID: favorite.DealID,
	}

	if err := repo.db.WithContext(ctx).Create(favoriteM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateFavorite
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrDealNotFound.WrapMessage("favorite references an unknown deal")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create favorite")
	}

	// Update the entity with generated values
	favorite.ID = favoriteM.ID
	favorite.CreatedAt = favoriteM.CreatedAt

	return nil
}

// DeleteFavorite removes a favorite record by its ID.
func (repo *favoriteRepository) DeleteFavorite(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.FavoriteRecordModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete favorite")
	}

	if result.RowsAffected == 0 {
		return repository.ErrFavoriteNotFound
	}

	return nil
}

// FindFavoriteByUserAndDeal retrieves the record for a (user, deal) pair.
func (repo *favoriteRepository) FindFavoriteByUserAndDeal(ctx context.Context, userID, dealID uuid.UUID) (*entity.FavoriteRecord, error) {
	var favoriteM model.FavoriteRecordModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND deal_id = ?", userID, dealID).
		First(&favoriteM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFavoriteNotFound
		}

		return nil, errors.Wrap(err, "failed to find favorite by user and deal")
	}

	return toFavoriteDomain(&favoriteM), nil
}

// FindFavoritesByUser retrieves the full favorite set for a user.
func (repo *favoriteRepository) FindFavoritesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.FavoriteRecord, error) {
	var favoriteModels []*model.FavoriteRecordModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favoriteModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find favorites by user")
	}

	favorites := make([]*entity.FavoriteRecord, 0, len(favoriteModels))
	for _, favoriteM := range favoriteModels {
		favorites = append(favorites, toFavoriteDomain(favoriteM))
	}

	return favorites, nil
}

func toFavoriteDomain(favoriteM *model.FavoriteRecordModel) *entity.FavoriteRecord {
	return &entity.FavoriteRecord{
		ID:        favoriteM.ID,
		UserID:    favoriteM.UserID,
		DealID:    favoriteM.DealID,
		CreatedAt: favoriteM.CreatedAt,
	}
}
