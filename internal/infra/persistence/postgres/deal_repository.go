package postgres

import (
	"context"
	"time"

	"dealscout/internal/domain/entity"
	"dealscout/internal/domain/repository"
	"dealscout/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// dealRepository implements the repository.DealRepository interface.
type dealRepository struct {
	db *gorm.DB
}

// NewDealRepository is the constructor for dealRepository.
func NewDealRepository(db *gorm.DB) repository.DealRepository {
	return &dealRepository{
		db: db,
	}
}

// FindActiveDeals retrieves active in-window deals joined with their region.
// Only active regions are joined; a deal whose region is inactive comes back
// with no region and is treated as "region unknown" downstream.
func (repo *dealRepository) FindActiveDeals(ctx context.Context, now time.Time) ([]*entity.Deal, error) {
	var dealModels []*model.DealModel

	if err := repo.db.WithContext(ctx).
		Preload("Region", "is_active = ?", true).
		Where("is_active = ?", true).
		Where("starts_at <= ? AND expires_at >= ?", now, now).
		Order("created_at DESC").
		Find(&dealModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find active deals")
	}

	deals := make([]*entity.Deal, 0, len(dealModels))
	for _, dealM := range dealModels {
		deals = append(deals, toDealDomain(dealM))
	}

	return deals, nil
}

// FindDealByID retrieves a single deal by its unique ID.
func (repo *dealRepository) FindDealByID(ctx context.Context, id uuid.UUID) (*entity.Deal, error) {
	var dealM model.DealModel

	if err := repo.db.WithContext(ctx).
		Preload("Region", "is_active = ?", true).
		Where("id = ?", id).
		First(&dealM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDealNotFound
		}

		return nil, errors.Wrap(err, "failed to find deal by ID")
	}

	return toDealDomain(&dealM), nil
}

// toDealDomain maps a persistence model to the domain entity.
func toDealDomain(dealM *model.DealModel) *entity.Deal {
	deal := &entity.Deal{
		ID:          dealM.ID,
		Title:       dealM.Title,
		Description: dealM.Description,
		VenueName:   dealM.VenueName,
		Category:    dealM.Category,
		StartsAt:    dealM.StartsAt,
		ExpiresAt:   dealM.ExpiresAt,
		IsActive:    dealM.IsActive,
		RegionID:    dealM.RegionID,
		ImageURL:    dealM.ImageURL,
		WebsiteURL:  dealM.WebsiteURL,
		CreatedAt:   dealM.CreatedAt,
		UpdatedAt:   dealM.UpdatedAt,
	}

	if dealM.Region != nil {
		deal.Region = &entity.Region{
			ID:        dealM.Region.ID,
			Name:      dealM.Region.Name,
			Latitude:  dealM.Region.Latitude,
			Longitude: dealM.Region.Longitude,
			IsActive:  dealM.Region.IsActive,
		}
	}

	return deal
}
