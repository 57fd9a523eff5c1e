package repositories

import (
	"context"
	"fmt"

	"github.com/kasumba/go-storefront/app/models"
	"gorm.io/gorm"
)

type MediaRepository interface {
	// FirstForOwner returns the owner's first-position media, or
	// gorm.ErrRecordNotFound when the owner has none.
	FirstForOwner(ctx context.Context, ownerType models.MediaOwnerType, ownerID string) (*models.Media, error)
	Create(ctx context.Context, media *models.Media) error
	// ResolveOwner verifies the owner row exists for the given type.
	ResolveOwner(ctx context.Context, ownerType models.MediaOwnerType, ownerID string) error
}

type gormMediaRepository struct {
	db *gorm.DB
	// one resolver per owner type instead of a switch repeated at call sites
	ownerResolvers map[models.MediaOwnerType]func(ctx context.Context, id string) error
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	r := &gormMediaRepository{db: db}
	r.ownerResolvers = map[models.MediaOwnerType]func(ctx context.Context, id string) error{
		models.MediaOwnerProduct:        r.ownerExists(&models.Product{}),
		models.MediaOwnerProductVariant: r.ownerExists(&models.ProductVariant{}),
		models.MediaOwnerStore:          r.ownerExists(&models.Store{}),
		models.MediaOwnerUser:           r.ownerExists(&models.Customer{}),
	}
	return r
}

func (r *gormMediaRepository) ownerExists(model interface{}) func(ctx context.Context, id string) error {
	return func(ctx context.Context, id string) error {
		var count int64
		err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}
}

func (r *gormMediaRepository) FirstForOwner(ctx context.Context, ownerType models.MediaOwnerType, ownerID string) (*models.Media, error) {
	var media models.Media
	err := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("position ASC").
		First(&media).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *gormMediaRepository) Create(ctx context.Context, media *models.Media) error {
	if err := r.ResolveOwner(ctx, media.OwnerType, media.OwnerID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *gormMediaRepository) ResolveOwner(ctx context.Context, ownerType models.MediaOwnerType, ownerID string) error {
	resolve, ok := r.ownerResolvers[ownerType]
	if !ok {
		return fmt.Errorf("unsupported media owner type %q", ownerType)
	}
	return resolve(ctx, ownerID)
}
