package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kasumba/go-storefront/app/models"
	"github.com/kasumba/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GenerateCombinations expands option declarations into the full Cartesian
// product of value tuples. Tuple order matches option declaration order and
// the first option varies slowest: Size [S,M] x Color [Red,Blue] yields
// [S Red] [S Blue] [M Red] [M Blue]. An empty option list yields no
// combinations; callers fall back to the Default sentinel for optionless
// products.
func GenerateCombinations(options []models.ProductOption) []models.StringList {
	if len(options) == 0 {
		return nil
	}
	combinations := []models.StringList{{}}
	for _, option := range options {
		next := make([]models.StringList, 0, len(combinations)*len(option.Values))
		for _, prefix := range combinations {
			for _, value := range option.Values {
				combination := make(models.StringList, len(prefix), len(prefix)+1)
				copy(combination, prefix)
				next = append(next, append(combination, value))
			}
		}
		combinations = next
	}
	return combinations
}

// MatchVariant finds the variant whose combination equals the requested tuple.
// Equality is exact and order-sensitive. Returns nil when nothing matches.
func MatchVariant(combination models.StringList, variants []models.ProductVariant) *models.ProductVariant {
	for i := range variants {
		if variants[i].OptionCombination.Equal(combination) {
			return &variants[i]
		}
	}
	return nil
}

// VariantService keeps a product's variants in sync with its declared options.
type VariantService struct {
	uow   repositories.UnitOfWork
	repos *repositories.Repositories
}

func NewVariantService(uow repositories.UnitOfWork, repos *repositories.Repositories) *VariantService {
	return &VariantService{uow: uow, repos: repos}
}

type OptionInput struct {
	Name   string   `json:"name" validate:"required"`
	Values []string `json:"values" validate:"required,min=1,dive,required"`
}

// PreviewCombinations expands option inputs without touching the product.
func (s *VariantService) PreviewCombinations(options []OptionInput) []models.StringList {
	declared := make([]models.ProductOption, 0, len(options))
	for i, in := range options {
		declared = append(declared, models.ProductOption{
			Name:     in.Name,
			Values:   models.StringList(in.Values),
			Position: i,
		})
	}
	return GenerateCombinations(declared)
}

// SyncVariants replaces a product's options and reconciles its variants:
// combinations that disappeared are archived, archived variants whose
// combination reappears are revived in place (order lines keep their foreign
// key), and brand-new combinations get fresh variants priced at basePrice.
// A product left with no options keeps exactly one Default variant.
func (s *VariantService) SyncVariants(ctx context.Context, productID string, options []OptionInput, basePrice decimal.Decimal) (*models.Product, error) {
	seen := map[string]bool{}
	for _, in := range options {
		if seen[in.Name] {
			return nil, fmt.Errorf("%w: duplicate option name %q", ErrInvalidInput, in.Name)
		}
		seen[in.Name] = true
	}

	err := s.uow.Do(ctx, func(r *repositories.Repositories) error {
		product, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %s", ErrNotFound, productID)
			}
			return err
		}

		declared := make([]models.ProductOption, 0, len(options))
		for i, in := range options {
			declared = append(declared, models.ProductOption{
				Name:     in.Name,
				Values:   models.StringList(in.Values),
				Position: i,
			})
		}
		if err := r.Products.ReplaceOptions(ctx, product.ID, declared); err != nil {
			return err
		}

		wanted := GenerateCombinations(declared)
		if len(wanted) == 0 {
			wanted = []models.StringList{models.DefaultCombination}
		}

		existing, err := r.Variants.ListByProduct(ctx, product.ID, true)
		if err != nil {
			return err
		}

		now := time.Now()
		matched := make(map[string]bool, len(existing))
		for _, combination := range wanted {
			variant := MatchVariant(combination, existing)
			if variant == nil {
				created := &models.ProductVariant{
					ProductID:         product.ID,
					OptionCombination: combination,
					Price:             basePrice,
				}
				if err := r.Variants.Create(ctx, created); err != nil {
					return err
				}
				continue
			}
			matched[variant.ID] = true
			if variant.IsArchived {
				variant.IsArchived = false
				variant.ArchivedAt = nil
				if err := r.Variants.Save(ctx, variant); err != nil {
					return err
				}
			}
		}

		for i := range existing {
			variant := &existing[i]
			if matched[variant.ID] || variant.IsArchived {
				continue
			}
			variant.IsArchived = true
			variant.ArchivedAt = &now
			if err := r.Variants.Save(ctx, variant); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	product, err := s.repos.Products.GetWithOptionsAndVariants(ctx, productID)
	if err != nil {
		return nil, err
	}
	return product, nil
}
