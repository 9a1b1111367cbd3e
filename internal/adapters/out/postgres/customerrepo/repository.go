// Package customerrepo persists customers and performs their free-credit
// arithmetic with conditional updates.
package customerrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Phone            string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name             string     `gorm:"type:varchar(255);not null;default:''"`
	FreeCredits      int        `gorm:"not null;default:0;check:free_credits >= 0"`
	LastMonthlyGrant *time.Time
	CreatedAt        time.Time  `gorm:"not null"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := CustomerDTO{
		ID:               c.ID().Bytes(),
		Phone:            c.Phone().String(),
		Name:             c.Name(),
		FreeCredits:      c.FreeCredits(),
		LastMonthlyGrant: c.LastMonthlyGrant(),
		CreatedAt:        c.CreatedAt(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "phone"}}, DoNothing: true}).
		Create(&dto).Error
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "customer", id.String(), "id = ?", id.Bytes())
}

func (r *GormCustomerRepository) GetByPhone(ctx context.Context, phone kernel.Phone) (*customer.Customer, error) {
	return r.first(ctx, "customer", phone.String(), "phone = ?", phone.String())
}

func (r *GormCustomerRepository) first(ctx context.Context, name, key string, query string, arg any) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(name, key)
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return customer.RestoreCustomer(id, kernel.Phone(dto.Phone), dto.Name, dto.FreeCredits, dto.LastMonthlyGrant, dto.CreatedAt)
}

// GrantMonthlyCredit is a compare-and-set on last_monthly_grant: of several
// concurrent callers in a new month exactly one sees a row affected.
func (r *GormCustomerRepository) GrantMonthlyCredit(ctx context.Context, id kernel.UUID, monthStart time.Time) (bool, error) {
	monthStart = monthStart.UTC()
	result := r.db.WithContext(ctx).
		Model(&CustomerDTO{}).
		Where("id = ? AND (last_monthly_grant IS NULL OR last_monthly_grant < ?)", id.Bytes(), monthStart).
		Updates(map[string]any{
			"free_credits":       gorm.Expr("free_credits + 1"),
			"last_monthly_grant": monthStart,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormCustomerRepository) ConsumeFreeCredit(ctx context.Context, id kernel.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&CustomerDTO{}).
		Where("id = ? AND free_credits > 0", id.Bytes()).
		Update("free_credits", gorm.Expr("free_credits - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
