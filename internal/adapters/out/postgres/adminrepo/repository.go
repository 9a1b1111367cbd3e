// Package adminrepo persists dispatch-console operators.
package adminrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/admin"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(320);not null;uniqueIndex"`
	Name         string    `gorm:"type:varchar(255);not null;default:''"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
}

func (AdminDTO) TableName() string {
	return "admins"
}

type GormAdminRepository struct {
	db *gorm.DB
}

func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// Upsert keys on e-mail; an existing admin keeps its id.
func (r *GormAdminRepository) Upsert(ctx context.Context, a *admin.Admin) error {
	dto := AdminDTO{
		ID:           a.ID.Bytes(),
		Email:        a.Email,
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "password_hash"}),
		}).
		Create(&dto).Error
}

func (r *GormAdminRepository) GetByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	normalized, err := admin.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	var dto AdminDTO
	if err = r.db.WithContext(ctx).First(&dto, "email = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("admin", normalized)
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return admin.NewAdmin(id, dto.Email, dto.Name, dto.PasswordHash)
}
