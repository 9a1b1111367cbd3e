// Package locationrepo stores the append-only log of courier location reports.
package locationrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportDTO is one row of location_reports. The composite index serves both
// the latest-report lookup and the DISTINCT ON scan of the matcher.
type ReportDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID  uuid.UUID `gorm:"type:uuid;not null;index:idx_location_courier_recorded,priority:1"`
	Lat        float64   `gorm:"not null"`
	Lng        float64   `gorm:"not null"`
	Accuracy   float64   `gorm:"not null;default:0"`
	RecordedAt time.Time `gorm:"not null;index:idx_location_courier_recorded,priority:2,sort:desc"`
	ReceivedAt time.Time `gorm:"not null"`
}

func (ReportDTO) TableName() string {
	return "location_reports"
}

// ToDomain rebuilds a report; query handlers reuse it for raw scans.
func (dto ReportDTO) ToDomain() (position.Report, error) {
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return position.Report{}, err
	}
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return position.Report{}, err
	}
	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return position.Report{}, err
	}

	r, err := position.NewReport(courierID, point, dto.Accuracy, dto.RecordedAt, dto.ReceivedAt)
	if err != nil {
		return position.Report{}, err
	}
	r.ID = id
	return r, nil
}

type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

func (r *GormLocationRepository) Append(ctx context.Context, report position.Report) error {
	dto := ReportDTO{
		ID:         report.ID.Bytes(),
		CourierID:  report.CourierID.Bytes(),
		Lat:        report.Point.Lat(),
		Lng:        report.Point.Lng(),
		Accuracy:   report.Accuracy,
		RecordedAt: report.RecordedAt,
		ReceivedAt: report.ReceivedAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormLocationRepository) Latest(ctx context.Context, courierID kernel.UUID) (position.Report, error) {
	if err := courierID.Validate(); err != nil {
		return position.Report{}, err
	}

	var dto ReportDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID.Bytes()).
		Order("recorded_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return position.Report{}, errs.NewObjectNotFoundError("location report", courierID.String())
		}
		return position.Report{}, err
	}
	return dto.ToDomain()
}
