package orderrepo

import (
	"context"
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Models lists the DTOs the repository needs migrated.
func Models() []any {
	return []any{&OrderDTO{}, &LineItemDTO{}}
}

// Add inserts a new order together with its line items. An order without an
// identifier gets a fresh one. On success the aggregate carries its id and
// version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if id.IsZero() {
		id = kernel.NewUUID()
	}

	dto := fromDomain(aggregate)
	dto.ID = id.Bytes()
	dto.Version = 1
	dto.LineItems = lineItemsFromDomain(dto.ID, aggregate.LineItems())

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewValueIsInvalidErrorWithCause("id", err)
		}
		return err
	}

	if err := errors.Join(aggregate.AssignID(id), aggregate.SetVersion(dto.Version)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

// Update writes the order back if nobody else has written it since it was
// read. The stored version must equal aggregate.Version(); it is incremented
// by the write. A stale version yields *errs.ConcurrencyConflictError and an
// unknown id yields *errs.ObjectNotFoundError.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := aggregate.ID().Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}

	dto := fromDomain(aggregate)
	nextVersion := dto.Version + 1

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ? AND version = ?", dto.ID, dto.Version).
			Updates(map[string]any{
				"version":          nextVersion,
				"state":            dto.State,
				"delivery_time":    dto.Delivery.Time,
				"delivery_street1": dto.Delivery.Street1,
				"delivery_street2": dto.Delivery.Street2,
				"delivery_city":    dto.Delivery.City,
				"delivery_state":   dto.Delivery.State,
				"delivery_zip":     dto.Delivery.Zip,
				"payment_token":    dto.PaymentToken,
				"order_minimum":    dto.OrderMinimum,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.missingOrStale(tx, aggregate)
		}

		if err := tx.Where("order_id = ?", dto.ID).Delete(&LineItemDTO{}).Error; err != nil {
			return err
		}
		return tx.Create(&dto.LineItems).Error
	})
	if err != nil {
		return err
	}

	if err = aggregate.SetVersion(nextVersion); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) missingOrStale(tx *gorm.DB, aggregate *order.Order) error {
	var count int64
	if err := tx.Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewConcurrencyConflictError("order", aggregate.ID().String(), aggregate.Version())
}

// Get loads an order with its line items in placement order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
