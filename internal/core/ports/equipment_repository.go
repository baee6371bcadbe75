package ports

import (
	"context"

	"github.com/formotex/inventory-api/internal/core/domain"
)

// EquipmentFilter narrows List. An empty OwnerID means no owner filter.
type EquipmentFilter struct {
	OwnerID string
}

// EquipmentRepository defines persistence for equipment records. A missing
// document is reported as domain.ErrEquipmentNotFound and a serial number
// unique-index violation as domain.ErrSerialTaken.
type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	FindByID(ctx context.Context, id string) (*domain.Equipment, error)
	// List returns matching records, newest first. Filtering happens in the query.
	List(ctx context.Context, filter EquipmentFilter) ([]*domain.Equipment, error)
	// SerialExists reports whether a record other than excludeID uses serial.
	SerialExists(ctx context.Context, serial, excludeID string) (bool, error)
	Update(ctx context.Context, e *domain.Equipment) error
	Delete(ctx context.Context, id string) error
}
