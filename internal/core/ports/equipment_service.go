package ports

import (
	"context"

	"github.com/formotex/inventory-api/internal/core/domain"
)

// CreateEquipmentInput carries a new equipment record. OwnerID is only honoured
// for admins; the handler rejects a foreign OwnerID from anyone else.
type CreateEquipmentInput struct {
	Name         string
	SerialNumber string
	Type         domain.EquipmentType
	Status       domain.EquipmentStatus // optional, defaults to available
	Description  string
	OwnerID      string
}

// EquipmentService applies the ownership policy to every equipment operation.
type EquipmentService interface {
	List(ctx context.Context, actor domain.Identity) ([]*domain.EquipmentDetail, error)
	Get(ctx context.Context, actor domain.Identity, id string) (*domain.EquipmentDetail, error)
	Create(ctx context.Context, actor domain.Identity, in CreateEquipmentInput) (*domain.EquipmentDetail, error)
	Update(ctx context.Context, actor domain.Identity, id string, patch domain.EquipmentPatch) (*domain.EquipmentDetail, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}
