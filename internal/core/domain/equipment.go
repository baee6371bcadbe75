package domain

import (
	"strings"
	"time"
)

// EquipmentType is the kind of hardware a record describes.
type EquipmentType string

const (
	TypeDesktop    EquipmentType = "desktop"
	TypeLaptop     EquipmentType = "laptop"
	TypePrinter    EquipmentType = "printer"
	TypePeripheral EquipmentType = "peripheral"
	TypeNetwork    EquipmentType = "network"
	TypeOther      EquipmentType = "other"
)

// EquipmentStatus has no transition graph: any authorized update may set any value.
type EquipmentStatus string

const (
	StatusAvailable   EquipmentStatus = "available"
	StatusAssigned    EquipmentStatus = "assigned"
	StatusMaintenance EquipmentStatus = "maintenance"
	StatusRetired     EquipmentStatus = "retired"
)

// Equipment is an inventory record. OwnerID is empty when unassigned and
// SerialNumber is always stored normalized.
type Equipment struct {
	ID           string
	Name         string
	SerialNumber string
	Type         EquipmentType
	Status       EquipmentStatus
	OwnerID      string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeSerial trims and uppercases a serial number so uniqueness is
// case-insensitive.
func NormalizeSerial(serial string) string {
	return strings.ToUpper(strings.TrimSpace(serial))
}

// EquipmentPatch carries a partial update. Description and OwnerID accept an
// explicit null, which clears the field.
type EquipmentPatch struct {
	Name         Optional[string]
	SerialNumber Optional[string]
	Type         Optional[EquipmentType]
	Status       Optional[EquipmentStatus]
	Description  Optional[string]
	OwnerID      Optional[string]
}

// IsEmpty reports whether no field was supplied.
func (p EquipmentPatch) IsEmpty() bool {
	return !p.Name.Set && !p.SerialNumber.Set && !p.Type.Set &&
		!p.Status.Set && !p.Description.Set && !p.OwnerID.Set
}

// Apply merges every supplied field into e.
func (p EquipmentPatch) Apply(e *Equipment) {
	if v, ok := p.Name.Get(); ok {
		e.Name = strings.TrimSpace(v)
	}
	if v, ok := p.SerialNumber.Get(); ok {
		e.SerialNumber = NormalizeSerial(v)
	}
	if v, ok := p.Type.Get(); ok {
		e.Type = v
	}
	if v, ok := p.Status.Get(); ok {
		e.Status = v
	}
	if p.Description.Set {
		e.Description = strings.TrimSpace(p.Description.Value)
		if p.Description.Null {
			e.Description = ""
		}
	}
	if p.OwnerID.Set {
		e.OwnerID = p.OwnerID.Value
		if p.OwnerID.Null {
			e.OwnerID = ""
		}
	}
}

// EquipmentDetail is an equipment record with its owner resolved. Owner is nil
// when the record is unassigned or the owner no longer exists.
type EquipmentDetail struct {
	Equipment
	Owner *Identity
}
