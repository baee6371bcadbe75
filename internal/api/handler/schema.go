package handler

import (
	"strings"
	"time"

	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
)

// errorResponse is the error envelope rendered by the central error handler.
type errorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Stack   string   `json:"stack,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

// loginRequest keeps pointers so a missing field can be told apart from an
// empty one.
type loginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

// --- Users ---

type createUserRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,bcryptmax"`
	Role     string `json:"role"     validate:"required,oneof=admin user"`
}

func (r *createUserRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

func (r createUserRequest) toInput() ports.CreateUserInput {
	return ports.CreateUserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

type updateUserRequest struct {
	Name     domain.Optional[string]      `json:"name"`
	Email    domain.Optional[string]      `json:"email"`
	Password domain.Optional[string]      `json:"password"`
	Role     domain.Optional[domain.Role] `json:"role"`
}

// userPatchValues holds the supplied values of an updateUserRequest so the
// validator can check them; nil means not supplied.
type userPatchValues struct {
	Name     *string `json:"name"     validate:"omitnil,min=2,max=120"`
	Email    *string `json:"email"    validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=8,bcryptmax"`
	Role     *string `json:"role"     validate:"omitnil,oneof=admin user"`
}

func (r updateUserRequest) nulls() []string {
	return notNull(
		nullable{"name", r.Name.Null},
		nullable{"email", r.Email.Null},
		nullable{"password", r.Password.Null},
		nullable{"role", r.Role.Null},
	)
}

func (r updateUserRequest) values() userPatchValues {
	var v userPatchValues
	if s, ok := r.Name.Get(); ok {
		s = strings.TrimSpace(s)
		v.Name = &s
	}
	if s, ok := r.Email.Get(); ok {
		s = strings.TrimSpace(s)
		v.Email = &s
	}
	if s, ok := r.Password.Get(); ok {
		v.Password = &s
	}
	if role, ok := r.Role.Get(); ok {
		s := string(role)
		v.Role = &s
	}
	return v
}

func (r updateUserRequest) toPatch() domain.UserPatch {
	return domain.UserPatch{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
	}
}

type userResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

// --- Equipment ---

type createEquipmentRequest struct {
	Name         string `json:"name"         validate:"required,min=2,max=120"`
	SerialNumber string `json:"serialNumber" validate:"required,max=100"`
	Type         string `json:"type"         validate:"required,oneof=desktop laptop printer peripheral network other"`
	Status       string `json:"status"       validate:"omitempty,oneof=available assigned maintenance retired"`
	Description  string `json:"description"  validate:"max=500"`
	OwnerID      string `json:"ownerId"`
}

func (r *createEquipmentRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.SerialNumber = strings.TrimSpace(r.SerialNumber)
	r.Description = strings.TrimSpace(r.Description)
	r.OwnerID = strings.TrimSpace(r.OwnerID)
}

func (r createEquipmentRequest) toInput() ports.CreateEquipmentInput {
	return ports.CreateEquipmentInput{
		Name:         r.Name,
		SerialNumber: r.SerialNumber,
		Type:         domain.EquipmentType(r.Type),
		Status:       domain.EquipmentStatus(r.Status),
		Description:  r.Description,
		OwnerID:      r.OwnerID,
	}
}

type updateEquipmentRequest struct {
	Name         domain.Optional[string]                 `json:"name"`
	SerialNumber domain.Optional[string]                 `json:"serialNumber"`
	Type         domain.Optional[domain.EquipmentType]   `json:"type"`
	Status       domain.Optional[domain.EquipmentStatus] `json:"status"`
	Description  domain.Optional[string]                 `json:"description"`
	OwnerID      domain.Optional[string]                 `json:"ownerId"`
}

type equipmentPatchValues struct {
	Name         *string `json:"name"         validate:"omitnil,min=2,max=120"`
	SerialNumber *string `json:"serialNumber" validate:"omitnil,min=1,max=100"`
	Type         *string `json:"type"         validate:"omitnil,oneof=desktop laptop printer peripheral network other"`
	Status       *string `json:"status"       validate:"omitnil,oneof=available assigned maintenance retired"`
	Description  *string `json:"description"  validate:"omitnil,max=500"`
	OwnerID      *string `json:"ownerId"      validate:"omitnil,min=1"`
}

// nulls reports the fields sent as null that cannot be cleared. Description
// and ownerId accept null.
func (r updateEquipmentRequest) nulls() []string {
	return notNull(
		nullable{"name", r.Name.Null},
		nullable{"serialNumber", r.SerialNumber.Null},
		nullable{"type", r.Type.Null},
		nullable{"status", r.Status.Null},
	)
}

func (r updateEquipmentRequest) values() equipmentPatchValues {
	var v equipmentPatchValues
	trimmed := func(o domain.Optional[string]) *string {
		s, ok := o.Get()
		if !ok {
			return nil
		}
		s = strings.TrimSpace(s)
		return &s
	}
	v.Name = trimmed(r.Name)
	v.SerialNumber = trimmed(r.SerialNumber)
	v.Description = trimmed(r.Description)
	v.OwnerID = trimmed(r.OwnerID)
	if t, ok := r.Type.Get(); ok {
		s := string(t)
		v.Type = &s
	}
	if st, ok := r.Status.Get(); ok {
		s := string(st)
		v.Status = &s
	}
	return v
}

func (r updateEquipmentRequest) toPatch() domain.EquipmentPatch {
	p := domain.EquipmentPatch{
		Name:         r.Name,
		SerialNumber: r.SerialNumber,
		Type:         r.Type,
		Status:       r.Status,
		Description:  r.Description,
		OwnerID:      r.OwnerID,
	}
	if id, ok := p.OwnerID.Get(); ok {
		p.OwnerID = domain.Some(strings.TrimSpace(id))
	}
	return p
}

type ownerResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type equipmentResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	SerialNumber string                 `json:"serialNumber"`
	Type         domain.EquipmentType   `json:"type"`
	Status       domain.EquipmentStatus `json:"status"`
	Description  string                 `json:"description,omitempty"`
	OwnerID      string                 `json:"ownerId,omitempty"`
	Owner        *ownerResponse         `json:"owner,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

func toEquipmentResponse(d *domain.EquipmentDetail) equipmentResponse {
	resp := equipmentResponse{
		ID:           d.ID,
		Name:         d.Name,
		SerialNumber: d.SerialNumber,
		Type:         d.Type,
		Status:       d.Status,
		Description:  d.Description,
		OwnerID:      d.OwnerID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.Owner != nil {
		resp.Owner = &ownerResponse{
			ID:    d.Owner.ID,
			Name:  d.Owner.Name,
			Email: d.Owner.Email,
			Role:  d.Owner.Role,
		}
	}
	return resp
}

func toEquipmentResponses(items []*domain.EquipmentDetail) []equipmentResponse {
	out := make([]equipmentResponse, len(items))
	for i, d := range items {
		out[i] = toEquipmentResponse(d)
	}
	return out
}
