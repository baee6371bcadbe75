package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
	"github.com/formotex/inventory-api/internal/pkg/metrics"
)

// EquipmentService enforces the ownership policy and the serial number
// uniqueness rule over equipment records.
type EquipmentService struct {
	repo   ports.EquipmentRepository
	users  ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewEquipmentService(repo ports.EquipmentRepository, users ports.UserRepository, logger zerolog.Logger) *EquipmentService {
	return &EquipmentService{repo: repo, users: users, logger: logger, now: time.Now}
}

// List returns everything for admins and only the actor's own records for
// everyone else. The scoping is part of the repository query.
func (s *EquipmentService) List(ctx context.Context, actor domain.Identity) ([]*domain.EquipmentDetail, error) {
	filter := ports.EquipmentFilter{}
	if !actor.IsAdmin() {
		filter.OwnerID = actor.ID
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}

	return s.withOwners(ctx, items)
}

func (s *EquipmentService) Get(ctx context.Context, actor domain.Identity, id string) (*domain.EquipmentDetail, error) {
	e, err := s.authorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, e)
}

// Create stores a new record. Admins may assign any existing owner and default
// to themselves; everyone else always owns what they create.
func (s *EquipmentService) Create(ctx context.Context, actor domain.Identity, in ports.CreateEquipmentInput) (*domain.EquipmentDetail, error) {
	serial := domain.NormalizeSerial(in.SerialNumber)
	if err := s.ensureSerialAvailable(ctx, serial, ""); err != nil {
		return nil, err
	}

	ownerID := actor.ID
	if actor.IsAdmin() && in.OwnerID != "" {
		if err := s.ensureOwnerExists(ctx, in.OwnerID); err != nil {
			return nil, err
		}
		ownerID = in.OwnerID
	}

	status := in.Status
	if status == "" {
		status = domain.StatusAvailable
	}

	now := s.now().UTC()
	e := &domain.Equipment{
		Name:         strings.TrimSpace(in.Name),
		SerialNumber: serial,
		Type:         in.Type,
		Status:       status,
		OwnerID:      ownerID,
		Description:  strings.TrimSpace(in.Description),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	metrics.EquipmentOperationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().
		Str("equipment_id", e.ID).
		Str("serial_number", e.SerialNumber).
		Str("actor_id", actor.ID).
		Msg("equipment created")

	return s.withOwner(ctx, e)
}

// Update applies patch to a record the actor may access. Owner changes are
// honoured for admins only.
func (s *EquipmentService) Update(ctx context.Context, actor domain.Identity, id string, patch domain.EquipmentPatch) (*domain.EquipmentDetail, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}

	e, err := s.authorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if serial, ok := patch.SerialNumber.Get(); ok {
		serial = domain.NormalizeSerial(serial)
		if serial != e.SerialNumber {
			if err := s.ensureSerialAvailable(ctx, serial, e.ID); err != nil {
				return nil, err
			}
		}
	}

	if !actor.IsAdmin() {
		patch.OwnerID = domain.Optional[string]{}
	}
	if owner, ok := patch.OwnerID.Get(); ok && owner != e.OwnerID {
		if err := s.ensureOwnerExists(ctx, owner); err != nil {
			return nil, err
		}
	}

	patch.Apply(e)
	e.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	metrics.EquipmentOperationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("equipment_id", e.ID).Str("actor_id", actor.ID).Msg("equipment updated")

	return s.withOwner(ctx, e)
}

func (s *EquipmentService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	e, err := s.authorized(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, e.ID); err != nil {
		return err
	}

	metrics.EquipmentOperationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("equipment_id", e.ID).Str("actor_id", actor.ID).Msg("equipment deleted")
	return nil
}

// authorized fetches a record and applies the ownership policy. The owner is
// only known after the fetch, so this cannot be a route-level gate.
func (s *EquipmentService) authorized(ctx context.Context, actor domain.Identity, id string) (*domain.Equipment, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(e.OwnerID) {
		metrics.AuthorizationDenialsTotal.WithLabelValues("ownership").Inc()
		s.logger.Warn().
			Str("equipment_id", e.ID).
			Str("actor_id", actor.ID).
			Msg("ownership check denied")
		return nil, domain.ErrNotOwner
	}
	return e, nil
}

func (s *EquipmentService) ensureSerialAvailable(ctx context.Context, serial, excludeID string) error {
	exists, err := s.repo.SerialExists(ctx, serial, excludeID)
	if err != nil {
		return fmt.Errorf("check serial number: %w", err)
	}
	if exists {
		return domain.ErrSerialTaken
	}
	return nil
}

func (s *EquipmentService) ensureOwnerExists(ctx context.Context, ownerID string) error {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return domain.ErrOwnerNotFound
		}
		return fmt.Errorf("resolve owner: %w", err)
	}
	return nil
}

func (s *EquipmentService) withOwner(ctx context.Context, e *domain.Equipment) (*domain.EquipmentDetail, error) {
	details, err := s.withOwners(ctx, []*domain.Equipment{e})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// withOwners resolves every distinct owner with a single lookup. Owners that
// no longer exist are left nil.
func (s *EquipmentService) withOwners(ctx context.Context, items []*domain.Equipment) ([]*domain.EquipmentDetail, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(items))
	for _, e := range items {
		if e.OwnerID == "" {
			continue
		}
		if _, ok := seen[e.OwnerID]; ok {
			continue
		}
		seen[e.OwnerID] = struct{}{}
		ids = append(ids, e.OwnerID)
	}

	owners := make(map[string]domain.Identity, len(ids))
	if len(ids) > 0 {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve owners: %w", err)
		}
		for _, u := range users {
			owners[u.ID] = u.Identity()
		}
	}

	out := make([]*domain.EquipmentDetail, len(items))
	for i, e := range items {
		d := &domain.EquipmentDetail{Equipment: *e}
		if o, ok := owners[e.OwnerID]; ok {
			d.Owner = &o
		}
		out[i] = d
	}
	return out, nil
}
