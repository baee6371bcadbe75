package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
)

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
	err   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("u%d", r.seq)
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := cloneUser(u)
	c.PasswordHash = ""
	return c, nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			c := cloneUser(u)
			c.PasswordHash = ""
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindCredentials(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) EmailExists(_ context.Context, email, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	for id, u := range r.users {
		if u.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		c := cloneUser(u)
		c.PasswordHash = ""
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	hash := stored.PasswordHash
	if u.PasswordHash != "" {
		hash = u.PasswordHash
	}
	c := cloneUser(u)
	c.PasswordHash = hash
	r.users[u.ID] = c
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// seed stores u as-is, hash included.
func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = cloneUser(u)
	return u
}

type stubEquipmentRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*domain.Equipment
	calls int
}

func newStubEquipmentRepo() *stubEquipmentRepo {
	return &stubEquipmentRepo{items: make(map[string]*domain.Equipment)}
}

func (r *stubEquipmentRepo) Create(_ context.Context, e *domain.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.seq++
	e.ID = fmt.Sprintf("e%d", r.seq)
	c := *e
	r.items[e.ID] = &c
	return nil
}

func (r *stubEquipmentRepo) FindByID(_ context.Context, id string) (*domain.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	e, ok := r.items[id]
	if !ok {
		return nil, domain.ErrEquipmentNotFound
	}
	c := *e
	return &c, nil
}

func (r *stubEquipmentRepo) List(_ context.Context, filter ports.EquipmentFilter) ([]*domain.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var out []*domain.Equipment
	for _, e := range r.items {
		if filter.OwnerID != "" && e.OwnerID != filter.OwnerID {
			continue
		}
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubEquipmentRepo) SerialExists(_ context.Context, serial, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for id, e := range r.items {
		if e.SerialNumber == serial && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubEquipmentRepo) Update(_ context.Context, e *domain.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.items[e.ID]; !ok {
		return domain.ErrEquipmentNotFound
	}
	c := *e
	r.items[e.ID] = &c
	return nil
}

func (r *stubEquipmentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.items[id]; !ok {
		return domain.ErrEquipmentNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubEquipmentRepo) seed(e *domain.Equipment) *domain.Equipment {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *e
	r.items[e.ID] = &c
	return e
}

type stubRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (r *stubRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.revoked[id] = ttl
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[id]
	return ok, nil
}
