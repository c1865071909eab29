package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbourn/go-property-backend/internal/domain"
	"github.com/tbourn/go-property-backend/internal/filter"
)

// MemoryStore keeps the catalog in process memory. It is safe for concurrent
// use; every operation runs to completion under the store lock.
type MemoryStore struct {
	mu sync.RWMutex

	properties  map[string]domain.Property
	communes    map[string]domain.Commune
	communeName map[string]string
	users       map[string]domain.User
	byUsername  map[string]string
	byEmail     map[string]string
	investments map[string]domain.Investment
	idem        map[idemKey]domain.Idempotency

	now func() time.Time
}

type idemKey struct{ user, scope, key string }

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		properties:  make(map[string]domain.Property),
		communes:    make(map[string]domain.Commune),
		communeName: make(map[string]string),
		users:       make(map[string]domain.User),
		byUsername:  make(map[string]string),
		byEmail:     make(map[string]string),
		investments: make(map[string]domain.Investment),
		idem:        make(map[idemKey]domain.Idempotency),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func cloneProperty(p domain.Property) domain.Property {
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		p.OriginalPrice = &v
	}
	if p.ImageURL != nil {
		v := *p.ImageURL
		p.ImageURL = &v
	}
	return p
}

// ListProperties implements Store.
func (s *MemoryStore) ListProperties(_ context.Context, c filter.Criteria) ([]domain.Property, error) {
	s.mu.RLock()
	all := make([]domain.Property, 0, len(s.properties))
	for _, p := range s.properties {
		all = append(all, cloneProperty(p))
	}
	s.mu.RUnlock()
	return filter.Apply(all, c), nil
}

// GetProperty implements Store.
func (s *MemoryStore) GetProperty(_ context.Context, id string) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneProperty(p)
	return &out, nil
}

// IncrementViewCount implements Store.
func (s *MemoryStore) IncrementViewCount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.properties[id]; ok {
		p.ViewCount++
		s.properties[id] = p
	}
	return nil
}

// CreateProperty implements Store.
func (s *MemoryStore) CreateProperty(_ context.Context, p *domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := s.properties[p.ID]; exists {
		return ErrDuplicate
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	s.properties[p.ID] = cloneProperty(*p)
	return nil
}

// UpdateProperty implements Store.
func (s *MemoryStore) UpdateProperty(_ context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&p)
	s.properties[id] = p
	out := cloneProperty(p)
	return &out, nil
}

// ListCommunes implements Store. Communes are ordered by name.
func (s *MemoryStore) ListCommunes(_ context.Context) ([]domain.Commune, error) {
	s.mu.RLock()
	out := make([]domain.Commune, 0, len(s.communes))
	for _, c := range s.communes {
		out = append(out, c)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CreateCommune implements Store.
func (s *MemoryStore) CreateCommune(_ context.Context, c *domain.Commune) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, exists := s.communes[c.ID]; exists {
		return ErrDuplicate
	}
	if _, taken := s.communeName[c.Name]; taken {
		return ErrDuplicate
	}
	s.communes[c.ID] = *c
	s.communeName[c.Name] = c.ID
	return nil
}

// CreateUser implements Store.
func (s *MemoryStore) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if _, exists := s.users[u.ID]; exists {
		return ErrDuplicate
	}
	if _, taken := s.byUsername[u.Username]; taken {
		return ErrDuplicate
	}
	if _, taken := s.byEmail[u.Email]; taken {
		return ErrDuplicate
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.users[u.ID] = *u
	s.byUsername[u.Username] = u.ID
	s.byEmail[u.Email] = u.ID
	return nil
}

// GetUser implements Store.
func (s *MemoryStore) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userLocked(id)
}

// GetUserByUsername implements Store.
func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userLocked(s.byUsername[username])
}

// GetUserByEmail implements Store.
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userLocked(s.byEmail[email])
}

func (s *MemoryStore) userLocked(id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// CreateInvestment implements Store.
func (s *MemoryStore) CreateInvestment(_ context.Context, inv *domain.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if _, exists := s.investments[inv.ID]; exists {
		return ErrDuplicate
	}
	if inv.PurchaseDate.IsZero() {
		inv.PurchaseDate = s.now()
	}
	s.investments[inv.ID] = *inv
	return nil
}

// GetInvestment implements Store.
func (s *MemoryStore) GetInvestment(_ context.Context, id string) (*domain.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.investments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &inv, nil
}

// ListInvestmentsByUser implements Store.
func (s *MemoryStore) ListInvestmentsByUser(_ context.Context, userID string) ([]domain.Investment, error) {
	s.mu.RLock()
	out := make([]domain.Investment, 0)
	for _, inv := range s.investments {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.Before(out[j].PurchaseDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// PortfolioStats implements Store.
func (s *MemoryStore) PortfolioStats(_ context.Context, userID string) (domain.PortfolioStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var (
		total int64
		count int
	)
	for _, inv := range s.investments {
		if inv.UserID == userID {
			total += inv.InvestmentAmount
			count++
		}
	}
	return portfolioStats(total, count), nil
}

// GetIdempotency implements Store.
func (s *MemoryStore) GetIdempotency(_ context.Context, userID, scope, key string, now time.Time) (*domain.Idempotency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.idem[idemKey{userID, scope, key}]
	if !ok || rec.Expired(now) {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// CreateIdempotency implements Store. An expired record for the same tuple
// is replaced.
func (s *MemoryStore) CreateIdempotency(_ context.Context, userID, scope, key, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	k := idemKey{userID, scope, key}
	if old, ok := s.idem[k]; ok && !old.Expired(now) {
		return nil, ErrDuplicate
	}
	rec := domain.Idempotency{
		ID:         uuid.NewString(),
		UserID:     userID,
		Scope:      scope,
		Key:        key,
		ResourceID: resourceID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	s.idem[k] = rec
	return &rec, nil
}

// DeleteIdempotency implements Store.
func (s *MemoryStore) DeleteIdempotency(_ context.Context, userID, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.idem, idemKey{userID, scope, key})
	return nil
}
