package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-property-backend/internal/domain"
	"github.com/tbourn/go-property-backend/internal/filter"
)

// GormStore persists the catalog through GORM. Use OpenSQLite and
// AutoMigrate to prepare the handle.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore wraps db.
func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

// DB exposes the underlying handle (health checks, shutdown).
func (s *GormStore) DB() *gorm.DB { return s.db }

// ListProperties implements Store. Equality and price bounds are pushed down
// to SQL; the full criteria (yield bounds, free text, ordering) are then
// applied in memory by filter.Apply so both stores agree exactly.
func (s *GormStore) ListProperties(ctx context.Context, c filter.Criteria) ([]domain.Property, error) {
	q := s.db.WithContext(ctx).Model(&domain.Property{})
	if c.Commune != "" {
		q = q.Where("commune = ?", c.Commune)
	}
	if c.PropertyType != "" {
		q = q.Where("property_type = ?", c.PropertyType)
	}
	if c.Status != "" {
		q = q.Where("status = ?", c.Status)
	}
	if c.MinPrice != nil {
		q = q.Where("price >= ?", *c.MinPrice)
	}
	if c.MaxPrice != nil {
		q = q.Where("price <= ?", *c.MaxPrice)
	}
	var rows []domain.Property
	if err := q.Order("price asc").Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return filter.Apply(rows, c), nil
}

// GetProperty implements Store.
func (s *GormStore) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	var p domain.Property
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// IncrementViewCount implements Store.
func (s *GormStore) IncrementViewCount(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&domain.Property{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// CreateProperty implements Store.
func (s *GormStore) CreateProperty(ctx context.Context, p *domain.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return s.create(ctx, p)
}

// UpdateProperty implements Store.
func (s *GormStore) UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	var out domain.Property
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&out).Error; err != nil {
			return err
		}
		patch.Apply(&out)
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCommunes implements Store. Communes are ordered by name.
func (s *GormStore) ListCommunes(ctx context.Context) ([]domain.Commune, error) {
	out := make([]domain.Commune, 0)
	err := s.db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// CreateCommune implements Store.
func (s *GormStore) CreateCommune(ctx context.Context, c *domain.Commune) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return s.create(ctx, c)
}

// CreateUser implements Store.
func (s *GormStore) CreateUser(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return s.create(ctx, u)
}

// GetUser implements Store.
func (s *GormStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.userWhere(ctx, "id = ?", id)
}

// GetUserByUsername implements Store.
func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userWhere(ctx, "username = ?", username)
}

// GetUserByEmail implements Store.
func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userWhere(ctx, "email = ?", email)
}

func (s *GormStore) userWhere(ctx context.Context, cond string, arg any) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where(cond, arg).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateInvestment implements Store.
func (s *GormStore) CreateInvestment(ctx context.Context, inv *domain.Investment) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.PurchaseDate.IsZero() {
		inv.PurchaseDate = time.Now().UTC()
	}
	return s.create(ctx, inv)
}

// GetInvestment implements Store.
func (s *GormStore) GetInvestment(ctx context.Context, id string) (*domain.Investment, error) {
	var inv domain.Investment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListInvestmentsByUser implements Store.
func (s *GormStore) ListInvestmentsByUser(ctx context.Context, userID string) ([]domain.Investment, error) {
	out := make([]domain.Investment, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchase_date asc").
		Order("id asc").
		Find(&out).Error
	return out, err
}

// PortfolioStats implements Store.
func (s *GormStore) PortfolioStats(ctx context.Context, userID string) (domain.PortfolioStats, error) {
	var row struct {
		Total int64
		Count int
	}
	err := s.db.WithContext(ctx).
		Model(&domain.Investment{}).
		Select("COALESCE(SUM(investment_amount), 0) AS total, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return domain.PortfolioStats{}, err
	}
	return portfolioStats(row.Total, row.Count), nil
}

func (s *GormStore) create(ctx context.Context, v any) error {
	err := s.db.WithContext(ctx).Create(v).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}
