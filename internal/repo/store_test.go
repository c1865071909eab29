package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-property-backend/internal/domain"
	"github.com/tbourn/go-property-backend/internal/filter"
)

func newTestDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid schema leakage across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if migrate {
		if err := AutoMigrate(db); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

// eachStore runs fn against a seeded MemoryStore and a seeded GormStore.
func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) {
		s := NewMemoryStore()
		if err := Seed(context.Background(), s, "demo-user"); err != nil {
			t.Fatalf("seed: %v", err)
		}
		fn(t, s)
	})
	t.Run("sqlite", func(t *testing.T) {
		s := NewGormStore(newTestDB(t, true))
		if err := Seed(context.Background(), s, "demo-user"); err != nil {
			t.Fatalf("seed: %v", err)
		}
		fn(t, s)
	})
}

func ids(props []domain.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func i64(v int64) *int64 { return &v }

func TestListProperties_All_SortedByPrice(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		got, err := s.ListProperties(context.Background(), filter.Criteria{})
		if err != nil {
			t.Fatalf("ListProperties: %v", err)
		}
		want := []string{
			"prop-portal-vina-1", "prop-mirador-san-pablo-1", "prop-ceppi-1",
			"prop-trinitarias-1", "prop-neo-florida-1", "prop-santa-maria-1",
		}
		if fmt.Sprint(ids(got)) != fmt.Sprint(want) {
			t.Fatalf("order = %v; want %v", ids(got), want)
		}
	})
}

func TestListProperties_Filters(t *testing.T) {
	minYield := decimal.RequireFromString("10")
	tests := []struct {
		name string
		c    filter.Criteria
		want []string
	}{
		{"commune", filter.Criteria{Commune: "Las Condes"}, []string{"prop-trinitarias-1"}},
		{"type", filter.Criteria{PropertyType: domain.TypeEstacionamiento}, []string{"prop-neo-florida-1", "prop-santa-maria-1"}},
		{"status", filter.Criteria{Status: domain.StatusEnVerde}, []string{"prop-mirador-san-pablo-1"}},
		{"price range", filter.Criteria{MinPrice: i64(99), MaxPrice: i64(193)}, []string{"prop-mirador-san-pablo-1", "prop-ceppi-1", "prop-trinitarias-1"}},
		{"min yield", filter.Criteria{MinYield: &minYield}, []string{"prop-ceppi-1", "prop-trinitarias-1", "prop-neo-florida-1"}},
		{"inverted range", filter.Criteria{MinPrice: i64(200), MaxPrice: i64(100)}, []string{}},
		{"no match", filter.Criteria{Commune: "Renca"}, []string{}},
		{"query", filter.Criteria{Query: "condes"}, []string{"prop-trinitarias-1"}},
	}
	eachStore(t, func(t *testing.T, s Store) {
		for _, tc := range tests {
			got, err := s.ListProperties(context.Background(), tc.c)
			if err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			if got == nil {
				t.Fatalf("%s: result must not be nil", tc.name)
			}
			if fmt.Sprint(ids(got)) != fmt.Sprint(tc.want) {
				t.Fatalf("%s: got %v; want %v", tc.name, ids(got), tc.want)
			}
		}
	})
}

func TestGetProperty_AndCopies(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		p, err := s.GetProperty(ctx, "prop-ceppi-1")
		if err != nil {
			t.Fatalf("GetProperty: %v", err)
		}
		if p.Name != "Edificio Ceppi" || !p.Size.Equal(decimal.RequireFromString("3.93")) || p.OriginalPrice == nil || *p.OriginalPrice != 138 {
			t.Fatalf("unexpected property: %+v", p)
		}

		p.Name = "mutated"
		*p.OriginalPrice = 1
		again, _ := s.GetProperty(ctx, "prop-ceppi-1")
		if again.Name != "Edificio Ceppi" || *again.OriginalPrice != 138 {
			t.Fatalf("store state leaked through returned record: %+v", again)
		}

		if _, err := s.GetProperty(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestIncrementViewCount(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		if err := s.IncrementViewCount(ctx, "prop-neo-florida-1"); err != nil {
			t.Fatalf("IncrementViewCount: %v", err)
		}
		p, _ := s.GetProperty(ctx, "prop-neo-florida-1")
		if p.ViewCount != 8 {
			t.Fatalf("viewCount = %d; want 8", p.ViewCount)
		}

		before, _ := s.ListProperties(ctx, filter.Criteria{})
		if err := s.IncrementViewCount(ctx, "does-not-exist"); err != nil {
			t.Fatalf("unknown id must be a no-op, got %v", err)
		}
		after, _ := s.ListProperties(ctx, filter.Criteria{})
		if len(before) != len(after) {
			t.Fatalf("store changed size: %d -> %d", len(before), len(after))
		}
		for i := range before {
			if before[i].ID != after[i].ID || before[i].ViewCount != after[i].ViewCount {
				t.Fatalf("store changed: %+v -> %+v", before[i], after[i])
			}
		}
	})
}

func TestCreateProperty_AssignsIDAndRejectsDuplicate(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		p := SeedProperties()[0]
		p.ID = ""
		p.CreatedAt = time.Time{}
		if err := s.CreateProperty(ctx, &p); err != nil {
			t.Fatalf("CreateProperty: %v", err)
		}
		if p.ID == "" || p.CreatedAt.IsZero() {
			t.Fatalf("ID/CreatedAt not assigned: %+v", p)
		}
		if _, err := s.GetProperty(ctx, p.ID); err != nil {
			t.Fatalf("created property not readable: %v", err)
		}

		dup := SeedProperties()[1]
		if err := s.CreateProperty(ctx, &dup); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})
}

func TestUpdateProperty(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		price := int64(105)
		status := domain.StatusReservado
		got, err := s.UpdateProperty(ctx, "prop-ceppi-1", domain.PropertyPatch{Price: &price, Status: &status})
		if err != nil {
			t.Fatalf("UpdateProperty: %v", err)
		}
		if got.ID != "prop-ceppi-1" || got.Price != 105 || got.Status != status || got.Name != "Edificio Ceppi" {
			t.Fatalf("unexpected update result: %+v", got)
		}
		reread, _ := s.GetProperty(ctx, "prop-ceppi-1")
		if reread.Price != 105 || reread.ViewCount != 9 {
			t.Fatalf("update not persisted: %+v", reread)
		}

		if _, err := s.UpdateProperty(ctx, "missing", domain.PropertyPatch{Price: &price}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCommunes(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		list, err := s.ListCommunes(ctx)
		if err != nil {
			t.Fatalf("ListCommunes: %v", err)
		}
		if len(list) != 11 {
			t.Fatalf("expected 11 communes, got %d", len(list))
		}
		names := make([]string, len(list))
		for i, c := range list {
			names[i] = c.Name
		}
		if !sort.StringsAreSorted(names) {
			t.Fatalf("communes not ordered by name: %v", names)
		}

		if err := s.CreateCommune(ctx, &domain.Commune{Name: "Las Condes"}); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate on name, got %v", err)
		}
		c := domain.Commune{Name: "Providencia", AverageYield: decimal.RequireFromString("7.5")}
		if err := s.CreateCommune(ctx, &c); err != nil || c.ID == "" {
			t.Fatalf("CreateCommune: id=%q err=%v", c.ID, err)
		}
	})
}

func TestUsers(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		u := domain.User{Username: "ana", Email: "ana@example.com", Password: "hash"}
		if err := s.CreateUser(ctx, &u); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		if u.ID == "" || u.CreatedAt.IsZero() {
			t.Fatalf("ID/CreatedAt not assigned: %+v", u)
		}

		for _, lookup := range []func() (*domain.User, error){
			func() (*domain.User, error) { return s.GetUser(ctx, u.ID) },
			func() (*domain.User, error) { return s.GetUserByUsername(ctx, "ana") },
			func() (*domain.User, error) { return s.GetUserByEmail(ctx, "ana@example.com") },
		} {
			got, err := lookup()
			if err != nil || got.ID != u.ID {
				t.Fatalf("lookup: got=%+v err=%v", got, err)
			}
		}

		if err := s.CreateUser(ctx, &domain.User{Username: "ana", Email: "other@example.com", Password: "x"}); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate on username, got %v", err)
		}
		if err := s.CreateUser(ctx, &domain.User{Username: "other", Email: "ana@example.com", Password: "x"}); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate on email, got %v", err)
		}
		if _, err := s.GetUserByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := s.GetUser(ctx, "demo-user"); err != nil {
			t.Fatalf("demo user not seeded: %v", err)
		}
	})
}

func TestInvestmentsAndPortfolio(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		empty, err := s.PortfolioStats(ctx, "demo-user")
		if err != nil {
			t.Fatalf("PortfolioStats: %v", err)
		}
		if empty != (domain.PortfolioStats{}) {
			t.Fatalf("expected zero stats, got %+v", empty)
		}
		list, err := s.ListInvestmentsByUser(ctx, "demo-user")
		if err != nil || list == nil || len(list) != 0 {
			t.Fatalf("expected empty non-nil list, got %v err=%v", list, err)
		}

		base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		for i, amt := range []int64{100, 150} {
			inv := domain.Investment{
				UserID: "demo-user", PropertyID: "prop-ceppi-1", InvestmentAmount: amt,
				PurchaseDate: base.Add(time.Duration(i) * time.Hour), Status: domain.InvestmentActive,
			}
			if err := s.CreateInvestment(ctx, &inv); err != nil || inv.ID == "" {
				t.Fatalf("CreateInvestment: id=%q err=%v", inv.ID, err)
			}
		}
		other := domain.Investment{UserID: "someone", PropertyID: "prop-ceppi-1", InvestmentAmount: 999, Status: domain.InvestmentActive}
		if err := s.CreateInvestment(ctx, &other); err != nil {
			t.Fatalf("CreateInvestment other: %v", err)
		}

		list, _ = s.ListInvestmentsByUser(ctx, "demo-user")
		if len(list) != 2 || list[0].InvestmentAmount != 100 || list[1].InvestmentAmount != 150 {
			t.Fatalf("unexpected investments: %+v", list)
		}
		got, err := s.GetInvestment(ctx, list[1].ID)
		if err != nil || got.InvestmentAmount != 150 || got.Status != domain.InvestmentActive {
			t.Fatalf("GetInvestment: %+v err=%v", got, err)
		}
		if _, err := s.GetInvestment(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}

		stats, err := s.PortfolioStats(ctx, "demo-user")
		if err != nil {
			t.Fatalf("PortfolioStats: %v", err)
		}
		// 250 * 11.2 / 100 / 12 = 2.3333...
		want := domain.PortfolioStats{TotalValue: 250, PropertiesCount: 2, MonthlyIncome: 2.33, AverageYield: 11.2}
		if stats != want {
			t.Fatalf("stats = %+v; want %+v", stats, want)
		}
	})
}

func TestIdempotency(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		now := time.Now().UTC()

		if _, err := s.GetIdempotency(ctx, "u1", "investments", "k1", now); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		rec, err := s.CreateIdempotency(ctx, "u1", "investments", "k1", "inv-1", 201, time.Hour)
		if err != nil {
			t.Fatalf("CreateIdempotency: %v", err)
		}
		if rec.ResourceID != "inv-1" || rec.Status != 201 || !rec.ExpiresAt.After(now) {
			t.Fatalf("unexpected record: %+v", rec)
		}

		got, err := s.GetIdempotency(ctx, "u1", "investments", "k1", now)
		if err != nil || got.ResourceID != "inv-1" {
			t.Fatalf("GetIdempotency: %+v err=%v", got, err)
		}
		if _, err := s.GetIdempotency(ctx, "u2", "investments", "k1", now); !errors.Is(err, ErrNotFound) {
			t.Fatalf("records must be scoped per user, got %v", err)
		}
		if _, err := s.GetIdempotency(ctx, "u1", "investments", "k1", now.Add(2*time.Hour)); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expired record must not be returned, got %v", err)
		}

		if _, err := s.CreateIdempotency(ctx, "u1", "investments", "k1", "inv-2", 201, time.Hour); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}

		if err := s.DeleteIdempotency(ctx, "u1", "investments", "k1"); err != nil {
			t.Fatalf("DeleteIdempotency: %v", err)
		}
		if _, err := s.GetIdempotency(ctx, "u1", "investments", "k1", now); !errors.Is(err, ErrNotFound) {
			t.Fatalf("released key must be gone, got %v", err)
		}
		if err := s.DeleteIdempotency(ctx, "u1", "investments", "k1"); err != nil {
			t.Fatalf("deleting an absent key: %v", err)
		}
		if _, err := s.CreateIdempotency(ctx, "u1", "investments", "k1", "inv-3", 201, time.Hour); err != nil {
			t.Fatalf("released key must be reusable: %v", err)
		}
	})
}

func TestIdempotency_ExpiredIsReplaced(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		if _, err := s.CreateIdempotency(ctx, "u1", "investments", "k", "old", 201, -time.Minute); err != nil {
			t.Fatalf("create expired: %v", err)
		}
		rec, err := s.CreateIdempotency(ctx, "u1", "investments", "k", "new", 201, time.Hour)
		if err != nil {
			t.Fatalf("replacing expired record: %v", err)
		}
		if rec.ResourceID != "new" {
			t.Fatalf("unexpected record: %+v", rec)
		}
	})
}

func TestGormStore_ErrorsWithoutSchema(t *testing.T) {
	s := NewGormStore(newTestDB(t, false))
	ctx := context.Background()
	if _, err := s.ListProperties(ctx, filter.Criteria{}); err == nil {
		t.Fatalf("expected error when tables are missing")
	}
	if _, err := s.CreateIdempotency(ctx, "u", "s", "k", "r", 201, time.Minute); err == nil || errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected non-duplicate error, got %v", err)
	}
	if _, err := s.PortfolioStats(ctx, "u"); err == nil {
		t.Fatalf("expected error when tables are missing")
	}
}
