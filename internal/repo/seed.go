package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tbourn/go-property-backend/internal/domain"
)

const imageBase = "https://images.unsplash.com/"
const imageParams = "?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=300"

func image(photo string) *string {
	u := imageBase + photo + imageParams
	return &u
}

func uf(v int64) *int64 { return &v }

// SeedCommunes is the initial commune overview shown on the map explorer.
func SeedCommunes() []domain.Commune {
	c := func(id, name string, count int, yield string, lo, hi int64) domain.Commune {
		return domain.Commune{
			ID:            id,
			Name:          name,
			PropertyCount: count,
			AverageYield:  decimal.RequireFromString(yield),
			MinPrice:      lo,
			MaxPrice:      hi,
		}
	}
	return []domain.Commune{
		c("commune-las-condes", "Las Condes", 8, "15.9", 169, 299),
		c("commune-santiago", "Santiago", 15, "5.5", 99, 199),
		c("commune-san-joaquin", "San Joaquín", 6, "8.1", 91, 169),
		c("commune-la-florida", "La Florida", 4, "11.1", 249, 313),
		c("commune-la-cisterna", "La Cisterna", 3, "10.5", 115, 162),
		c("commune-nunoa", "Ñuñoa", 4, "6.0", 112, 159),
		c("commune-renca", "Renca", 2, "8.5", 102, 114),
		c("commune-estacion-central", "Estación Central", 2, "6.9", 99, 109),
		c("commune-independencia", "Independencia", 5, "9.2", 299, 375),
		c("commune-quilicura", "Quilicura", 2, "12.8", 159, 199),
		c("commune-la-serena", "La Serena", 6, "7.2", 299, 413),
	}
}

// SeedProperties is the initial property catalog.
func SeedProperties() []domain.Property {
	return []domain.Property{
		{
			ID: "prop-portal-vina-1", Name: "Edificio Portal la Viña 2.0",
			Address: "Vicuña Mackenna 2289, San Joaquín", Commune: "San Joaquín",
			PropertyType: domain.TypeBodega, UnitNumber: "Bodega 68",
			Size: decimal.RequireFromString("2.40"), Floor: "-1", Status: domain.StatusEntregaInmediata,
			Price: 91, OriginalPrice: uf(96), Discount: 5, AnnualYield: decimal.RequireFromString("8.1"),
			ViewCount: 9, ImageURL: image("photo-1586023492125-27b2c045efd7"), IsAvailable: true,
		},
		{
			ID: "prop-neo-florida-1", Name: "Neo Florida 3",
			Address: "Alonso de Ercilla 7698, La Florida", Commune: "La Florida",
			PropertyType: domain.TypeEstacionamiento, UnitNumber: "Estacionamiento 67",
			Size: decimal.RequireFromString("12.50"), Floor: "-1", Status: domain.StatusEntregaInmediata,
			Price: 249, OriginalPrice: uf(313), Discount: 20, AnnualYield: decimal.RequireFromString("11.1"),
			ViewCount: 7, ImageURL: image("photo-1506905925346-21bda4d32df4"), IsAvailable: true,
		},
		{
			ID: "prop-trinitarias-1", Name: "Las Trinitarias",
			Address: "Las Trinitarias 7047, Las Condes", Commune: "Las Condes",
			PropertyType: domain.TypePack, UnitNumber: "Pack Bodega 30 Bodega BA901",
			Size: decimal.RequireFromString("3.51"), Floor: "-1", Status: domain.StatusEntregaInmediata,
			Price: 193, OriginalPrice: uf(228), Discount: 15, AnnualYield: decimal.RequireFromString("15.9"),
			ViewCount: 8, ImageURL: image("photo-1497366216548-37526070297c"), IsAvailable: true,
		},
		{
			ID: "prop-mirador-san-pablo-1", Name: "Mirador San Pablo",
			Address: "San Pablo 2937, Santiago Centro", Commune: "Santiago",
			PropertyType: domain.TypeBodega, UnitNumber: "Bodega 80",
			Size: decimal.RequireFromString("1.77"), Floor: "5", Status: domain.StatusEnVerde,
			Price: 99, OriginalPrice: uf(133), Discount: 26, AnnualYield: decimal.RequireFromString("5.5"),
			ViewCount: 6, ImageURL: image("photo-1488972685288-c3fd157d7c7a"), IsAvailable: true,
		},
		{
			ID: "prop-santa-maria-1", Name: "Santa Maria",
			Address: "Av. Domingo Santa María N°1846, Independencia", Commune: "Independencia",
			PropertyType: domain.TypeEstacionamiento, UnitNumber: "Estacionamiento 069",
			Size: decimal.RequireFromString("12.50"), Floor: "-3", Status: domain.StatusEntregaInmediata,
			Price: 299, OriginalPrice: uf(375), Discount: 20, AnnualYield: decimal.RequireFromString("9.2"),
			ViewCount: 4, ImageURL: image("photo-1571019613454-1cb2f99b2d8b"), IsAvailable: true,
		},
		{
			ID: "prop-ceppi-1", Name: "Edificio Ceppi",
			Address: "Calle Uno 6590, La Cisterna", Commune: "La Cisterna",
			PropertyType: domain.TypeBodega, UnitNumber: "Bodega 39",
			Size: decimal.RequireFromString("3.93"), Floor: "-2", Status: domain.StatusEntregaInmediata,
			Price: 115, OriginalPrice: uf(138), Discount: 17, AnnualYield: decimal.RequireFromString("10.5"),
			ViewCount: 9, ImageURL: image("photo-1517263904808-5dc91e3e7044"), IsAvailable: true,
		},
	}
}

// Seed loads the initial communes and properties plus the demo user into s.
// Records that already exist are left untouched, so seeding a persistent
// store twice is harmless.
func Seed(ctx context.Context, s Store, demoUserID string) error {
	for _, c := range SeedCommunes() {
		c := c
		if err := ignoreDuplicate(s.CreateCommune(ctx, &c)); err != nil {
			return fmt.Errorf("seed commune %s: %w", c.Name, err)
		}
	}
	for _, p := range SeedProperties() {
		p := p
		if err := ignoreDuplicate(s.CreateProperty(ctx, &p)); err != nil {
			return fmt.Errorf("seed property %s: %w", p.ID, err)
		}
	}
	if demoUserID == "" {
		return nil
	}
	// The demo account has no usable password.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	u := domain.User{
		ID:       demoUserID,
		Username: demoUserID,
		Email:    demoUserID + "@example.com",
		Password: string(hash),
	}
	if err := ignoreDuplicate(s.CreateUser(ctx, &u)); err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	return nil
}

func ignoreDuplicate(err error) error {
	if errors.Is(err, ErrDuplicate) {
		return nil
	}
	return err
}
