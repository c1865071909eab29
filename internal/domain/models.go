// Package domain defines the persistence models for the property catalog:
// properties, communes, investments, and users. These types are mapped with
// GORM and shared by the repository, service, and HTTP layers.
//
// JSON field names are camelCase because the public site consumes them
// directly. Fixed-point values (sizes, yields) use decimal.Decimal and are
// encoded as JSON strings, e.g. "8.1".
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalid is wrapped by every validation failure reported by this package.
var ErrInvalid = errors.New("invalid")

// Property types offered by the catalog.
const (
	TypeBodega          = "Bodega"
	TypeEstacionamiento = "Estacionamiento"
	TypePack            = "Pack"
	TypeOficina         = "Oficina"
)

// Property sale states.
const (
	StatusDisponible       = "Disponible"
	StatusReservado        = "Reservado"
	StatusVendido          = "Vendido"
	StatusEnVerde          = "En verde"
	StatusEntregaInmediata = "Entrega inmediata"
)

// Investment states.
const (
	InvestmentActive    = "Active"
	InvestmentCompleted = "Completed"
	InvestmentCancelled = "Cancelled"
)

var (
	propertyTypes    = []string{TypeBodega, TypeEstacionamiento, TypePack, TypeOficina}
	propertyStatuses = []string{StatusDisponible, StatusReservado, StatusVendido, StatusEnVerde, StatusEntregaInmediata}
	investmentStates = []string{InvestmentActive, InvestmentCompleted, InvestmentCancelled}
)

// PropertyTypes returns the accepted property types.
func PropertyTypes() []string { return append([]string(nil), propertyTypes...) }

// PropertyStatuses returns the accepted property states.
func PropertyStatuses() []string { return append([]string(nil), propertyStatuses...) }

// ValidPropertyType reports whether s is a known property type.
func ValidPropertyType(s string) bool { return contains(propertyTypes, s) }

// ValidPropertyStatus reports whether s is a known property status.
func ValidPropertyStatus(s string) bool { return contains(propertyStatuses, s) }

// ValidInvestmentStatus reports whether s is a known investment status.
func ValidInvestmentStatus(s string) bool { return contains(investmentStates, s) }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Property is a unit for sale (storage room, parking spot, office, or a
// pack of them). Price and OriginalPrice are expressed in UF.
//
// Fields:
//   - ID: stable identifier; never changes once created.
//   - Size: surface in m², two decimal places.
//   - AnnualYield: annual percentage return, two decimal places.
//   - ViewCount: detail page views; only ever incremented.
//   - OriginalPrice/Discount: list price before the advertised discount.
type Property struct {
	ID            string          `json:"id"            gorm:"type:varchar(64);primaryKey"`
	Name          string          `json:"name"          gorm:"type:varchar(255);not null"`
	Address       string          `json:"address"       gorm:"type:varchar(255);not null"`
	Commune       string          `json:"commune"       gorm:"type:varchar(128);not null;index:idx_properties_commune"`
	PropertyType  string          `json:"propertyType"  gorm:"type:varchar(32);not null;index:idx_properties_type"`
	UnitNumber    string          `json:"unitNumber"    gorm:"type:varchar(128);not null"`
	Size          decimal.Decimal `json:"size"          gorm:"type:decimal(8,2);not null"`
	Floor         string          `json:"floor"         gorm:"type:varchar(16);not null"`
	Status        string          `json:"status"        gorm:"type:varchar(32);not null"`
	Price         int64           `json:"price"         gorm:"not null;index:idx_properties_price"`
	OriginalPrice *int64          `json:"originalPrice"`
	Discount      int             `json:"discount"      gorm:"not null"`
	AnnualYield   decimal.Decimal `json:"annualYield"   gorm:"type:decimal(4,2);not null"`
	ViewCount     int64           `json:"viewCount"     gorm:"not null"`
	ImageURL      *string         `json:"imageUrl"`
	IsAvailable   bool            `json:"isAvailable"   gorm:"not null"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TableName returns the database table name for Property.
func (Property) TableName() string { return "properties" }

// Validate checks the invariants a property must satisfy before it is stored.
func (p *Property) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalid)
	case strings.TrimSpace(p.Commune) == "":
		return fmt.Errorf("%w: commune is required", ErrInvalid)
	case !ValidPropertyType(p.PropertyType):
		return fmt.Errorf("%w: unknown property type %q", ErrInvalid, p.PropertyType)
	case !ValidPropertyStatus(p.Status):
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, p.Status)
	case !p.Size.IsPositive():
		return fmt.Errorf("%w: size must be positive", ErrInvalid)
	case p.Price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrInvalid)
	case p.Discount < 0 || p.Discount > 100:
		return fmt.Errorf("%w: discount must be within 0..100", ErrInvalid)
	case p.AnnualYield.IsNegative():
		return fmt.Errorf("%w: annual yield must be >= 0", ErrInvalid)
	case p.ViewCount < 0:
		return fmt.Errorf("%w: view count must be >= 0", ErrInvalid)
	case p.OriginalPrice != nil && p.Discount > 0 && *p.OriginalPrice < p.Price:
		return fmt.Errorf("%w: original price below discounted price", ErrInvalid)
	}
	return nil
}

// PropertyPatch carries a partial update. Nil fields are left untouched.
type PropertyPatch struct {
	Name          *string          `json:"name,omitempty"`
	Address       *string          `json:"address,omitempty"`
	Commune       *string          `json:"commune,omitempty"`
	PropertyType  *string          `json:"propertyType,omitempty"`
	UnitNumber    *string          `json:"unitNumber,omitempty"`
	Size          *decimal.Decimal `json:"size,omitempty"`
	Floor         *string          `json:"floor,omitempty"`
	Status        *string          `json:"status,omitempty"`
	Price         *int64           `json:"price,omitempty"`
	OriginalPrice *int64           `json:"originalPrice,omitempty"`
	Discount      *int             `json:"discount,omitempty"`
	AnnualYield   *decimal.Decimal `json:"annualYield,omitempty"`
	ImageURL      *string          `json:"imageUrl,omitempty"`
	IsAvailable   *bool            `json:"isAvailable,omitempty"`
}

// Apply merges the non-nil fields of the patch into p. ID, CreatedAt and
// ViewCount are never touched.
func (pp PropertyPatch) Apply(p *Property) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Address != nil {
		p.Address = *pp.Address
	}
	if pp.Commune != nil {
		p.Commune = *pp.Commune
	}
	if pp.PropertyType != nil {
		p.PropertyType = *pp.PropertyType
	}
	if pp.UnitNumber != nil {
		p.UnitNumber = *pp.UnitNumber
	}
	if pp.Size != nil {
		p.Size = *pp.Size
	}
	if pp.Floor != nil {
		p.Floor = *pp.Floor
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.OriginalPrice != nil {
		v := *pp.OriginalPrice
		p.OriginalPrice = &v
	}
	if pp.Discount != nil {
		p.Discount = *pp.Discount
	}
	if pp.AnnualYield != nil {
		p.AnnualYield = *pp.AnnualYield
	}
	if pp.ImageURL != nil {
		v := *pp.ImageURL
		p.ImageURL = &v
	}
	if pp.IsAvailable != nil {
		p.IsAvailable = *pp.IsAvailable
	}
}

// Empty reports whether the patch carries no field at all.
func (pp PropertyPatch) Empty() bool {
	return pp == PropertyPatch{}
}

// Commune is the geographic grouping used for listings and the map view.
type Commune struct {
	ID            string          `json:"id"            gorm:"type:varchar(64);primaryKey"`
	Name          string          `json:"name"          gorm:"type:varchar(128);not null;uniqueIndex:ux_communes_name"`
	PropertyCount int             `json:"propertyCount" gorm:"not null"`
	AverageYield  decimal.Decimal `json:"averageYield"  gorm:"type:decimal(4,2)"`
	MinPrice      int64           `json:"minPrice"`
	MaxPrice      int64           `json:"maxPrice"`
}

// TableName returns the database table name for Commune.
func (Commune) TableName() string { return "communes" }

// Investment records a reservation of a property by a user. The amount is
// expressed in UF.
type Investment struct {
	ID               string    `json:"id"               gorm:"type:varchar(64);primaryKey"`
	UserID           string    `json:"userId"           gorm:"type:varchar(64);not null;index:idx_investments_user"`
	PropertyID       string    `json:"propertyId"       gorm:"type:varchar(64);not null;index"`
	InvestmentAmount int64     `json:"investmentAmount" gorm:"not null"`
	PurchaseDate     time.Time `json:"purchaseDate"`
	Status           string    `json:"status"           gorm:"type:varchar(16);not null"`
}

// TableName returns the database table name for Investment.
func (Investment) TableName() string { return "investments" }

// Validate checks amount and status.
func (i *Investment) Validate() error {
	switch {
	case strings.TrimSpace(i.UserID) == "":
		return fmt.Errorf("%w: userId is required", ErrInvalid)
	case strings.TrimSpace(i.PropertyID) == "":
		return fmt.Errorf("%w: propertyId is required", ErrInvalid)
	case i.InvestmentAmount <= 0:
		return fmt.Errorf("%w: investment amount must be positive", ErrInvalid)
	case !ValidInvestmentStatus(i.Status):
		return fmt.Errorf("%w: unknown investment status %q", ErrInvalid, i.Status)
	}
	return nil
}

// User is a site account. Password holds a bcrypt hash and is never encoded.
type User struct {
	ID        string    `json:"id"        gorm:"type:varchar(64);primaryKey"`
	Username  string    `json:"username"  gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	Email     string    `json:"email"     gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	Password  string    `json:"-"         gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// PortfolioStats summarizes a user's investments for the dashboard.
type PortfolioStats struct {
	TotalValue      int64   `json:"totalValue"`
	PropertiesCount int     `json:"propertiesCount"`
	MonthlyIncome   float64 `json:"monthlyIncome"`
	AverageYield    float64 `json:"averageYield"`
}
