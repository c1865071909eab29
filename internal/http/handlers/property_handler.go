// Property HTTP handlers.
//
//   - GET   /properties        (filtered, sorted listing)
//   - GET   /properties/{id}   (detail; counts a view)
//   - POST  /properties        (create)
//   - PATCH /properties/{id}   (partial update)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tbourn/go-property-backend/internal/domain"
	"github.com/tbourn/go-property-backend/internal/filter"
	"github.com/tbourn/go-property-backend/internal/services"
)

// CreatePropertyRequest is the JSON payload for POST /properties. Decimal
// fields accept either JSON numbers or strings.
type CreatePropertyRequest struct {
	ID            string          `json:"id,omitempty" example:"prop-7"`
	Name          string          `json:"name" binding:"required" example:"Edificio Portal la Viña 2.0"`
	Address       string          `json:"address" binding:"required" example:"Vicuña Mackenna 2289, San Joaquín"`
	Commune       string          `json:"commune" binding:"required" example:"San Joaquín"`
	PropertyType  string          `json:"propertyType" binding:"required" example:"Bodega"`
	UnitNumber    string          `json:"unitNumber" example:"Bodega 68"`
	Size          decimal.Decimal `json:"size" swaggertype:"string" example:"2.40"`
	Floor         string          `json:"floor" example:"-1"`
	Status        string          `json:"status" binding:"required" example:"Entrega inmediata"`
	Price         int64           `json:"price" example:"91"`
	OriginalPrice *int64          `json:"originalPrice,omitempty" example:"96"`
	Discount      int             `json:"discount" example:"5"`
	AnnualYield   decimal.Decimal `json:"annualYield" swaggertype:"string" example:"8.1"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	IsAvailable   *bool           `json:"isAvailable,omitempty" example:"true"`
}

func (r CreatePropertyRequest) toDomain() domain.Property {
	p := domain.Property{
		ID:            strings.TrimSpace(r.ID),
		Name:          r.Name,
		Address:       r.Address,
		Commune:       r.Commune,
		PropertyType:  r.PropertyType,
		UnitNumber:    r.UnitNumber,
		Size:          r.Size,
		Floor:         r.Floor,
		Status:        r.Status,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Discount:      r.Discount,
		AnnualYield:   r.AnnualYield,
		ImageURL:      r.ImageURL,
		IsAvailable:   true,
	}
	if r.IsAvailable != nil {
		p.IsAvailable = *r.IsAvailable
	}
	return p
}

// ListProperties godoc
// @ID          listProperties
// @Summary     List properties
// @Description Returns the properties matching every given filter, sorted by price ascending unless another sort is requested.
// @Tags        Properties
// @Produce     json
//
// @Param       commune       query  string  false  "Exact commune name"      example(Las Condes)
// @Param       propertyType  query  string  false  "Property type"           Enums(Bodega, Estacionamiento, Pack, Oficina)
// @Param       status        query  string  false  "Sale status"             example(Disponible)
// @Param       minPrice      query  int     false  "Minimum price (UF)"
// @Param       maxPrice      query  int     false  "Maximum price (UF)"
// @Param       minYield      query  number  false  "Minimum annual yield (%)"
// @Param       maxYield      query  number  false  "Maximum annual yield (%)"
// @Param       q             query  string  false  "Free-text search"
// @Param       sort          query  string  false  "Sort order"              Enums(price-asc, price-desc, yield-desc, size-desc) default(price-asc)
//
// @Success     200  {array}   domain.Property
// @Failure     400  {object}  handlers.ErrorResponse  "Unparseable filter"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /properties [get]
func (h *Handlers) ListProperties(c *gin.Context) {
	crit, err := filter.ParseQuery(c.Request.URL.Query())
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidFilter, err.Error())
		return
	}
	props, err := h.catalog.ListProperties(c.Request.Context(), crit)
	if err != nil {
		failInternal(c, err, "could not list properties")
		return
	}
	ok(c, http.StatusOK, nonNil(props))
}

// GetProperty godoc
// @ID          getProperty
// @Summary     Get a property
// @Description Returns a single property and increments its view counter.
// @Tags        Properties
// @Produce     json
//
// @Param       id  path  string  true  "Property ID"  example(prop-ceppi-1)
//
// @Success     200  {object}  domain.Property
// @Failure     404  {object}  handlers.ErrorResponse  "Property not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /properties/{id} [get]
func (h *Handlers) GetProperty(c *gin.Context) {
	p, err := h.catalog.GetProperty(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrPropertyNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "property not found")
		return
	case err != nil:
		failInternal(c, err, "could not load property")
		return
	}
	ok(c, http.StatusOK, p)
}

// CreateProperty godoc
// @ID          createProperty
// @Summary     Create a property
// @Description Adds a listing to the catalog. The view counter starts at zero.
// @Tags        Properties
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreatePropertyRequest  true  "Property"
//
// @Success     201  {object}  domain.Property
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid property"
// @Failure     409  {object}  handlers.ErrorResponse  "Property ID already taken"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /properties [post]
func (h *Handlers) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p, err := h.catalog.CreateProperty(c.Request.Context(), req.toDomain())
	switch {
	case errors.Is(err, services.ErrInvalidProperty):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrPropertyExists):
		fail(c, http.StatusConflict, ErrCodeConflict, "property already exists")
		return
	case err != nil:
		failInternal(c, err, "could not create property")
		return
	}
	ok(c, http.StatusCreated, p)
}

// UpdateProperty godoc
// @ID          updateProperty
// @Summary     Update a property
// @Description Applies a partial update. Omitted fields are left untouched; id, viewCount and createdAt cannot change.
// @Tags        Properties
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                true  "Property ID"  example(prop-ceppi-1)
// @Param       body  body  domain.PropertyPatch  true  "Fields to change"
//
// @Success     200  {object}  domain.Property
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid patch"
// @Failure     404  {object}  handlers.ErrorResponse  "Property not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /properties/{id} [patch]
func (h *Handlers) UpdateProperty(c *gin.Context) {
	var patch domain.PropertyPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p, err := h.catalog.UpdateProperty(c.Request.Context(), c.Param("id"), patch)
	switch {
	case errors.Is(err, services.ErrPropertyNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "property not found")
		return
	case errors.Is(err, services.ErrInvalidProperty):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	case err != nil:
		failInternal(c, err, "could not update property")
		return
	}
	ok(c, http.StatusOK, p)
}

// ListCommunes godoc
// @ID          listCommunes
// @Summary     List communes
// @Description Returns the commune overview used by the map explorer, ordered by name.
// @Tags        Communes
// @Produce     json
//
// @Success     200  {array}   domain.Commune
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /communes [get]
func (h *Handlers) ListCommunes(c *gin.Context) {
	communes, err := h.catalog.ListCommunes(c.Request.Context())
	if err != nil {
		failInternal(c, err, "could not list communes")
		return
	}
	ok(c, http.StatusOK, nonNil(communes))
}

// Search godoc
// @ID          searchProperties
// @Summary     Search properties
// @Description Case- and accent-insensitive substring search over name, address, commune, type, unit number and status.
// @Tags        Properties
// @Produce     json
//
// @Param       q  query  string  true  "Search text"  example(condes)
//
// @Success     200  {array}   domain.Property
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or empty q"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /search [get]
func (h *Handlers) Search(c *gin.Context) {
	q, present := c.GetQuery(filter.ParamQuery)
	if !present || q == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query parameter q is required")
		return
	}
	props, err := h.catalog.Search(c.Request.Context(), q)
	switch {
	case errors.Is(err, services.ErrEmptyQuery):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query parameter q is required")
		return
	case err != nil:
		failInternal(c, err, "search failed")
		return
	}
	ok(c, http.StatusOK, nonNil(props))
}
