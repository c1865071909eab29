// Investment and portfolio HTTP handlers.
//
//   - POST /investments            (create; honors Idempotency-Key)
//   - GET  /portfolio/stats        (acting user's summary)
//   - GET  /portfolio/investments  (acting user's investments)
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-property-backend/internal/http/middleware"
	"github.com/tbourn/go-property-backend/internal/services"
)

// CreateInvestmentRequest is the JSON payload for POST /investments.
// UserID defaults to the acting user.
type CreateInvestmentRequest struct {
	UserID           string     `json:"userId,omitempty" example:"demo-user"`
	PropertyID       string     `json:"propertyId" binding:"required" example:"prop-ceppi-1"`
	InvestmentAmount int64      `json:"investmentAmount" example:"500"`
	Status           string     `json:"status,omitempty" enums:"Active,Completed,Cancelled" example:"Active"`
	PurchaseDate     *time.Time `json:"purchaseDate,omitempty"`
}

// CreateInvestment godoc
// @ID          createInvestment
// @Summary     Record an investment
// @Description Reserves a property for a user. Retrying with the same Idempotency-Key returns the original investment with Idempotent-Replayed: true.
// @Tags        Investments
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string                            false  "User ID (demo header)"  example(demo-user)
// @Param       Idempotency-Key  header  string                            false  "Client retry key"       example(inv-2024-0001)
// @Param       body             body    handlers.CreateInvestmentRequest  true   "Investment"
//
// @Success     201  {object}  domain.Investment
// @Header      201  {string}  Idempotent-Replayed  "true when served from a previous request"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid investment or unknown user/property"
// @Failure     409  {object}  handlers.ErrorResponse  "Same Idempotency-Key still in progress"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /investments [post]
func (h *Handlers) CreateInvestment(c *gin.Context) {
	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	uid := strings.TrimSpace(req.UserID)
	if uid == "" {
		uid = userID(c)
	}
	key, _ := middleware.GetIdempotencyKey(c)

	inv, replayed, err := h.investments.Create(c.Request.Context(), services.NewInvestment{
		ActorID:          userID(c),
		UserID:           uid,
		PropertyID:       req.PropertyID,
		InvestmentAmount: req.InvestmentAmount,
		Status:           req.Status,
		PurchaseDate:     req.PurchaseDate,
	}, key)
	switch {
	case errors.Is(err, services.ErrInvalidInvestment):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrUnknownProperty), errors.Is(err, services.ErrUnknownUser):
		fail(c, http.StatusBadRequest, ErrCodeUnknownRef, err.Error())
		return
	case errors.Is(err, services.ErrIdempotencyInFlight):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		return
	case err != nil:
		failInternal(c, err, "could not record investment")
		return
	}

	if replayed {
		c.Header(middleware.HeaderIdempotentReplay, "true")
	}
	ok(c, http.StatusCreated, inv)
}

// PortfolioStats godoc
// @ID          portfolioStats
// @Summary     Portfolio summary
// @Description Totals the acting user's investments. averageYield is the fixed portfolio yield when the user has investments, 0 otherwise.
// @Tags        Portfolio
// @Produce     json
//
// @Param       X-User-ID  header  string  false  "User ID (demo header)"  example(demo-user)
//
// @Success     200  {object}  domain.PortfolioStats
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /portfolio/stats [get]
func (h *Handlers) PortfolioStats(c *gin.Context) {
	stats, err := h.investments.PortfolioStats(c.Request.Context(), userID(c))
	if err != nil {
		failInternal(c, err, "could not compute portfolio stats")
		return
	}
	ok(c, http.StatusOK, stats)
}

// ListPortfolioInvestments godoc
// @ID          listPortfolioInvestments
// @Summary     List the acting user's investments
// @Description Returns the acting user's investments ordered by purchase date.
// @Tags        Portfolio
// @Produce     json
//
// @Param       X-User-ID  header  string  false  "User ID (demo header)"  example(demo-user)
//
// @Success     200  {array}   domain.Investment
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /portfolio/investments [get]
func (h *Handlers) ListPortfolioInvestments(c *gin.Context) {
	invs, err := h.investments.ListByUser(c.Request.Context(), userID(c))
	if err != nil {
		failInternal(c, err, "could not list investments")
		return
	}
	ok(c, http.StatusOK, nonNil(invs))
}
