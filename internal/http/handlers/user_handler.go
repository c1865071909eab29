package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-property-backend/internal/services"
)

// RegisterUserRequest is the JSON payload for POST /users.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required" example:"inversionista"`
	Email    string `json:"email" binding:"required" example:"ana@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery"`
}

// RegisterUser godoc
// @ID          registerUser
// @Summary     Register a user
// @Description Creates an account. Username and email must be unique; the password is stored as a bcrypt hash and never returned.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterUserRequest  true  "Account"
//
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid user"
// @Failure     409  {object}  handlers.ErrorResponse  "Username or email taken"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [post]
func (h *Handlers) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username, email and password are required")
		return
	}
	u, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidUser):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrUserExists):
		fail(c, http.StatusConflict, ErrCodeConflict, "username or email already registered")
		return
	case err != nil:
		failInternal(c, err, "could not register user")
		return
	}
	ok(c, http.StatusCreated, u)
}

// GetUser godoc
// @ID          getUser
// @Summary     Get a user
// @Tags        Users
// @Produce     json
//
// @Param       id  path  string  true  "User ID"  example(demo-user)
//
// @Success     200  {object}  domain.User
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	case err != nil:
		failInternal(c, err, "could not load user")
		return
	}
	ok(c, http.StatusOK, u)
}
