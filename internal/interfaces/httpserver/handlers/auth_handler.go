package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/domain/account"
	"github.com/veecerts/asset-api/internal/interfaces/httpserver/requests"
	"github.com/veecerts/asset-api/internal/interfaces/httpserver/responses"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// AuthHandler exposes signup, signin and token refresh.
type AuthHandler struct {
	service *account.Service
	log     zerolog.Logger
}

func NewAuthHandler(service *account.Service, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With().Str("component", "auth-handler").Logger(),
	}
}

// Signup godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      requests.SignupRequest  true  "Signup payload"
// @Success      201      {object}  responses.UserResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /v1/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req requests.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error())
		return
	}

	user, err := h.service.Signup(c.Request.Context(), req.Email, req.Password1, req.Password2)
	if err != nil {
		responses.HandleError(c, err, "signup failed")
		return
	}

	c.JSON(http.StatusCreated, responses.NewUserResponse(user))
}

// Signin godoc
// @Summary      Authenticate a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      requests.SigninRequest  true  "Signin payload"
// @Success      200      {object}  responses.TokenResponse
// @Failure      401      {object}  responses.ErrorResponse
// @Router       /v1/auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req requests.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error())
		return
	}

	token, err := h.service.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		responses.HandleError(c, err, "signin failed")
		return
	}

	c.JSON(http.StatusOK, responses.NewTokenResponse(token))
}

// Refresh godoc
// @Summary      Rotate a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      requests.RefreshRequest  true  "Refresh payload"
// @Success      200      {object}  responses.TokenResponse
// @Failure      401      {object}  responses.ErrorResponse
// @Router       /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req requests.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error())
		return
	}

	token, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		responses.HandleError(c, err, "refresh failed")
		return
	}

	c.JSON(http.StatusOK, responses.NewTokenResponse(token))
}
