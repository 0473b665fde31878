package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/domain/subscription"
	"github.com/veecerts/asset-api/internal/infrastructure/auth"
	"github.com/veecerts/asset-api/internal/interfaces/httpserver/requests"
	"github.com/veecerts/asset-api/internal/interfaces/httpserver/responses"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// SubscriptionHandler exposes package management and subscribing.
type SubscriptionHandler struct {
	service *subscription.Service
	log     zerolog.Logger
}

func NewSubscriptionHandler(service *subscription.Service, log zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		log:     log.With().Str("component", "subscription-handler").Logger(),
	}
}

// ListPackages godoc
// @Summary      List subscription packages
// @Tags         packages
// @Produce      json
// @Success      200  {array}  subscription.Package
// @Router       /v1/packages [get]
func (h *SubscriptionHandler) ListPackages(c *gin.Context) {
	packages, err := h.service.ListPackages(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list packages")
		return
	}
	c.JSON(http.StatusOK, packages)
}

// GetPackage godoc
// @Summary      Get a subscription package
// @Tags         packages
// @Produce      json
// @Param        uuid  path      string  true  "Package UUID"
// @Success      200   {object}  subscription.Package
// @Failure      404   {object}  responses.ErrorResponse
// @Router       /v1/packages/{uuid} [get]
func (h *SubscriptionHandler) GetPackage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid package uuid")
		return
	}

	pkg, err := h.service.GetPackage(c.Request.Context(), id)
	if err != nil {
		responses.HandleError(c, err, "failed to get package")
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// UpsertPackage godoc
// @Summary      Create or update a subscription package
// @Tags         packages
// @Accept       json
// @Produce      json
// @Param        request  body      requests.UpsertPackageRequest  true  "Package payload"
// @Success      200      {object}  subscription.Package
// @Failure      400      {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/packages [post]
func (h *SubscriptionHandler) UpsertPackage(c *gin.Context) {
	var req requests.UpsertPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error())
		return
	}

	params := subscription.UpsertPackageParams{
		Name:               req.Name,
		Price:              req.Price,
		StorageCapacityMb:  req.StorageCapacityMb,
		MonthlyRequests:    req.MonthlyRequests,
		MaxAllowedSessions: req.MaxAllowedSessions,
	}
	if req.UUID != nil {
		id, err := uuid.Parse(*req.UUID)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid package uuid")
			return
		}
		params.UUID = &id
	}

	pkg, err := h.service.UpsertPackage(c.Request.Context(), params)
	if err != nil {
		responses.HandleError(c, err, "failed to upsert package")
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// Subscribe godoc
// @Summary      Subscribe the current user to a package
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request  body      requests.SubscribeRequest  true  "Subscribe payload"
// @Success      201      {object}  responses.SubscribeResponse
// @Failure      401      {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/subscriptions [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req requests.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error())
		return
	}

	packageID, err := uuid.Parse(req.PackageUUID)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid package uuid")
		return
	}

	sub, apiSecret, err := h.service.Subscribe(c.Request.Context(), auth.CurrentUser(c), packageID)
	if err != nil {
		responses.HandleError(c, err, "failed to subscribe")
		return
	}

	c.JSON(http.StatusCreated, responses.SubscribeResponse{
		Subscription: sub,
		APISecret:    apiSecret,
	})
}
