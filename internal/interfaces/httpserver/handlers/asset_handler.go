package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/config"
	"github.com/veecerts/asset-api/internal/domain/asset"
	"github.com/veecerts/asset-api/internal/infrastructure/auth"
	"github.com/veecerts/asset-api/internal/infrastructure/metrics"
	"github.com/veecerts/asset-api/internal/interfaces/httpserver/responses"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

const bytesPerMb = 1024 * 1024

// AssetHandler exposes asset upload and query endpoints.
type AssetHandler struct {
	cfg     *config.Config
	service *asset.Service
	log     zerolog.Logger
}

func NewAssetHandler(cfg *config.Config, service *asset.Service, log zerolog.Logger) *AssetHandler {
	return &AssetHandler{
		cfg:     cfg,
		service: service,
		log:     log.With().Str("component", "asset-handler").Logger(),
	}
}

// Upsert godoc
// @Summary      Upload or replace an asset
// @Description  Multipart form. A uuid field selects an existing asset to
// @Description  replace; replacement burns the old token and mints a new one.
// @Tags         assets
// @Accept       multipart/form-data
// @Produce      json
// @Param        name         formData  string  true   "Asset name"
// @Param        description  formData  string  true   "Asset description"
// @Param        folder_uuid  formData  string  true   "Target folder UUID"
// @Param        uuid         formData  string  false  "Asset UUID (replace)"
// @Param        file         formData  file    true   "Asset content"
// @Success      200          {object}  asset.Asset
// @Failure      400          {object}  responses.ErrorResponse
// @Failure      413          {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/assets [post]
func (h *AssetHandler) Upsert(c *gin.Context) {
	folderID, err := uuid.Parse(c.PostForm("folder_uuid"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid folder_uuid")
		return
	}

	params := asset.UpsertParams{
		FolderUUID:  folderID,
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}
	if params.Name == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "name is required")
		return
	}

	if raw := c.PostForm("uuid"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid asset uuid")
			return
		}
		params.AssetUUID = &id
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "file is required")
		return
	}
	if fileHeader.Size > h.cfg.MaxUploadBytes {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("file exceeds the maximum upload size of %d bytes", h.cfg.MaxUploadBytes))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "failed to read file")
		return
	}
	defer file.Close()

	params.Content = file
	params.Filename = fileHeader.Filename
	params.ContentType = fileHeader.Header.Get("Content-Type")
	params.SizeMb = float64(fileHeader.Size) / bytesPerMb

	result, err := h.service.Upsert(c.Request.Context(), auth.CurrentUser(c), params)
	if err != nil {
		var platformErr *platformerrors.PlatformError
		if errors.As(err, &platformErr) && platformErr.Type == platformerrors.ErrorTypeQuotaExceeded {
			metrics.QuotaRejectionsTotal.Inc()
		}
		metrics.RecordUpload(params.ContentType, "error", params.SizeMb)
		responses.HandleError(c, err, "failed to upsert asset")
		return
	}

	metrics.RecordUpload(result.ContentType, "success", result.SizeMb)
	c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary      Get an asset
// @Tags         assets
// @Produce      json
// @Param        uuid  path      string  true  "Asset UUID"
// @Success      200   {object}  asset.Asset
// @Failure      404   {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/assets/{uuid} [get]
func (h *AssetHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid asset uuid")
		return
	}

	found, err := h.service.Get(c.Request.Context(), auth.CurrentUser(c), id)
	if err != nil {
		responses.HandleError(c, err, "failed to get asset")
		return
	}
	c.JSON(http.StatusOK, found)
}

// Usage godoc
// @Summary      Get the caller's storage usage
// @Tags         usage
// @Produce      json
// @Success      200  {object}  asset.Usage
// @Failure      401  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/usage [get]
func (h *AssetHandler) Usage(c *gin.Context) {
	usage, err := h.service.Usage(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		responses.HandleError(c, err, "failed to get usage")
		return
	}
	c.JSON(http.StatusOK, usage)
}
