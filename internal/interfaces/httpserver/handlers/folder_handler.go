package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/veecerts/asset-api/internal/domain/asset"
	"github.com/veecerts/asset-api/internal/domain/folder"
	"github.com/veecerts/asset-api/internal/infrastructure/auth"
	"github.com/veecerts/asset-api/internal/interfaces/httpserver/responses"
	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// FolderHandler exposes folder endpoints.
type FolderHandler struct {
	folders *folder.Service
	assets  *asset.Service
	log     zerolog.Logger
}

func NewFolderHandler(folders *folder.Service, assets *asset.Service, log zerolog.Logger) *FolderHandler {
	return &FolderHandler{
		folders: folders,
		assets:  assets,
		log:     log.With().Str("component", "folder-handler").Logger(),
	}
}

// List godoc
// @Summary      List the caller's folders
// @Tags         folders
// @Produce      json
// @Success      200  {array}  folder.Folder
// @Failure      401  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/folders [get]
func (h *FolderHandler) List(c *gin.Context) {
	folders, err := h.folders.List(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		responses.HandleError(c, err, "failed to list folders")
		return
	}
	c.JSON(http.StatusOK, folders)
}

// Get godoc
// @Summary      Get a folder
// @Tags         folders
// @Produce      json
// @Param        uuid  path      string  true  "Folder UUID"
// @Success      200   {object}  folder.Folder
// @Failure      404   {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/folders/{uuid} [get]
func (h *FolderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid folder uuid")
		return
	}

	found, err := h.folders.Get(c.Request.Context(), auth.CurrentUser(c), id)
	if err != nil {
		responses.HandleError(c, err, "failed to get folder")
		return
	}
	c.JSON(http.StatusOK, found)
}

// Upsert godoc
// @Summary      Create or rename a folder
// @Description  Multipart form. Creating requires an image logo part; a uuid
// @Description  field selects an existing folder and updates name/description.
// @Tags         folders
// @Accept       multipart/form-data
// @Produce      json
// @Param        name         formData  string  true   "Folder name"
// @Param        description  formData  string  true   "Folder description"
// @Param        uuid         formData  string  false  "Folder UUID (update)"
// @Param        logo         formData  file    false  "Logo image (create)"
// @Success      200          {object}  folder.Folder
// @Failure      400          {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/folders [post]
func (h *FolderHandler) Upsert(c *gin.Context) {
	params := folder.UpsertParams{
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
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid folder uuid")
			return
		}
		params.FolderUUID = &id
	} else {
		fileHeader, err := c.FormFile("logo")
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "logo is required")
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "failed to read logo")
			return
		}
		defer file.Close()

		logo, err := io.ReadAll(file)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "failed to read logo")
			return
		}
		params.Logo = logo
		params.LogoFilename = fileHeader.Filename
		params.LogoContentType = fileHeader.Header.Get("Content-Type")
	}

	result, err := h.folders.Upsert(c.Request.Context(), auth.CurrentUser(c), params)
	if err != nil {
		responses.HandleError(c, err, "failed to upsert folder")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListAssets godoc
// @Summary      List the assets in a folder
// @Tags         folders
// @Produce      json
// @Param        uuid  path      string  true  "Folder UUID"
// @Success      200   {array}   asset.Asset
// @Failure      404   {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /v1/folders/{uuid}/assets [get]
func (h *FolderHandler) ListAssets(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid folder uuid")
		return
	}

	assets, err := h.assets.ListByFolder(c.Request.Context(), auth.CurrentUser(c), id)
	if err != nil {
		responses.HandleError(c, err, "failed to list folder assets")
		return
	}
	c.JSON(http.StatusOK, assets)
}
