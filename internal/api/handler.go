package api

import (
	"errors"
	"io"
	"net/http"

	"school-import-service/internal/config"
	"school-import-service/internal/importer"
	"school-import-service/internal/logger"
	"school-import-service/internal/model"
	"school-import-service/internal/schema"
	apperrors "school-import-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	service  *importer.Service
	registry *schema.Registry
	cfg      *config.Config
	log      zerolog.Logger
}

func NewHandler(service *importer.Service, registry *schema.Registry, cfg *config.Config) *Handler {
	return &Handler{
		service:  service,
		registry: registry,
		cfg:      cfg,
		log:      logger.Get(),
	}
}

// Import handles the multipart upload: file, category, optional userId and
// sendEmails. Run-level failures map to 400 with actionable detail; row
// failures are reported inside the 200 response body.
func (h *Handler) Import(c *gin.Context) {
	schoolID := c.Param("school_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File and category are required"})
		return
	}

	category := c.PostForm("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File and category are required"})
		return
	}

	if h.cfg.Import.MaxFileSizeMB > 0 && fileHeader.Size > int64(h.cfg.Import.MaxFileSizeMB)<<20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	result, err := h.service.Run(c.Request.Context(), importer.RunRequest{
		SchoolID:   schoolID,
		Category:   category,
		FileName:   fileHeader.Filename,
		Data:       data,
		UserID:     c.PostForm("userId"),
		SendEmails: c.PostForm("sendEmails") == "true",
	})
	if err != nil {
		h.respondRunError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RetryProvisioning re-attempts identity provisioning for previously failed
// rows. Domain data is never re-validated or re-created.
func (h *Handler) RetryProvisioning(c *gin.Context) {
	schoolID := c.Param("school_id")

	var req model.RetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.Records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No records to retry"})
		return
	}

	result, err := h.service.Retry(c.Request.Context(), schoolID, req.Category, req.Records)
	if err != nil {
		h.respondRunError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Config lists the import categories and their field definitions so the
// caller can render upload forms and column hints.
func (h *Handler) Config(c *gin.Context) {
	type fieldConfig struct {
		Name     string `json:"name"`
		Label    string `json:"label"`
		Required bool   `json:"required"`
		Example  string `json:"example"`
	}
	type categoryConfig struct {
		Category        string        `json:"category"`
		Name            string        `json:"name"`
		RequiresAccount bool          `json:"requiresAccount"`
		Fields          []fieldConfig `json:"fields"`
	}

	var out []categoryConfig
	for _, cs := range h.registry.Categories() {
		cfg := categoryConfig{
			Category:        cs.Category,
			Name:            cs.DisplayName,
			RequiresAccount: cs.RequiresAccount,
		}
		for _, col := range cs.Columns {
			cfg.Fields = append(cfg.Fields, fieldConfig{
				Name:     col.Field,
				Label:    col.Header,
				Required: col.Required,
				Example:  col.Example,
			})
		}
		out = append(out, cfg)
	}

	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}

func (h *Handler) respondRunError(c *gin.Context, err error) {
	var (
		uc apperrors.UnsupportedCategoryError
		sm apperrors.SchemaMismatchError
		wt apperrors.WrongTemplateError
	)

	switch {
	case errors.As(err, &sm):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Template mapping not matched",
			"details": gin.H{
				"message":         "The uploaded file does not match the expected template format.",
				"missingColumns":  sm.MissingColumns,
				"expectedColumns": sm.ExpectedColumns,
				"uploadedColumns": sm.UploadedColumns,
				"suggestion":      sm.Suggestion(),
			},
		})
	case errors.As(err, &wt):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Template mapping not matched",
			"details": gin.H{
				"message":         "The uploaded file appears to be for a different category or has incorrect format.",
				"expectedColumns": wt.ExpectedSample,
				"uploadedColumns": wt.UploadedSample,
				"suggestion":      wt.Suggestion(),
			},
		})
	case errors.As(err, &uc):
		c.JSON(http.StatusBadRequest, gin.H{"error": uc.Error()})
	case apperrors.IsRunError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("Import request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
