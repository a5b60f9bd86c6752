package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mostafa-azimi/touring-app-sub000/internal/application"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/middleware"
)

// CatalogHandlers contains HTTP handlers for reference data endpoints
type CatalogHandlers struct {
	catalog *application.CatalogService
	logger  *logging.Logger
	respond func(c *gin.Context, err error)
}

// NewCatalogHandlers creates catalog HTTP handlers
func NewCatalogHandlers(catalog *application.CatalogService, logger *logging.Logger) *CatalogHandlers {
	return &CatalogHandlers{
		catalog: catalog,
		logger:  logger,
		respond: middleware.ErrorResponder(logger.Logger),
	}
}

// CreateWarehouse handles POST /api/v1/warehouses
func (h *CatalogHandlers) CreateWarehouse() gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.SaveWarehouseCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			h.respond(c, appErr)
			return
		}

		warehouse, err := h.catalog.SaveWarehouse(c.Request.Context(), cmd)
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, warehouse)
	}
}

// ListWarehouses handles GET /api/v1/warehouses
func (h *CatalogHandlers) ListWarehouses() gin.HandlerFunc {
	return func(c *gin.Context) {
		warehouses, err := h.catalog.ListWarehouses(c.Request.Context())
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"warehouses": warehouses, "count": len(warehouses)})
	}
}

// GetWarehouse handles GET /api/v1/warehouses/:id
func (h *CatalogHandlers) GetWarehouse() gin.HandlerFunc {
	return func(c *gin.Context) {
		warehouse, err := h.catalog.GetWarehouse(c.Request.Context(), c.Param("id"))
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, warehouse)
	}
}

// DeleteWarehouse handles DELETE /api/v1/warehouses/:id
func (h *CatalogHandlers) DeleteWarehouse() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.catalog.DeleteWarehouse(c.Request.Context(), c.Param("id")); err != nil {
			h.respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// CreateTeamMember handles POST /api/v1/team-members
func (h *CatalogHandlers) CreateTeamMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.SaveTeamMemberCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			h.respond(c, appErr)
			return
		}

		member, err := h.catalog.SaveTeamMember(c.Request.Context(), cmd)
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, member)
	}
}

// ListTeamMembers handles GET /api/v1/team-members
func (h *CatalogHandlers) ListTeamMembers() gin.HandlerFunc {
	return func(c *gin.Context) {
		members, err := h.catalog.ListTeamMembers(c.Request.Context())
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"teamMembers": members, "count": len(members)})
	}
}

// DeleteTeamMember handles DELETE /api/v1/team-members/:memberId
func (h *CatalogHandlers) DeleteTeamMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.catalog.DeleteTeamMember(c.Request.Context(), c.Param("memberId")); err != nil {
			h.respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// SaveSwagItem handles POST /api/v1/swag-items
func (h *CatalogHandlers) SaveSwagItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.SaveSwagItemCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			h.respond(c, appErr)
			return
		}

		item, err := h.catalog.SaveSwagItem(c.Request.Context(), cmd)
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// ListSwagItems handles GET /api/v1/swag-items
func (h *CatalogHandlers) ListSwagItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly := c.Query("active") == "true"
		items, err := h.catalog.ListSwagItems(c.Request.Context(), activeOnly)
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"swagItems": items, "count": len(items)})
	}
}

// DeleteSwagItem handles DELETE /api/v1/swag-items/:sku
func (h *CatalogHandlers) DeleteSwagItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.catalog.DeleteSwagItem(c.Request.Context(), c.Param("sku")); err != nil {
			h.respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ListExtraCustomers handles GET /api/v1/extra-customers
func (h *CatalogHandlers) ListExtraCustomers() gin.HandlerFunc {
	return func(c *gin.Context) {
		extras, err := h.catalog.ListExtraCustomers(c.Request.Context())
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"extraCustomers": extras, "count": len(extras)})
	}
}

// GetSettings handles GET /api/v1/settings
func (h *CatalogHandlers) GetSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := h.catalog.GetSettings(c.Request.Context())
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// UpdateSettings handles PUT /api/v1/settings
func (h *CatalogHandlers) UpdateSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.UpdateSettingsCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			h.respond(c, appErr)
			return
		}

		settings, err := h.catalog.UpdateSettings(c.Request.Context(), cmd)
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// UpdateRefreshToken handles PUT /api/v1/settings/refresh-token
func (h *CatalogHandlers) UpdateRefreshToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.UpdateRefreshTokenCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			h.respond(c, appErr)
			return
		}

		if err := h.catalog.UpdateRefreshToken(c.Request.Context(), cmd); err != nil {
			h.respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
