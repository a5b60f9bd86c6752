package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mostafa-azimi/touring-app-sub000/internal/application"
	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/middleware"
)

// TourHandlers contains HTTP handlers for tour endpoints
type TourHandlers struct {
	tours        *application.TourService
	finalization *application.FinalizationService
	cancellation *application.CancellationService
	logger       *logging.Logger
	respond      func(c *gin.Context, err error)
}

// NewTourHandlers creates tour HTTP handlers
func NewTourHandlers(
	tours *application.TourService,
	finalization *application.FinalizationService,
	cancellation *application.CancellationService,
	logger *logging.Logger,
) *TourHandlers {
	return &TourHandlers{
		tours:        tours,
		finalization: finalization,
		cancellation: cancellation,
		logger:       logger,
		respond:      middleware.ErrorResponder(logger.Logger),
	}
}

// CreateTour handles POST /api/v1/tours
func (h *TourHandlers) CreateTour() gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.ScheduleTourCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			h.respond(c, appErr)
			return
		}

		tour, err := h.tours.CreateTour(c.Request.Context(), cmd)
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, tour)
	}
}

// ListTours handles GET /api/v1/tours
func (h *TourHandlers) ListTours() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
		offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

		tours, err := h.tours.ListTours(c.Request.Context(), c.Query("status"), limit, offset)
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tours": tours, "count": len(tours)})
	}
}

// GetTour handles GET /api/v1/tours/:tourId
func (h *TourHandlers) GetTour() gin.HandlerFunc {
	return func(c *gin.Context) {
		tour, err := h.tours.GetTour(c.Request.Context(), c.Param("tourId"))
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, tour)
	}
}

// DeleteTour handles DELETE /api/v1/tours/:tourId
func (h *TourHandlers) DeleteTour() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.tours.DeleteTour(c.Request.Context(), c.Param("tourId")); err != nil {
			h.respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ConfigureWorkflow handles PUT /api/v1/tours/:tourId/workflows
func (h *TourHandlers) ConfigureWorkflow() gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.ConfigureWorkflowCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			h.respond(c, appErr)
			return
		}

		tour, err := h.tours.ConfigureWorkflow(c.Request.Context(), c.Param("tourId"), cmd)
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, tour)
	}
}

// RemoveWorkflow handles DELETE /api/v1/tours/:tourId/workflows/:kind
func (h *TourHandlers) RemoveWorkflow() gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := domain.WorkflowKind(c.Param("kind"))
		if !kind.IsValid() {
			middleware.AbortWithValidation(c, "unknown workflow kind")
			return
		}

		tour, err := h.tours.RemoveWorkflow(c.Request.Context(), c.Param("tourId"), kind)
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, tour)
	}
}

// ValidateTour handles POST /api/v1/tours/:tourId/validate
func (h *TourHandlers) ValidateTour() gin.HandlerFunc {
	return func(c *gin.Context) {
		tour, err := h.tours.ValidateTour(c.Request.Context(), c.Param("tourId"))
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, tour)
	}
}

// FinalizeTour handles POST /api/v1/tours/:tourId/finalize
func (h *TourHandlers) FinalizeTour() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.finalization.Finalize(c.Request.Context(), c.Param("tourId"))
		if err != nil {
			h.respond(c, err)
			return
		}

		// Partial failure still returns the full result; the status code
		// tells the client whether every order landed.
		status := http.StatusOK
		if !result.Success {
			status = http.StatusMultiStatus
		}
		c.JSON(status, result)
	}
}

// CancelOrders handles POST /api/v1/tours/:tourId/cancel
func (h *TourHandlers) CancelOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		var scope application.CancelScope
		if appErr := middleware.BindAndValidate(c, &scope); appErr != nil {
			h.respond(c, appErr)
			return
		}

		result, err := h.cancellation.CancelOrders(c.Request.Context(), c.Param("tourId"), scope)
		if err != nil {
			h.respond(c, err)
			return
		}

		status := http.StatusOK
		if result.Failed > 0 {
			status = http.StatusMultiStatus
		}
		c.JSON(status, result)
	}
}

// AddParticipant handles POST /api/v1/tours/:tourId/participants
func (h *TourHandlers) AddParticipant() gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd application.AddParticipantCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			h.respond(c, appErr)
			return
		}

		participant, err := h.tours.AddParticipant(c.Request.Context(), c.Param("tourId"), cmd)
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, participant)
	}
}

// ListParticipants handles GET /api/v1/tours/:tourId/participants
func (h *TourHandlers) ListParticipants() gin.HandlerFunc {
	return func(c *gin.Context) {
		participants, err := h.tours.ListParticipants(c.Request.Context(), c.Param("tourId"))
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"participants": participants, "count": len(participants)})
	}
}

// ImportParticipants handles POST /api/v1/tours/:tourId/participants/import
func (h *TourHandlers) ImportParticipants() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			middleware.AbortWithValidation(c, "multipart file field 'file' is required")
			return
		}
		defer file.Close()

		result, err := h.tours.ImportParticipantsCSV(c.Request.Context(), c.Param("tourId"), file)
		if err != nil {
			h.respond(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
