package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "carlog/internal/errors"
	"carlog/internal/middleware"
	"carlog/internal/service"
	"carlog/internal/validation"
)

// HistoryHandler handles vehicle history endpoints.
type HistoryHandler struct {
	historyService service.HistoryService
	logger         *zap.Logger
	debug          bool
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(historyService service.HistoryService, logger *zap.Logger, debug bool) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
		logger:         logger,
		debug:          debug,
	}
}

// CreateServiceRecord godoc
// @Summary Add a service record to an owned vehicle
// @Tags history
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body validation.ServiceRecordInput true "Service record data"
// @Success 201 {object} model.ServiceRecord
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /vehicles/{id}/services [post]
func (h *HistoryHandler) CreateServiceRecord(c echo.Context) error {
	// Authorization comes before body parsing: a missing session is 401
	// regardless of what the payload looks like.
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return writeError(c, h.logger, h.debug, apperrors.ErrUnauthorized)
	}

	var in validation.ServiceRecordInput
	if err := c.Bind(&in); err != nil {
		return writeError(c, h.logger, h.debug, apperrors.ErrNoInputData)
	}

	record, err := h.historyService.CreateServiceRecord(c.Request().Context(), principal, c.Param("id"), &in)
	if err != nil {
		return writeError(c, h.logger, h.debug, err)
	}

	return c.JSON(http.StatusCreated, record)
}

// CreateAccidentHistory godoc
// @Summary Add an accident record to an owned vehicle
// @Tags history
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body validation.AccidentHistoryInput true "Accident data"
// @Success 201 {object} model.AccidentHistory
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /vehicles/{id}/accidents [post]
func (h *HistoryHandler) CreateAccidentHistory(c echo.Context) error {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return writeError(c, h.logger, h.debug, apperrors.ErrUnauthorized)
	}

	var in validation.AccidentHistoryInput
	if err := c.Bind(&in); err != nil {
		return writeError(c, h.logger, h.debug, apperrors.ErrNoInputData)
	}

	record, err := h.historyService.CreateAccidentHistory(c.Request().Context(), principal, c.Param("id"), &in)
	if err != nil {
		return writeError(c, h.logger, h.debug, err)
	}

	return c.JSON(http.StatusCreated, record)
}
