package equipment

import (
	"errors"
	"net/http"
	"strconv"

	"gymcore/internal/clock"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, clk clock.Clock) *Handler {
	return &Handler{service: NewService(NewRepository(db), clk)}
}

func NewHandlerWithService(service Service) *Handler {
	return &Handler{service: service}
}

// CreateEquipment godoc
// @Summary      Register equipment
// @Tags         equipment
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CreateEquipmentRequest  true  "Equipment"
// @Success      201   {object}  Equipment
// @Failure      400   {object}  gin.H
// @Failure      409   {object}  gin.H
// @Router       /admin/equipment [post]
func (h *Handler) CreateEquipment(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSerialExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrPurchaseAfterWarranty), errors.Is(err, ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create equipment"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListEquipment godoc
// @Summary      List equipment
// @Tags         equipment
// @Security     BearerAuth
// @Produce      json
// @Param        category  query     string  false  "Filter by category"
// @Param        location  query     string  false  "Filter by location"
// @Success      200  {array}   Equipment
// @Failure      500  {object}  gin.H
// @Router       /admin/equipment [get]
func (h *Handler) ListEquipment(c *gin.Context) {
	filter := ListFilter{
		Category: c.Query("category"),
		Location: c.Query("location"),
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch equipment"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetEquipment godoc
// @Summary      Equipment details with current status
// @Tags         equipment
// @Security     BearerAuth
// @Produce      json
// @Param        equipmentID  path      int  true  "Equipment ID"
// @Success      200          {object}  Equipment
// @Failure      404          {object}  gin.H
// @Router       /admin/equipment/{equipmentID} [get]
func (h *Handler) GetEquipment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("equipmentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment ID"})
		return
	}

	// Reads refresh the derived status so a stale row never reports
	// Operational past its warranty.
	e, err := h.service.RefreshStatus(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEquipmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch equipment"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ListMaintenanceDue godoc
// @Summary      Equipment due for maintenance
// @Tags         equipment
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Equipment
// @Failure      500  {object}  gin.H
// @Router       /admin/equipment/maintenance-due [get]
func (h *Handler) ListMaintenanceDue(c *gin.Context) {
	items, err := h.service.MaintenanceDue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch equipment"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// CompleteMaintenance godoc
// @Summary      Complete a maintenance cycle
// @Tags         equipment
// @Security     BearerAuth
// @Produce      json
// @Param        equipmentID  path      int  true  "Equipment ID"
// @Success      200          {object}  Equipment
// @Failure      404          {object}  gin.H
// @Router       /admin/equipment/{equipmentID}/complete-maintenance [post]
func (h *Handler) CompleteMaintenance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("equipmentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment ID"})
		return
	}

	e, err := h.service.CompleteMaintenance(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEquipmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Equipment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete maintenance"})
		return
	}

	c.JSON(http.StatusOK, e)
}
