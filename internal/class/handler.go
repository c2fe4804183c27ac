package class

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymcore/internal/clock"
	"gymcore/internal/trainer"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, trainers trainer.Service, clk clock.Clock) *Handler {
	return &Handler{service: NewService(NewRepository(db), trainers, clk)}
}

func NewHandlerWithService(service Service) *Handler {
	return &Handler{service: service}
}

// CreateClass godoc
// @Summary      Create class
// @Tags         classes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CreateClassRequest  true  "Class"
// @Success      201   {object}  Class
// @Failure      400   {object}  gin.H
// @Failure      409   {object}  gin.H
// @Router       /admin/classes [post]
func (h *Handler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTrainerUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInvalidCapacity), errors.Is(err, ErrEmptySchedule):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create class"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListClasses godoc
// @Summary      List active classes
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Class
// @Failure      500  {object}  gin.H
// @Router       /classes [get]
func (h *Handler) ListClasses(c *gin.Context) {
	classes, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// GetClass godoc
// @Summary      Class details with schedule
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int  true  "Class ID"
// @Success      200      {object}  Class
// @Failure      404      {object}  gin.H
// @Router       /classes/{classID} [get]
func (h *Handler) GetClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	cls, err := h.service.Get(c.Request.Context(), classID)
	if err != nil {
		if errors.Is(err, ErrClassNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch class"})
		return
	}

	c.JSON(http.StatusOK, cls)
}

// GetAvailableSlots godoc
// @Summary      Bookable slots of a class on a date
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int     true   "Class ID"
// @Param        date     query     string  false  "Date (YYYY-MM-DD), defaults to today"
// @Success      200      {array}   AvailableSlot
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /classes/{classID}/slots [get]
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
			return
		}
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), classID, date)
	if err != nil {
		if errors.Is(err, ErrClassNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch slots"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// GetStatistics godoc
// @Summary      Class booking statistics
// @Tags         classes
// @Security     BearerAuth
// @Produce     json
// @Param        classID  path      int  true  "Class ID"
// @Success      200      {object}  Statistics
// @Failure      404      {object}  gin.H
// @Router       /admin/classes/{classID}/statistics [get]
func (h *Handler) GetStatistics(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	stats, err := h.service.Statistics(c.Request.Context(), classID)
	if err != nil {
		if errors.Is(err, ErrClassNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetRevenue godoc
// @Summary      Class revenue over a date range
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int     true  "Class ID"
// @Param        from     query     string  true  "Range start (YYYY-MM-DD)"
// @Param        to       query     string  true  "Range end (YYYY-MM-DD)"
// @Success      200      {object}  gin.H
// @Failure      400      {object}  gin.H
// @Router       /admin/classes/{classID}/revenue [get]
func (h *Handler) GetRevenue(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, use YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, use YYYY-MM-DD"})
		return
	}

	revenue, err := h.service.Revenue(c.Request.Context(), classID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch revenue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"class_id": classID, "revenue_cents": revenue})
}

// DeactivateClass godoc
// @Summary      Deactivate class
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int  true  "Class ID"
// @Success      200      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/classes/{classID} [delete]
func (h *Handler) DeactivateClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), classID); err != nil {
		if errors.Is(err, ErrClassNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate class"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Class deactivated"})
}
