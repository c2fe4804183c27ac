package trainer

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// CreateTrainer godoc
// @Summary      Create trainer
// @Tags         trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CreateTrainerRequest  true  "Trainer"
// @Success      201   {object}  Trainer
// @Failure      400   {object}  gin.H
// @Router       /admin/trainers [post]
func (h *Handler) CreateTrainer(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trainer"})
		return
	}

	c.JSON(http.StatusCreated, t)
}

// AddWorkingHour godoc
// @Summary      Add working-hour window
// @Tags         trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        trainerID  path      int                 true  "Trainer ID"
// @Param        body       body      WorkingHourRequest  true  "Window"
// @Success      201        {object}  WorkingHour
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /admin/trainers/{trainerID}/working-hours [post]
func (h *Handler) AddWorkingHour(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	var req WorkingHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	hour, err := h.service.AddWorkingHour(c.Request.Context(), trainerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
		case errors.Is(err, ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid working hours"})
		}
		return
	}

	c.JSON(http.StatusCreated, hour)
}

// GetSchedule godoc
// @Summary      Trainer day schedule
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int     true   "Trainer ID"
// @Param        date       query     string  false  "Date (YYYY-MM-DD), defaults to today"
// @Success      200        {object}  DaySchedule
// @Failure      400        {object}  gin.H
// @Router       /trainers/{trainerID}/schedule [get]
func (h *Handler) GetSchedule(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	date, ok := h.dateOrToday(c)
	if !ok {
		return
	}

	schedule, err := h.service.DayScheduleFor(c.Request.Context(), trainerID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// CheckAvailability godoc
// @Summary      Check trainer availability
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int     true  "Trainer ID"
// @Param        date       query     string  true  "Date (YYYY-MM-DD)"
// @Param        start      query     string  true  "Start time (HH:MM)"
// @Param        end        query     string  true  "End time (HH:MM)"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Router       /trainers/{trainerID}/availability [get]
func (h *Handler) CheckAvailability(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	dateStr := c.Query("date")
	start := c.Query("start")
	end := c.Query("end")
	if dateStr == "" || start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date, start and end query params are required"})
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return
	}

	available, err := h.service.IsAvailable(c.Request.Context(), trainerID, date, start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time range"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trainer_id": trainerID, "date": dateStr, "available": available})
}

// ListAvailable godoc
// @Summary      List available trainers for a slot
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        date   query     string  true  "Date (YYYY-MM-DD)"
// @Param        start  query     string  true  "Start time (HH:MM)"
// @Param        end    query     string  true  "End time (HH:MM)"
// @Success      200    {array}   Trainer
// @Failure      400    {object}  gin.H
// @Router       /admin/trainers/available [get]
func (h *Handler) ListAvailable(c *gin.Context) {
	dateStr := c.Query("date")
	start := c.Query("start")
	end := c.Query("end")
	if dateStr == "" || start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date, start and end query params are required"})
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return
	}

	trainers, err := h.service.AvailableTrainers(c.Request.Context(), date, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, trainers)
}

// GetStatistics godoc
// @Summary      Trainer statistics
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int  true  "Trainer ID"
// @Success      200        {object}  Statistics
// @Failure      400        {object}  gin.H
// @Router       /admin/trainers/{trainerID}/statistics [get]
func (h *Handler) GetStatistics(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	stats, err := h.service.Statistics(c.Request.Context(), trainerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) dateOrToday(c *gin.Context) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return time.Now(), true
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}
