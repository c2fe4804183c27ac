package visit

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymcore/internal/auth"
	"gymcore/internal/clock"
	"gymcore/internal/member"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, clk clock.Clock) *Handler {
	return &Handler{service: NewService(NewRepository(db), member.NewRepository(db), clk)}
}

func NewHandlerWithService(service Service) *Handler {
	return &Handler{service: service}
}

// CheckIn godoc
// @Summary      Check in to the gym
// @Tags         visits
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        visit  body      CheckInRequest  false  "Visit details"
// @Success      201    {object}  Visit
// @Failure      403    {object}  gin.H
// @Failure      409    {object}  gin.H
// @Router       /visits/check-in [post]
func (h *Handler) CheckIn(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	// Body is optional; a bare check-in is a plain gym floor visit.
	var req CheckInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	v, err := h.service.CheckIn(c.Request.Context(), memberID, req.VisitType, req.TrainerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidMembership):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAlreadyCheckedIn):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check in"})
		}
		return
	}

	c.JSON(http.StatusCreated, v)
}

// CheckOut godoc
// @Summary      Check out of the gym
// @Tags         visits
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Visit
// @Failure      400  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /visits/check-out [post]
func (h *Handler) CheckOut(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	v, err := h.service.CheckOut(c.Request.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoActiveSession):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInvalidTimeOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check out"})
		}
		return
	}

	c.JSON(http.StatusOK, v)
}

// GetHistory godoc
// @Summary      My visit history
// @Tags         visits
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 50)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {array}   Visit
// @Failure      500     {object}  gin.H
// @Router       /visits [get]
func (h *Handler) GetHistory(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	visits, err := h.service.History(c.Request.Context(), memberID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch visits"})
		return
	}

	c.JSON(http.StatusOK, visits)
}

// GetDailyVisits godoc
// @Summary      Visits for a date
// @Tags         visits
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  false  "Date (YYYY-MM-DD), defaults to today"
// @Success      200   {array}   VisitWithMember
// @Failure      400   {object}  gin.H
// @Router       /admin/visits [get]
func (h *Handler) GetDailyVisits(c *gin.Context) {
	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	visits, err := h.service.DailyVisits(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch visits"})
		return
	}

	c.JSON(http.StatusOK, visits)
}

// GetStatistics godoc
// @Summary      Visit statistics
// @Description  Defaults to the current month when no range is given.
// @Tags         visits
// @Security     BearerAuth
// @Produce      json
// @Param        from  query     string  false  "Range start (YYYY-MM-DD)"
// @Param        to    query     string  false  "Range end (YYYY-MM-DD)"
// @Success      200   {object}  Statistics
// @Failure      400   {object}  gin.H
// @Router       /admin/statistics/visits [get]
func (h *Handler) GetStatistics(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr == "" && toStr == "" {
		stats, err := h.service.MonthStatistics(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
		return
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, use YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, use YYYY-MM-DD"})
		return
	}

	stats, err := h.service.RangeStatistics(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
