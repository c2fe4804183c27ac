package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymcore/internal/auth"
	"gymcore/internal/class"
	"gymcore/internal/clock"
	"gymcore/internal/member"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, notifier Notifier, clk clock.Clock) *Handler {
	return &Handler{
		service: NewService(
			NewRepository(db),
			member.NewRepository(db),
			class.NewRepository(db),
			notifier,
			clk,
		),
	}
}

func NewHandlerWithService(service Service) *Handler {
	return &Handler{service: service}
}

// Book godoc
// @Summary      Book a class slot
// @Description  Creates a confirmed booking when every booking rule passes.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      BookRequest  true  "Slot"
// @Success      201   {object}  Booking
// @Failure      400   {object}  gin.H
// @Failure      403   {object}  gin.H
// @Failure      404   {object}  gin.H
// @Failure      409   {object}  gin.H
// @Router       /bookings [post]
func (h *Handler) Book(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	booking, err := h.service.Book(c.Request.Context(), memberID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidMembership):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrClassInactive), errors.Is(err, ErrInvalidSlot), errors.Is(err, ErrPastBooking):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrClassFull), errors.Is(err, ErrDuplicateBooking):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, class.ErrClassNotFound), errors.Is(err, member.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// CancelBooking godoc
// @Summary      Cancel own booking
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      int            true   "Booking ID"
// @Param        body       body      CancelRequest  false  "Reason"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	h.cancel(c, memberID)
}

// AdminCancelBooking godoc
// @Summary      Cancel any booking
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      int            true   "Booking ID"
// @Param        body       body      CancelRequest  false  "Reason"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /admin/bookings/{bookingID}/cancel [post]
func (h *Handler) AdminCancelBooking(c *gin.Context) {
	h.cancel(c, 0)
}

func (h *Handler) cancel(c *gin.Context, memberID int) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	if err := h.service.Cancel(c.Request.Context(), memberID, bookingID, req.Reason); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own bookings"})
		case errors.Is(err, ErrAlreadyCancelled), errors.Is(err, ErrAlreadyCompleted),
			errors.Is(err, ErrAlreadyNoShow), errors.Is(err, ErrNotConfirmed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

// CompleteBooking godoc
// @Summary      Mark booking as attended
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /admin/bookings/{bookingID}/complete [post]
func (h *Handler) CompleteBooking(c *gin.Context) {
	h.markStatus(c, h.service.Complete, "Booking completed")
}

// MarkNoShow godoc
// @Summary      Mark booking as no show
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /admin/bookings/{bookingID}/no-show [post]
func (h *Handler) MarkNoShow(c *gin.Context) {
	h.markStatus(c, h.service.MarkNoShow, "Booking marked as no show")
}

func (h *Handler) markStatus(c *gin.Context, transition func(ctx context.Context, bookingID int) error, message string) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := transition(c.Request.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrAlreadyCancelled), errors.Is(err, ErrAlreadyCompleted),
			errors.Is(err, ErrAlreadyNoShow), errors.Is(err, ErrNotConfirmed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {array}   BookingWithDetails
// @Failure      500     {object}  gin.H
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	bookings, err := h.service.MemberBookings(c.Request.Context(), memberID, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListUpcoming godoc
// @Summary      List my upcoming bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BookingWithDetails
// @Failure      500  {object}  gin.H
// @Router       /bookings/upcoming [get]
func (h *Handler) ListUpcoming(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	bookings, err := h.service.Upcoming(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListClassBookings godoc
// @Summary      List bookings of a class
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int     true   "Class ID"
// @Param        date     query     string  false  "Filter by date (YYYY-MM-DD)"
// @Success      200      {array}   BookingWithDetails
// @Failure      400      {object}  gin.H
// @Router       /admin/classes/{classID}/bookings [get]
func (h *Handler) ListClassBookings(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	var date *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	bookings, err := h.service.ClassBookings(c.Request.Context(), classID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetStats godoc
// @Summary      Booking statistics
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        from  query     string  false  "Range start (YYYY-MM-DD)"
// @Param        to    query     string  false  "Range end (YYYY-MM-DD)"
// @Success      200   {object}  Stats
// @Failure      400   {object}  gin.H
// @Router       /admin/statistics/bookings [get]
func (h *Handler) GetStats(c *gin.Context) {
	var from, to *time.Time

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, use YYYY-MM-DD"})
			return
		}
		from = &parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, use YYYY-MM-DD"})
			return
		}
		to = &parsed
	}

	stats, err := h.service.Stats(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
