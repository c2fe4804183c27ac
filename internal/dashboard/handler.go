package dashboard

import (
	"net/http"

	"gymcore/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMemberDashboard godoc
// @Summary      Member dashboard
// @Description  Membership state, upcoming bookings and this month's visits.
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  MemberOverview
// @Failure      500  {object}  gin.H
// @Router       /dashboard [get]
func (h *Handler) GetMemberDashboard(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	overview, err := h.service.MemberOverview(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetAdminDashboard godoc
// @Summary      Admin dashboard
// @Description  Month-to-date rollups across members, visits, bookings and equipment.
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  AdminOverview
// @Failure      500  {object}  gin.H
// @Router       /admin/dashboard [get]
func (h *Handler) GetAdminDashboard(c *gin.Context) {
	overview, err := h.service.AdminOverview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, overview)
}
