package plan

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// CreatePlan godoc
// @Summary      Create membership plan
// @Description  Creates a new membership plan. Staff only.
// @Tags         plans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        plan  body      CreatePlanRequest  true  "Plan"
// @Success      201   {object}  Plan
// @Failure      400   {object}  gin.H
// @Failure      500   {object}  gin.H
// @Router       /admin/plans [post]
func (h *Handler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	p := &Plan{
		Name:              req.Name,
		Type:              req.Type,
		DurationMonths:    req.DurationMonths,
		PriceCents:        req.PriceCents,
		Currency:          req.Currency,
		UnlimitedVisits:   req.UnlimitedVisits,
		MaxVisitsPerMonth: req.MaxVisitsPerMonth,
		Description:       req.Description,
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.repo.Create(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdatePlan godoc
// @Summary      Update membership plan
// @Description  Replaces a plan's pricing and visit terms. Staff only.
// @Tags         plans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        planID  path      int                true  "Plan ID"
// @Param        plan    body      CreatePlanRequest  true  "Plan"
// @Success      200     {object}  Plan
// @Failure      400     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /admin/plans/{planID} [put]
func (h *Handler) UpdatePlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	p := &Plan{
		ID:                planID,
		Name:              req.Name,
		Type:              req.Type,
		DurationMonths:    req.DurationMonths,
		PriceCents:        req.PriceCents,
		Currency:          req.Currency,
		UnlimitedVisits:   req.UnlimitedVisits,
		MaxVisitsPerMonth: req.MaxVisitsPerMonth,
		Description:       req.Description,
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ListPlans godoc
// @Summary      List active plans
// @Tags         plans
// @Produce      json
// @Success      200  {array}   Plan
// @Failure      500  {object}  gin.H
// @Router       /plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
		return
	}

	c.JSON(http.StatusOK, plans)
}

// ComparePlans godoc
// @Summary      Plan comparison
// @Description  Returns summaries of all active plans ordered by price.
// @Tags         plans
// @Produce      json
// @Success      200  {array}   Summary
// @Failure      500  {object}  gin.H
// @Router       /plans/compare [get]
func (h *Handler) ComparePlans(c *gin.Context) {
	plans, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
		return
	}

	summaries := make([]Summary, 0, len(plans))
	for i := range plans {
		summaries = append(summaries, plans[i].Summarize())
	}

	c.JSON(http.StatusOK, summaries)
}

// DeactivatePlan godoc
// @Summary      Deactivate plan
// @Tags         plans
// @Security     BearerAuth
// @Produce      json
// @Param        planID  path      int  true  "Plan ID"
// @Success      200     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /admin/plans/{planID}/deactivate [post]
func (h *Handler) DeactivatePlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	if err := h.repo.SetActive(c.Request.Context(), planID, false); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deactivated"})
}
