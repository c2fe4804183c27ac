package server

import (
	"context"
	"net/http"

	"gymcore/internal/auth"
	"gymcore/internal/booking"
	"gymcore/internal/class"
	"gymcore/internal/clock"
	"gymcore/internal/config"
	"gymcore/internal/dashboard"
	"gymcore/internal/email"
	"gymcore/internal/equipment"
	"gymcore/internal/member"
	"gymcore/internal/plan"
	"gymcore/internal/trainer"
	"gymcore/internal/visit"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	RegisterCustomValidators()

	clk := clock.System

	memberHandler := member.NewHandler(db, clk, cfg.JWTSecret)
	planHandler := plan.NewHandler(db)
	trainerService := trainer.NewService(trainer.NewRepository(db), clk)
	trainerHandler := trainer.NewHandlerWithService(trainerService)
	classHandler := class.NewHandler(db, trainerService, clk)
	bookingService := booking.NewService(
		booking.NewRepository(db),
		member.NewRepository(db),
		class.NewRepository(db),
		emailService,
		clk,
	)
	bookingHandler := booking.NewHandlerWithService(bookingService)
	visitService := visit.NewService(visit.NewRepository(db), member.NewRepository(db), clk)
	visitHandler := visit.NewHandlerWithService(visitService)
	equipmentService := equipment.NewService(equipment.NewRepository(db), clk)
	equipmentHandler := equipment.NewHandlerWithService(equipmentService)
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(
		dashboard.NewRepository(db),
		member.NewRepository(db),
		bookingService,
		visitService,
		equipmentService,
		clk,
	))

	public := router.Group("/auth")
	{
		public.POST("/register", memberHandler.Register)
		public.POST("/login", memberHandler.Login)
		public.POST("/refresh", memberHandler.Refresh)
	}

	authMiddleware := auth.Middleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", memberHandler.GetMe)
		protected.PATCH("/me", memberHandler.UpdateMe)
		protected.GET("/dashboard", dashboardHandler.GetMemberDashboard)

		protected.GET("/plans", planHandler.ListPlans)
		protected.GET("/plans/compare", planHandler.ComparePlans)

		protected.GET("/classes", classHandler.ListClasses)
		protected.GET("/classes/:classID", classHandler.GetClass)
		protected.GET("/classes/:classID/slots", classHandler.GetAvailableSlots)

		protected.POST("/bookings", bookingHandler.Book)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.GET("/bookings/upcoming", bookingHandler.ListUpcoming)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)

		protected.POST("/visits/check-in", visitHandler.CheckIn)
		protected.POST("/visits/check-out", visitHandler.CheckOut)
		protected.GET("/visits", visitHandler.GetHistory)

		protected.GET("/trainers/:trainerID/schedule", trainerHandler.GetSchedule)
		protected.GET("/trainers/:trainerID/availability", trainerHandler.CheckAvailability)
	}

	staffMiddleware := auth.RequireRole(auth.RoleStaff)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, staffMiddleware)
	{
		admin.GET("/dashboard", dashboardHandler.GetAdminDashboard)

		admin.GET("/members/:memberID", memberHandler.GetMember)
		admin.POST("/members/:memberID/plan", memberHandler.AssignPlan)
		admin.POST("/members/:memberID/extend", memberHandler.ExtendMembership)
		admin.POST("/members/:memberID/suspend", memberHandler.Suspend)
		admin.POST("/members/:memberID/reactivate", memberHandler.Reactivate)
		admin.DELETE("/members/:memberID", memberHandler.Deactivate)

		admin.POST("/plans", planHandler.CreatePlan)
		admin.PUT("/plans/:planID", planHandler.UpdatePlan)
		admin.DELETE("/plans/:planID", planHandler.DeactivatePlan)

		admin.POST("/classes", classHandler.CreateClass)
		admin.DELETE("/classes/:classID", classHandler.DeactivateClass)
		admin.GET("/classes/:classID/statistics", classHandler.GetStatistics)
		admin.GET("/classes/:classID/revenue", classHandler.GetRevenue)
		admin.GET("/classes/:classID/bookings", bookingHandler.ListClassBookings)

		admin.POST("/bookings/:bookingID/cancel", bookingHandler.AdminCancelBooking)
		admin.POST("/bookings/:bookingID/complete", bookingHandler.CompleteBooking)
		admin.POST("/bookings/:bookingID/no-show", bookingHandler.MarkNoShow)
		admin.GET("/statistics/bookings", bookingHandler.GetStats)

		admin.GET("/visits", visitHandler.GetDailyVisits)
		admin.GET("/statistics/visits", visitHandler.GetStatistics)

		admin.POST("/trainers", trainerHandler.CreateTrainer)
		admin.GET("/trainers/available", trainerHandler.ListAvailable)
		admin.POST("/trainers/:trainerID/working-hours", trainerHandler.AddWorkingHour)
		admin.GET("/trainers/:trainerID/statistics", trainerHandler.GetStatistics)

		admin.POST("/equipment", equipmentHandler.CreateEquipment)
		admin.GET("/equipment", equipmentHandler.ListEquipment)
		admin.GET("/equipment/maintenance-due", equipmentHandler.ListMaintenanceDue)
		admin.GET("/equipment/:equipmentID", equipmentHandler.GetEquipment)
		admin.POST("/equipment/:equipmentID/complete-maintenance", equipmentHandler.CompleteMaintenance)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
