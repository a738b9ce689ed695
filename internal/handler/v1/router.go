package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/redsoft-clinic/clinicflow/internal/domain"
	"github.com/redsoft-clinic/clinicflow/internal/handler/middleware"
	"github.com/redsoft-clinic/clinicflow/pkg/auth"
	"github.com/redsoft-clinic/clinicflow/pkg/metrics"
)

type RouterDeps struct {
	JWTManager   *auth.JWTManager
	Collector    *metrics.Collector
	Log          *zap.Logger
	Auth         *AuthHandler
	Doctor       *DoctorHandler
	Schedule     *ScheduleHandler
	Consultation *ConsultationHandler
	Patient      *PatientHandler
}

// NewRouter wires every v1 route with its middleware chain.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Log))
	if deps.Collector != nil {
		r.Use(middleware.Metrics(deps.Collector))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", deps.Auth.Login)
		authGroup.POST("/refresh", deps.Auth.Refresh)
		authGroup.POST("/change-password",
			middleware.Authenticate(deps.JWTManager), deps.Auth.ChangePassword)
	}

	protected := api.Group("")
	protected.Use(middleware.Authenticate(deps.JWTManager))

	staff := middleware.RequireRole(domain.RoleAdmin, domain.RoleReceptionist, domain.RoleDoctor)
	scheduling := middleware.RequireRole(domain.RoleAdmin, domain.RoleReceptionist)
	admin := middleware.RequireRole(domain.RoleAdmin)

	doctors := protected.Group("/doctors")
	{
		doctors.POST("", admin, deps.Doctor.Create)
		doctors.GET("", staff, deps.Doctor.List)
		doctors.GET("/:id", staff, deps.Doctor.Get)
		doctors.DELETE("/:id", admin, deps.Doctor.Deactivate)

		doctors.POST("/:id/schedule", scheduling, deps.Schedule.Generate)
		doctors.GET("/:id/schedule", staff, deps.Schedule.ListForDoctor)
		doctors.DELETE("/:id/schedule", scheduling, deps.Schedule.DeleteRange)

		doctors.GET("/:id/slots", staff, deps.Doctor.Slots)
	}

	schedule := protected.Group("/schedule")
	{
		schedule.GET("/days/:date/doctors", staff, deps.Schedule.DoctorsForDate)
	}

	slots := protected.Group("/slots")
	{
		slots.GET("/catalog", staff, deps.Schedule.Catalog)
		slots.GET("/options", staff, deps.Schedule.SlotOptions)
	}

	consultations := protected.Group("/consultations")
	consultations.Use(staff)
	{
		consultations.POST("", deps.Consultation.Book)
		consultations.GET("", deps.Consultation.List)
		consultations.GET("/:id", deps.Consultation.Get)
		consultations.POST("/:id/cancel", deps.Consultation.Cancel)
		consultations.POST("/:id/confirm", deps.Consultation.Confirm)
		consultations.POST("/:id/complete", deps.Consultation.Complete)
	}

	patients := protected.Group("/patients")
	patients.Use(staff)
	{
		patients.POST("", deps.Patient.Create)
		patients.GET("", deps.Patient.List)
		patients.GET("/:id", deps.Patient.Get)
		patients.DELETE("/:id", deps.Patient.Deactivate)
	}

	return r
}
