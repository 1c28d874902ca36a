package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/schedule"
)

// Deps are the singletons built once at startup. DB is nil when the
// service runs on the in-memory store.
type Deps struct {
	Config *config.Config
	Repo   domain.Repository
	DB     *gorm.DB
	Locker lock.Locker
	Clock  timezone.Clock
	Audit  *audit.Dispatcher
	Logger zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		d.Repo,
		d.Locker,
		d.Clock,
		d.Audit,
		d.Config.LockWait,
	)
	listUC := ucAppointment.NewListAppointments(d.Repo, d.Clock)
	getUC := ucAppointment.NewGetAppointment(d.Repo)
	updateUC := ucAppointment.NewUpdateAppointmentStatus(d.Repo, d.Clock, d.Audit)
	deleteUC := ucAppointment.NewDeleteAppointment(d.Repo, d.Audit)
	availabilityUC := ucAppointment.NewGetAvailability(d.Repo, d.Clock)
	slotsUC := ucAppointment.NewListSlots(d.Repo, d.Clock)

	// ======================================================
	// USE CASES: SCHEDULE
	// ======================================================
	listDoctorsUC := ucSchedule.NewListDoctors(d.Repo)
	initializeUC := ucSchedule.NewInitializeSchedule(d.Repo, d.Audit, d.Logger)

	// ======================================================
	// HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(d.Repo)

	patientHandler := handlers.NewPatientHandler(
		listDoctorsUC,
		availabilityUC,
		slotsUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		listUC,
		getUC,
		updateUC,
		deleteUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(
		ucSchedule.NewGetWeeklySchedule(d.Repo),
		ucSchedule.NewUpdateWeeklyDay(d.Repo, d.Audit),
		ucSchedule.NewListDateOverrides(d.Repo),
		ucSchedule.NewSetDateOverride(d.Repo, d.Clock, d.Audit),
		ucSchedule.NewDeleteDateOverride(d.Repo, d.Clock, d.Audit),
		initializeUC,
		slotsUC,
	)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
	{
		api.GET("/me", meHandler.GetMe)

		// ------------------------------
		// PATIENTS
		// ------------------------------
		patients := api.Group("/patients")
		patients.Use(middleware.RequireRole(models.RolePatient))
		{
			patients.GET("/doctors", patientHandler.ListDoctors)
			patients.GET("/doctors/:id/availability", patientHandler.Availability)
			patients.GET("/doctors/:id/time-slots", patientHandler.TimeSlots)

			patients.POST("/appointments", appointmentHandler.Book)
			patients.GET("/appointments", appointmentHandler.List)
			patients.PUT("/appointments/:id/cancel", appointmentHandler.Cancel)
		}

		// ------------------------------
		// DOCTORS
		// ------------------------------
		doctors := api.Group("/doctors")
		doctors.Use(middleware.RequireRole(models.RoleDoctor))
		{
			doctors.GET("/myappointments", appointmentHandler.List)
			doctors.PUT("/myappointments/:id", appointmentHandler.UpdateStatus)

			doctors.GET("/weekly-availability", scheduleHandler.Weekly)
			doctors.PUT("/weekly-availability/:day", scheduleHandler.UpdateWeekly)

			doctors.GET("/availability", scheduleHandler.Overrides)
			doctors.PUT("/availability/:date", scheduleHandler.SetOverride)
			doctors.DELETE("/availability/:date", scheduleHandler.DeleteOverride)

			doctors.GET("/time-slots", scheduleHandler.TimeSlots)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/appointments", appointmentHandler.List)
			admin.GET("/appointments/:id", appointmentHandler.Get)
			admin.PUT("/appointments/:id", appointmentHandler.UpdateStatus)
			admin.DELETE("/appointments/:id", appointmentHandler.Delete)

			admin.POST("/admin/doctors/:id/schedule/init", scheduleHandler.Initialize)

			if d.DB != nil {
				admin.GET("/admin/audit-logs", handlers.NewAuditLogsHandler(d.DB).List)
			}
		}
	}
}
