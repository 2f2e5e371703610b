package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendai-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/agendai-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agendai-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/agendai-scheduler/internal/handlers"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agendai-scheduler/internal/metrics"
	"github.com/BruksfildServices01/agendai-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/agendai-scheduler/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/agendai-scheduler/internal/usecase/catalog"
)

// Deps dependências já construídas pelo main (ou pelos testes).
type Deps struct {
	Appointments domain.Repository
	Catalog      catalog.Repository

	// DB é nil com o driver em memória: sem rota de auditoria.
	DB *gorm.DB

	Audit    *audit.Dispatcher
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Log      *slog.Logger
	Now      func() time.Time

	CORSOrigins []string
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log, d.Metrics))
	r.Use(middleware.CORSMiddleware(d.CORSOrigins))

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(d.Appointments, d.Audit, d.Metrics)
	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(d.Appointments, d.Audit, d.Metrics, d.Now)
	listAppointmentsUC := ucAppointment.NewListAppointments(d.Appointments)
	availabilityUC := ucAppointment.NewGetAvailability(d.Appointments)

	listCatalogUC := ucCatalog.NewListCatalog(d.Catalog)
	updateServiceUC := ucCatalog.NewUpdateService(d.Catalog, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		listAppointmentsUC,
		availabilityUC,
		d.Log,
	)
	catalogHandler := handlers.NewCatalogHandler(listCatalogUC, updateServiceUC, d.Log)

	// ======================================================
	// 🩺 INFRA
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		if d.DB != nil {
			sqlDB, err := d.DB.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				httperr.ServiceUnavailable(c, "database_unavailable", "Banco de dados indisponível.")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.List)
		api.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
		api.POST("/appointments/available-slots", appointmentHandler.AvailableSlots)

		api.GET("/services", catalogHandler.ListServices)
		api.PUT("/services/:id", catalogHandler.UpdateService)
		api.GET("/professionals", catalogHandler.ListProfessionals)

		if d.DB != nil {
			auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Log)
			api.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
