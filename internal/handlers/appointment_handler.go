package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/agendai-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agendai-scheduler/internal/dto"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/agendai-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	updateStatus *ucAppointment.UpdateAppointmentStatus
	list         *ucAppointment.ListAppointments
	availability *ucAppointment.GetAvailability
	log          *slog.Logger
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	updateStatus *ucAppointment.UpdateAppointmentStatus,
	list *ucAppointment.ListAppointments,
	availability *ucAppointment.GetAvailability,
	log *slog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		updateStatus: updateStatus,
		list:         list,
		availability: availability,
		log:          log,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, domain.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Client:      req.Client,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		ProID:       req.ProID,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		writeError(c, h.log, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	filter := domain.ListFilter{Client: c.Query("client")}

	if raw := c.Query("proId"); raw != "" {
		proID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, domain.CodeInvalidRequest, "Profissional inválido.")
			return
		}
		filter.ProID = uint(proID)
	}

	apps, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.log, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, apps)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, domain.CodeInvalidStatus, "Status inválido.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, h.log, err, "failed_to_update_appointment")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	var req dto.AvailableSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, domain.CodeInvalidRequest, "Data e profissional obrigatórios.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		Date:  req.Date,
		ProID: req.ProID,
	})
	if err != nil {
		writeError(c, h.log, err, "failed_to_get_availability")
		return
	}

	httpresp.OK(c, slots)
}
