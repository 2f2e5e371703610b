package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendai-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/agendai-scheduler/internal/dto"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httpresp"
	ucCatalog "github.com/BruksfildServices01/agendai-scheduler/internal/usecase/catalog"
)

type CatalogHandler struct {
	list          *ucCatalog.ListCatalog
	updateService *ucCatalog.UpdateService
	log           *slog.Logger
}

func NewCatalogHandler(
	list *ucCatalog.ListCatalog,
	updateService *ucCatalog.UpdateService,
	log *slog.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		list:          list,
		updateService: updateService,
		log:           log,
	}
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.list.Services(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "failed_to_list_services")
		return
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, catalog.CodeInvalidService, "Serviço inválido.")
		return
	}

	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, catalog.CodeInvalidService, "Dados do serviço inválidos.")
		return
	}

	svc, err := h.updateService.Execute(c.Request.Context(), uint(id), catalog.ServiceUpdate{
		Name:     req.Name,
		Duration: req.Duration,
		Price:    req.Price,
	})
	if err != nil {
		writeError(c, h.log, err, "failed_to_update_service")
		return
	}

	httpresp.OK(c, svc)
}

func (h *CatalogHandler) ListProfessionals(c *gin.Context) {
	pros, err := h.list.Professionals(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "failed_to_list_professionals")
		return
	}
	httpresp.List(c, pros)
}
