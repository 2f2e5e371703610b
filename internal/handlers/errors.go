package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendai-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agendai-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/agendai-scheduler/internal/httperr"
)

var businessResponses = map[string]httperr.Response{
	appointment.CodeSlotConflict:      {Status: http.StatusBadRequest, Message: "Horário já reservado."},
	appointment.CodeInvalidStatus:     {Status: http.StatusBadRequest, Message: "Status inválido."},
	appointment.CodeNotFound:          {Status: http.StatusNotFound, Message: "Agendamento não encontrado."},
	appointment.CodeInvalidDateOrTime: {Status: http.StatusBadRequest, Message: "Data ou hora inválida."},
	appointment.CodeInvalidEmail:      {Status: http.StatusBadRequest, Message: "E-mail inválido."},
	appointment.CodeInvalidRequest:    {Status: http.StatusBadRequest, Message: "Dados inválidos."},
	catalog.CodeServiceNotFound:       {Status: http.StatusNotFound, Message: "Serviço não encontrado."},
	catalog.CodeInvalidService:        {Status: http.StatusBadRequest, Message: "Dados do serviço inválidos."},
}

// writeError traduz erros de negócio; o resto vira 500 e vai para o log.
func writeError(c *gin.Context, log *slog.Logger, err error, fallbackCode string) {
	if httperr.Business(c, err, businessResponses) {
		return
	}

	log.ErrorContext(c.Request.Context(), "request failed",
		"route", c.FullPath(),
		"code", fallbackCode,
		"err", err,
	)
	httperr.Internal(c, fallbackCode, "Erro interno.")
}
