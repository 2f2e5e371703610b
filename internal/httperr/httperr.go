package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

// Response status e mensagem pública de um código de negócio
type Response struct {
	Status  int
	Message string
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func ServiceUnavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

// Business responde o erro de negócio conforme a tabela. Devolve false
// (sem escrever nada) para erros de infraestrutura ou códigos desconhecidos.
func Business(c *gin.Context, err error, table map[string]Response) bool {
	code := CodeOf(err)
	resp, ok := table[code]
	if !ok {
		return false
	}
	Write(c, resp.Status, code, resp.Message)
	return true
}
