package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestBusinessError_Matching(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrBusiness("slot_conflict"))

	assert.True(t, IsBusiness(err, "slot_conflict"))
	assert.False(t, IsBusiness(err, "invalid_status"))
	assert.Equal(t, "slot_conflict", CodeOf(err))
	assert.Empty(t, CodeOf(errors.New("boom")))
}

func TestIsUniqueViolation(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
}

func TestBusiness_WritesMappedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	table := map[string]Response{
		"slot_conflict": {Status: http.StatusBadRequest, Message: "Horário já reservado."},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	assert.True(t, Business(c, ErrBusiness("slot_conflict"), table))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error_code":"slot_conflict","message":"Horário já reservado."}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	assert.False(t, Business(c, errors.New("db down"), table))
	assert.False(t, Business(c, ErrBusiness("unknown"), table))
	assert.Empty(t, w.Body.String())
}
