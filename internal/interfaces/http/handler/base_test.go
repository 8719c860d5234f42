package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/staff"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Set(middleware.RequestIDKey, "req-1")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	t.Run("domain errors keep their code", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newContext("/")
		h.HandleError(c, shared.NotFound("order", "o-1"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decode(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "req-1", resp.Error.RequestID)
	})

	t.Run("invalid state answers 422", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newContext("/")
		h.HandleError(c, &shared.DomainError{Code: "INVALID_STATE", Message: "already paid"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, decode(t, w).Error.Code)
	})

	t.Run("other errors are logged and hidden", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		h := &BaseHandler{logger: zap.New(core)}
		c, w := newContext("/")
		h.HandleError(c, errors.New("redis: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decode(t, w)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "redis")
		assert.Equal(t, 1, logs.Len())
	})
}

func TestRespondList(t *testing.T) {
	members := []staff.Staff{
		{ID: "s-1", Name: "Budi", Email: "budi@example.com"},
		{ID: "s-2", Name: "Rina", Email: "rina@example.com"},
		{ID: "s-3", Name: "Dewi", Email: "dewi@example.com"},
	}
	matches := func(m staff.Staff, term string) bool { return containsFold(term, m.Name, m.Email) }

	tests := []struct {
		name      string
		target    string
		wantIDs   []string
		wantTotal int64
	}{
		{"defaults", "/", []string{"s-1", "s-2", "s-3"}, 3},
		{"second page", "/?page=2&page_size=2", []string{"s-3"}, 3},
		{"search ignores case", "/?search=RINA", []string{"s-2"}, 1},
		{"no match", "/?search=zzz", []string{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newContext(tt.target)
			respondList(h, c, members, matches)

			require.Equal(t, http.StatusOK, w.Code)
			var resp struct {
				Data []staff.Staff `json:"data"`
				Meta dto.Meta      `json:"meta"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			ids := make([]string, 0, len(resp.Data))
			for _, m := range resp.Data {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantTotal, resp.Meta.Total)
		})
	}

	t.Run("invalid query", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newContext("/?page_size=500")
		respondList(h, c, members, matches)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestParseTrigger(t *testing.T) {
	tests := []struct {
		in      string
		want    staff.Trigger
		wantErr bool
	}{
		{"On Order Paid", staff.TriggerOrderPaid, false},
		{"paid", staff.TriggerOrderPaid, false},
		{" Delivered ", staff.TriggerOrderDelivered, false},
		{"on order delivered", staff.TriggerOrderDelivered, false},
		{"shipped", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTrigger(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
