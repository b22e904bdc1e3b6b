package handlers

import (
	"fmt"
	"net/http"

	"github.com/mseongj/weather-outfit/apperr"
	"github.com/mseongj/weather-outfit/kma"
)

type weatherQuery struct {
	Gu string `validate:"required,max=32"`
}

// GetWeather는 GET /api/weather?gu=강서구 입니다. 현재 시각 기준 실황을 돌려줍니다.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	q := weatherQuery{Gu: r.URL.Query().Get("gu")}
	if err := h.validateQuery(q, apperr.ErrMissingDistrict,
		fmt.Errorf("'%s': %w", q.Gu, apperr.ErrInvalidDistrict)); err != nil {
		h.writeError(w, r, providerKMA, err)
		return
	}

	record, err := h.weather.Fetch(r.Context(), q.Gu, kma.ResolveBaseTime(h.clock()))
	if err != nil {
		h.writeError(w, r, providerKMA, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
