package handlers

import (
	"fmt"
	"net/http"

	"github.com/mseongj/weather-outfit/apperr"
)

// GetRecommend는 GET /api/recommend?gu=강서구 입니다.
// 날씨, 코디, 이미지를 한 번에 돌려주며 이미지 실패는 degraded 로 200 응답합니다.
func (h *Handler) GetRecommend(w http.ResponseWriter, r *http.Request) {
	q := weatherQuery{Gu: r.URL.Query().Get("gu")}
	if err := h.validateQuery(q, apperr.ErrMissingDistrict,
		fmt.Errorf("'%s': %w", q.Gu, apperr.ErrInvalidDistrict)); err != nil {
		h.writeError(w, r, providerKMA, err)
		return
	}

	result, err := h.recommender.Recommend(r.Context(), q.Gu)
	if err != nil {
		h.writeError(w, r, providerKMA, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
