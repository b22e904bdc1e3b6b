package handlers

import (
	"net/http"
	"strings"

	"github.com/mseongj/weather-outfit/apperr"
	"github.com/mseongj/weather-outfit/models"
)

type imagesQuery struct {
	Keyword string `validate:"required,max=512"`
}

// GetImages는 GET /api/images?keyword=a,b,c 입니다. 쉼표로 나뉜 후보 중 하나로 검색합니다.
func (h *Handler) GetImages(w http.ResponseWriter, r *http.Request) {
	q := imagesQuery{Keyword: strings.TrimSpace(r.URL.Query().Get("keyword"))}
	if err := h.validateQuery(q, apperr.ErrMissingKeyword, apperr.ErrMissingKeyword); err != nil {
		h.writeError(w, r, providerPexels, err)
		return
	}

	images, err := h.images.FetchImages(r.Context(), strings.Split(q.Keyword, ","))
	if err != nil {
		h.writeError(w, r, providerPexels, err)
		return
	}
	if images == nil {
		images = []string{}
	}
	writeJSON(w, http.StatusOK, models.ImageResult{Images: images})
}
