package handlers

import "net/http"

type districtView struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Nx          int    `json:"nx"`
	Ny          int    `json:"ny"`
}

// GetDistricts는 검색창 자동완성용 자치구 목록입니다.
func (h *Handler) GetDistricts(w http.ResponseWriter, r *http.Request) {
	list := h.districts.List()
	out := make([]districtView, 0, len(list))
	for _, d := range list {
		out = append(out, districtView{Name: d.Name, DisplayName: d.DisplayName(), Nx: d.Grid.Nx, Ny: d.Grid.Ny})
	}
	writeJSON(w, http.StatusOK, map[string]any{"districts": out})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
