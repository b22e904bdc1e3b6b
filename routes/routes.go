package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mseongj/weather-outfit/handlers"
)

// Options는 라우터 구성 옵션입니다.
type Options struct {
	// StaticDir 가 비어 있으면 정적 파일을 제공하지 않습니다.
	StaticDir string
	// RateLimit 은 /api 하위에만 적용됩니다. nil 이면 제한 없음.
	RateLimit mux.MiddlewareFunc
}

func SetupRoutes(h *handlers.Handler, opts Options) *mux.Router {
	router := mux.NewRouter()

	// API 라우트. 서브라우터를 쓰면 메서드 불일치가 404 가 되므로 최상위에 등록합니다.
	api := func(fn http.HandlerFunc) http.Handler {
		if opts.RateLimit == nil {
			return fn
		}
		return opts.RateLimit(fn)
	}
	router.Handle("/api/weather", api(h.GetWeather)).Methods("GET")
	router.Handle("/api/images", api(h.GetImages)).Methods("GET")
	router.Handle("/api/recommend", api(h.GetRecommend)).Methods("GET")
	router.Handle("/api/districts", api(h.GetDistricts)).Methods("GET")

	router.HandleFunc("/health", h.Health).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// 나머지 경로는 정적 파일 디렉터리에서 제공합니다.
	if opts.StaticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(opts.StaticDir))).Methods("GET", "HEAD")
	}

	return router
}
