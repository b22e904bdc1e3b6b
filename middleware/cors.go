package middleware

import "net/http"

const (
	corsMethods = "GET, OPTIONS"
	corsHeaders = "Content-Type, Authorization, X-Request-ID"
)

// CORS 미들웨어. allowedOrigin 이 "*" 가 아니면 Vary: Origin 을 붙입니다.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowedOrigin)
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			if allowedOrigin != "*" {
				h.Add("Vary", "Origin")
			}

			// Preflight 요청은 바로 응답
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
