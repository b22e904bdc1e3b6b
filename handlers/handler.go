package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mseongj/weather-outfit/apperr"
	"github.com/mseongj/weather-outfit/logger"
	"github.com/mseongj/weather-outfit/middleware"
	"github.com/mseongj/weather-outfit/recommend"
	"github.com/mseongj/weather-outfit/seoul"
)

// Recommender는 recommend.Service 가 구현합니다.
type Recommender interface {
	Recommend(ctx context.Context, query string) (recommend.Result, error)
}

// Handler는 /api 하위 엔드포인트들이 공유하는 의존성입니다.
type Handler struct {
	districts   *seoul.Directory
	weather     recommend.WeatherFetcher
	images      recommend.ImageFetcher
	recommender Recommender
	clock       func() time.Time
	validate    *validator.Validate
	logger      *logger.Logger
}

// New는 Handler 를 만듭니다. clock 이 nil 이면 time.Now 를 씁니다.
func New(districts *seoul.Directory, weather recommend.WeatherFetcher, images recommend.ImageFetcher,
	recommender Recommender, clock func() time.Time, log *logger.Logger,
) *Handler {
	if clock == nil {
		clock = time.Now
	}
	return &Handler{
		districts:   districts,
		weather:     weather,
		images:      images,
		recommender: recommender,
		clock:       clock,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      log,
	}
}

// 쿼리 검증 실패를 도메인 에러로 바꿉니다. required 는 missing, 그 외는 invalid.
func (h *Handler) validateQuery(q any, missing, invalid error) error {
	err := h.validate.Struct(q)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
		return missing
	}
	return invalid
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError는 에러 종류로 상태 코드를 정하고, 외부 API 내부 정보는 숨긴 메시지를 씁니다.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, provider string, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError || errors.Is(err, apperr.ErrProviderAuth) {
		h.logger.Error("요청 실패", "request_id", middleware.RequestID(r.Context()), "path", r.URL.Path, "status", status,
			"kind", apperr.KindOf(err).String(), logger.Err(err))
	}
	writeMessage(w, status, publicMessage(provider, err))
}

const (
	providerKMA    = "kma"
	providerPexels = "pexels"
)

func publicMessage(provider string, err error) string {
	var pe *apperr.ProviderError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return err.Error()
	case apperr.KindConfiguration:
		return "서버 설정 오류"
	case apperr.KindUpstreamAuth:
		if provider == providerPexels {
			return "Pexels API 키가 유효하지 않습니다."
		}
		return "기상청 API 키가 유효하지 않습니다."
	case apperr.KindUpstreamTimeout:
		if provider == providerPexels {
			return "Pexels API 응답 시간이 초과되었습니다."
		}
		return "기상청 API 응답 시간이 초과되었습니다."
	case apperr.KindNoData:
		return "기상청 API에서 데이터를 받아오지 못했습니다."
	case apperr.KindUpstream:
		if errors.As(err, &pe) && pe.Code != "" {
			return "기상청 API 오류 (" + pe.Code + "): " + pe.Message
		}
	}
	if provider == providerPexels {
		return "이미지를 불러오는 중 오류가 발생했습니다."
	}
	return "날씨 데이터를 가져오는 중 오류가 발생했습니다."
}
