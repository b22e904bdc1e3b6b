// Package recommend 는 구 → 날씨 → 코디 → 이미지 순서로 한 번의 추천을 실행합니다.
// 날씨 단계 실패는 중단, 이미지 단계 실패는 degraded 결과입니다.
package recommend

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mseongj/weather-outfit/apperr"
	"github.com/mseongj/weather-outfit/kma"
	"github.com/mseongj/weather-outfit/logger"
	"github.com/mseongj/weather-outfit/metrics"
	"github.com/mseongj/weather-outfit/models"
	"github.com/mseongj/weather-outfit/seoul"
)

// State는 한 번의 추천 실행 단계입니다.
type State int

const (
	Idle State = iota
	Validating
	FetchingWeather
	Classifying
	FetchingImages
	Done
	Rejected      // 입력 검증 실패
	WeatherFailed // 날씨 단계 실패, 이미지 단계는 건너뜀
	ImagesFailed  // 날씨·코디는 성공, 이미지 없음 (degraded)
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case FetchingWeather:
		return "fetching_weather"
	case Classifying:
		return "classifying"
	case FetchingImages:
		return "fetching_images"
	case Done:
		return "done"
	case Rejected:
		return "rejected"
	case WeatherFailed:
		return "weather_failed"
	case ImagesFailed:
		return "images_failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal은 s 가 종료 상태인지 알려줍니다.
func (s State) Terminal() bool {
	return s == Done || s == Rejected || s == WeatherFailed || s == ImagesFailed
}

const (
	NoticeImagesError = "코디 이미지를 불러오는 중 오류가 발생했습니다."
	NoticeImagesEmpty = "추천 이미지를 불러오지 못했습니다."
)

// WeatherFetcher는 kma.Client 가 구현합니다.
type WeatherFetcher interface {
	Fetch(ctx context.Context, district string, at kma.ObservationTime) (models.WeatherRecord, error)
}

// Classifier는 outfit.Guide 가 구현합니다.
type Classifier interface {
	ClassifyRecord(record models.WeatherRecord) models.Recommendation
}

// ImageFetcher는 pexels.Client 가 구현합니다.
type ImageFetcher interface {
	FetchImages(ctx context.Context, keywords []string) ([]string, error)
}

// Result는 추천 결과입니다. Degraded 이면 Images 가 비어 있고 Notice 가 채워집니다.
type Result struct {
	State    State                 `json:"-"`
	Weather  models.WeatherRecord  `json:"weather"`
	Outfit   models.Recommendation `json:"outfit"`
	Images   []string              `json:"images"`
	Degraded bool                  `json:"degraded"`
	Notice   string                `json:"notice,omitempty"`
}

// StageError는 추천을 중단시킨 에러와 종료 상태입니다.
type StageError struct {
	State State
	Err   error
}

func (e *StageError) Error() string { return e.State.String() + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// Service는 추천 파이프라인입니다. 요청 간 공유하는 가변 상태가 없습니다.
type Service struct {
	districts  *seoul.Directory
	weather    WeatherFetcher
	classifier Classifier
	images     ImageFetcher
	clock      func() time.Time
	logger     *logger.Logger
}

// New는 Service 를 만듭니다. clock 이 nil 이면 time.Now 를 씁니다.
func New(districts *seoul.Directory, weather WeatherFetcher, classifier Classifier, images ImageFetcher,
	clock func() time.Time, log *logger.Logger,
) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		districts:  districts,
		weather:    weather,
		classifier: classifier,
		images:     images,
		clock:      clock,
		logger:     log,
	}
}

type weatherStage struct {
	record models.WeatherRecord
	err    error
}

type imageStage struct {
	images []string
	err    error
}

// Recommend는 한 번의 추천을 순서대로 실행합니다.
// 날씨 단계 실패는 *StageError 로 전체 실패, 이미지 단계 실패는 Degraded 결과입니다.
func (s *Service) Recommend(ctx context.Context, query string) (Result, error) {
	result, err := s.run(ctx, query)
	state := result.State
	if se, ok := err.(*StageError); ok {
		state = se.State
	}
	metrics.RecordRecommendation(state.String())
	return result, err
}

func (s *Service) run(ctx context.Context, query string) (Result, error) {
	// Validating
	if strings.TrimSpace(query) == "" {
		return Result{State: Rejected}, &StageError{State: Rejected, Err: apperr.ErrMissingDistrict}
	}
	district, ok := s.districts.Lookup(query)
	if !ok {
		return Result{State: Rejected}, &StageError{
			State: Rejected,
			Err:   fmt.Errorf("'%s': %w", query, apperr.ErrInvalidDistrict),
		}
	}

	// FetchingWeather
	ws := s.fetchWeather(ctx, district)
	if ws.err != nil {
		s.logger.Warn("날씨 단계 실패, 이미지 단계 생략", "gu", district.Name,
			"kind", apperr.KindOf(ws.err).String(), logger.Err(ws.err))
		return Result{State: WeatherFailed}, &StageError{State: WeatherFailed, Err: ws.err}
	}

	// Classifying
	outfit := s.classifier.ClassifyRecord(ws.record)

	// FetchingImages
	is := s.fetchImages(ctx, outfit.Keywords)
	result := Result{
		State:   Done,
		Weather: ws.record,
		Outfit:  outfit,
		Images:  is.images,
	}
	switch {
	case is.err != nil:
		s.logger.Warn("이미지 단계 실패, 날씨·코디만 응답", "gu", district.Name,
			"kind", apperr.KindOf(is.err).String(), logger.Err(is.err))
		result.State, result.Degraded, result.Notice = ImagesFailed, true, NoticeImagesError
		result.Images = []string{}
	case len(is.images) == 0:
		result.State, result.Degraded, result.Notice = ImagesFailed, true, NoticeImagesEmpty
		result.Images = []string{}
	}
	return result, nil
}

func (s *Service) fetchWeather(ctx context.Context, district seoul.District) weatherStage {
	at := kma.ResolveBaseTime(s.clock())
	record, err := s.weather.Fetch(ctx, district.Name, at)
	return weatherStage{record: record, err: err}
}

func (s *Service) fetchImages(ctx context.Context, keywords []string) imageStage {
	images, err := s.images.FetchImages(ctx, slices.Clone(keywords))
	return imageStage{images: images, err: err}
}
