package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mseongj/weather-outfit/apperr"
	"github.com/mseongj/weather-outfit/handlers"
	"github.com/mseongj/weather-outfit/kma"
	"github.com/mseongj/weather-outfit/logger"
	"github.com/mseongj/weather-outfit/models"
	"github.com/mseongj/weather-outfit/recommend"
	"github.com/mseongj/weather-outfit/seoul"
)

// ---------------------------------------------------------------------------
// function-field fakes
// ---------------------------------------------------------------------------

type mockWeather struct {
	fetchFn func(ctx context.Context, district string, at kma.ObservationTime) (models.WeatherRecord, error)
	calls   int
}

func (m *mockWeather) Fetch(ctx context.Context, district string, at kma.ObservationTime) (models.WeatherRecord, error) {
	m.calls++
	if m.fetchFn != nil {
		return m.fetchFn(ctx, district, at)
	}
	temp := 5.0
	return models.WeatherRecord{CityName: "서울시 " + district, Temp: &temp, PtyLabel: "없음", Description: "맑고 쌀쌀함",
		BaseDate: at.Date, BaseTime: at.Time}, nil
}

type mockImages struct {
	fetchFn  func(ctx context.Context, keywords []string) ([]string, error)
	keywords []string
	calls    int
}

func (m *mockImages) FetchImages(ctx context.Context, keywords []string) ([]string, error) {
	m.calls++
	m.keywords = keywords
	if m.fetchFn != nil {
		return m.fetchFn(ctx, keywords)
	}
	return []string{"https://images.pexels.com/1.jpeg"}, nil
}

type mockRecommender struct {
	recommendFn func(ctx context.Context, query string) (recommend.Result, error)
	calls       int
}

func (m *mockRecommender) Recommend(ctx context.Context, query string) (recommend.Result, error) {
	m.calls++
	if m.recommendFn != nil {
		return m.recommendFn(ctx, query)
	}
	return recommend.Result{State: recommend.Done, Images: []string{"a"}}, nil
}

// 2025-03-14 09:05 KST → 0800
var fixedNow = time.Date(2025, 3, 14, 0, 5, 0, 0, time.UTC)

type fixture struct {
	weather *mockWeather
	images  *mockImages
	rec     *mockRecommender
	h       *handlers.Handler
}

func newFixture() *fixture {
	f := &fixture{weather: &mockWeather{}, images: &mockImages{}, rec: &mockRecommender{}}
	f.h = handlers.New(seoul.NewDirectory(), f.weather, f.images, f.rec,
		func() time.Time { return fixedNow }, logger.Discard())
	return f
}

func serve(t *testing.T, fn http.HandlerFunc, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

// ---------------------------------------------------------------------------
// /api/weather
// ---------------------------------------------------------------------------

func TestGetWeather_OK(t *testing.T) {
	f := newFixture()
	var gotDistrict string
	var gotAt kma.ObservationTime
	f.weather.fetchFn = func(_ context.Context, district string, at kma.ObservationTime) (models.WeatherRecord, error) {
		gotDistrict, gotAt = district, at
		temp := 12.3
		return models.WeatherRecord{CityName: "서울시 강서구", Temp: &temp, Description: "맑고 선선함"}, nil
	}

	rec, body := serve(t, f.h.GetWeather, "/api/weather?gu="+url.QueryEscape("강서구"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "강서구", gotDistrict)
	assert.Equal(t, kma.ObservationTime{Date: "20250314", Time: "0800"}, gotAt)
	assert.Equal(t, "서울시 강서구", body["cityName"])
	assert.InDelta(t, 12.3, body["temp"], 1e-9)
}

func TestGetWeather_MissingDistrict(t *testing.T) {
	f := newFixture()
	rec, body := serve(t, f.h.GetWeather, "/api/weather")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperr.ErrMissingDistrict.Error(), body["error"])
	assert.Zero(t, f.weather.calls)
}

func TestGetWeather_TooLong(t *testing.T) {
	f := newFixture()
	rec, body := serve(t, f.h.GetWeather, "/api/weather?gu="+url.QueryEscape(strings.Repeat("가", 33)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "유효한 서울시 구 이름이 아닙니다")
	assert.Zero(t, f.weather.calls)
}

func TestGetWeather_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"invalid district", errors.Join(apperr.ErrInvalidDistrict), http.StatusBadRequest, apperr.ErrInvalidDistrict.Error()},
		{"missing key", apperr.ErrMissingCredential, http.StatusInternalServerError, "서버 설정 오류"},
		{"auth", apperr.ErrProviderAuth, http.StatusUnauthorized, "기상청 API 키가 유효하지 않습니다."},
		{"timeout", apperr.ErrProviderTimeout, http.StatusGatewayTimeout, "기상청 API 응답 시간이 초과되었습니다."},
		{"no data", apperr.ErrNoData, http.StatusNotFound, "기상청 API에서 데이터를 받아오지 못했습니다."},
		{"result code", &apperr.ProviderError{Provider: "kma", Code: "03", Message: "NODATA_ERROR"},
			http.StatusBadGateway, "기상청 API 오류 (03): NODATA_ERROR"},
		{"http 503", &apperr.ProviderError{Provider: "kma", Status: 503, Message: "Service Unavailable"},
			http.StatusBadGateway, "날씨 데이터를 가져오는 중 오류가 발생했습니다."},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "날씨 데이터를 가져오는 중 오류가 발생했습니다."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.weather.fetchFn = func(context.Context, string, kma.ObservationTime) (models.WeatherRecord, error) {
				return models.WeatherRecord{}, tc.err
			}
			rec, body := serve(t, f.h.GetWeather, "/api/weather?gu="+url.QueryEscape("마포구"))
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

// ---------------------------------------------------------------------------
// /api/images
// ---------------------------------------------------------------------------

func TestGetImages_SplitsKeywords(t *testing.T) {
	f := newFixture()
	rec, body := serve(t, f.h.GetImages, "/api/images?keyword=trench+coat+look,jacket+autumn+street+style")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"trench coat look", "jacket autumn street style"}, f.images.keywords)
	assert.Equal(t, []any{"https://images.pexels.com/1.jpeg"}, body["images"])
}

func TestGetImages_EmptyResultIsArray(t *testing.T) {
	f := newFixture()
	f.images.fetchFn = func(context.Context, []string) ([]string, error) { return nil, nil }
	rec := httptest.NewRecorder()
	f.h.GetImages(rec, httptest.NewRequest(http.MethodGet, "/api/images?keyword=coat", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"images":[]}`, rec.Body.String())
}

func TestGetImages_MissingKeyword(t *testing.T) {
	f := newFixture()
	rec, body := serve(t, f.h.GetImages, "/api/images?keyword=+++")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "검색 키워드를 입력해주세요.", body["error"])
	assert.Zero(t, f.images.calls)
}

func TestGetImages_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"missing key", apperr.ErrMissingCredential, http.StatusInternalServerError, "서버 설정 오류"},
		{"auth", apperr.ErrProviderAuth, http.StatusUnauthorized, "Pexels API 키가 유효하지 않습니다."},
		{"timeout", apperr.ErrProviderTimeout, http.StatusGatewayTimeout, "Pexels API 응답 시간이 초과되었습니다."},
		{"http 500", &apperr.ProviderError{Provider: "pexels", Status: 500}, http.StatusBadGateway, "이미지를 불러오는 중 오류가 발생했습니다."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.images.fetchFn = func(context.Context, []string) ([]string, error) { return nil, tc.err }
			rec, body := serve(t, f.h.GetImages, "/api/images?keyword=coat")
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

// ---------------------------------------------------------------------------
// /api/recommend, /api/districts, /health
// ---------------------------------------------------------------------------

func TestGetRecommend_Degraded(t *testing.T) {
	f := newFixture()
	f.rec.recommendFn = func(_ context.Context, query string) (recommend.Result, error) {
		assert.Equal(t, "강서구", query)
		return recommend.Result{
			State:    recommend.ImagesFailed,
			Outfit:   models.Recommendation{Desc: "추운 날씨입니다. 코트와 보온 내의를 챙기세요.", Keywords: []string{"winter wool coat"}},
			Images:   []string{},
			Degraded: true,
			Notice:   recommend.NoticeImagesEmpty,
		}, nil
	}
	rec, body := serve(t, f.h.GetRecommend, "/api/recommend?gu="+url.QueryEscape("강서구"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["degraded"])
	assert.Equal(t, recommend.NoticeImagesEmpty, body["notice"])
	assert.Equal(t, []any{}, body["images"])
	outfit := body["outfit"].(map[string]any)
	assert.Equal(t, []any{"winter wool coat"}, outfit["keyword"])
}

func TestGetRecommend_WeatherFailure(t *testing.T) {
	f := newFixture()
	f.rec.recommendFn = func(context.Context, string) (recommend.Result, error) {
		return recommend.Result{State: recommend.WeatherFailed},
			&recommend.StageError{State: recommend.WeatherFailed, Err: apperr.ErrProviderTimeout}
	}
	rec, body := serve(t, f.h.GetRecommend, "/api/recommend?gu="+url.QueryEscape("강서구"))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, "기상청 API 응답 시간이 초과되었습니다.", body["error"])
}

func TestGetRecommend_MissingDistrict(t *testing.T) {
	f := newFixture()
	rec, _ := serve(t, f.h.GetRecommend, "/api/recommend?gu=")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.rec.calls)
}

func TestGetDistricts(t *testing.T) {
	f := newFixture()
	rec, body := serve(t, f.h.GetDistricts, "/api/districts")
	require.Equal(t, http.StatusOK, rec.Code)
	list := body["districts"].([]any)
	require.Len(t, list, 25)
	first := list[0].(map[string]any)
	assert.Equal(t, "종로구", first["name"])
	assert.Equal(t, "서울시 종로구", first["displayName"])
	assert.EqualValues(t, 60, first["nx"])
}

func TestHealth(t *testing.T) {
	f := newFixture()
	rec, body := serve(t, f.h.Health, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}
