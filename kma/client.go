package kma

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mseongj/weather-outfit/apperr"
	"github.com/mseongj/weather-outfit/httpclient"
	"github.com/mseongj/weather-outfit/logger"
	"github.com/mseongj/weather-outfit/models"
	"github.com/mseongj/weather-outfit/seoul"
)

const (
	// DefaultEndpoint는 초단기실황조회 엔드포인트입니다.
	DefaultEndpoint = "https://apis.data.go.kr/1360000/VilageFcstInfoService_2.0/getUltraSrtNcst"
	// DefaultTimeout은 기상청 응답 대기 한도입니다.
	DefaultTimeout = 8 * time.Second

	provider   = "kma"
	resultOK   = "00"
	numOfRows  = 10
	firstPage  = 1
	dataTypeJS = "JSON"
)

// Options는 Client 생성 옵션입니다.
type Options struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// Client는 기상청 초단기실황 API 클라이언트입니다.
type Client struct {
	http      *httpclient.Client
	logger    *logger.Logger
	districts *seoul.Directory
	apiKey    string
	endpoint  string
	timeout   time.Duration
}

// New는 Client 를 만듭니다. 자치구 표는 호출부에서 주입합니다.
func New(client *httpclient.Client, log *logger.Logger, districts *seoul.Directory, opts Options) *Client {
	c := &Client{
		http:      client,
		logger:    log,
		districts: districts,
		apiKey:    opts.APIKey,
		endpoint:  opts.Endpoint,
		timeout:   opts.Timeout,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	return c
}

// Fetch는 자치구의 실황 자료를 받아 WeatherRecord 로 정규화합니다.
// 자치구 검증과 API 키 확인은 네트워크 호출 전에 이뤄집니다. 재시도는 하지 않습니다.
func (c *Client) Fetch(ctx context.Context, district string, at ObservationTime) (models.WeatherRecord, error) {
	if strings.TrimSpace(district) == "" {
		return models.WeatherRecord{}, apperr.ErrMissingDistrict
	}
	gu, ok := c.districts.Lookup(district)
	if !ok {
		return models.WeatherRecord{}, fmt.Errorf("'%s': %w", district, apperr.ErrInvalidDistrict)
	}
	if c.apiKey == "" {
		c.logger.Error("KMA API 키가 설정되지 않았습니다")
		return models.WeatherRecord{}, apperr.ErrMissingCredential
	}

	c.logger.Info("KMA 요청", "gu", gu.Name, "nx", gu.Grid.Nx, "ny", gu.Grid.Ny,
		"base_date", at.Date, "base_time", at.Time)

	var resp models.WeatherResponse
	status, err := c.http.Get(ctx, provider, c.requestURL(gu.Grid, at), &resp, nil, c.timeout)
	if err != nil {
		err = c.classify(status, err)
		c.logger.Error("KMA 호출 실패", "stage", "weather", "status", status, logger.Err(err))
		return models.WeatherRecord{}, err
	}

	header := resp.Response.Header
	c.logger.Info("KMA 응답", "code", header.ResultCode, "msg", header.ResultMsg)
	if header.ResultCode != resultOK {
		err = resultError(status, header.ResultCode, header.ResultMsg)
		c.logger.Error("KMA 오류", "stage", "weather", "code", header.ResultCode,
			"msg", header.ResultMsg, logger.Err(err))
		return models.WeatherRecord{}, err
	}

	items := resp.Response.Body.Items.Item
	if len(items) == 0 {
		return models.WeatherRecord{}, apperr.ErrNoData
	}

	record := Normalize(items)
	record.CityName = gu.DisplayName()
	record.BaseDate = at.Date
	record.BaseTime = at.Time

	c.logger.Debug("KMA 파싱", "items", len(items), "pty", record.PtyCode,
		"description", record.Description)
	return record, nil
}

// requestURL은 쿼리 문자열을 직접 조립합니다. 발급 키가 이미 URL 인코딩된 형태로
// 배포되는 경우가 많아, 한 번 디코딩한 뒤 정확히 한 번만 인코딩합니다.
func (c *Client) requestURL(grid seoul.Grid, at ObservationTime) string {
	params := []string{
		"serviceKey=" + url.QueryEscape(decodeKey(c.apiKey)),
		"numOfRows=" + strconv.Itoa(numOfRows),
		"pageNo=" + strconv.Itoa(firstPage),
		"dataType=" + dataTypeJS,
		"base_date=" + at.Date,
		"base_time=" + at.Time,
		"nx=" + strconv.Itoa(grid.Nx),
		"ny=" + strconv.Itoa(grid.Ny),
	}
	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	return c.endpoint + sep + strings.Join(params, "&")
}

func decodeKey(key string) string {
	decoded, err := url.PathUnescape(key)
	if err != nil {
		return key
	}
	return decoded
}

// classify는 HTTP 계층 에러를 도메인 에러로 바꿉니다.
func (c *Client) classify(status int, err error) error {
	if httpclient.IsTimeout(err) {
		return fmt.Errorf("%w: %w", apperr.ErrProviderTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var decodeErr *httpclient.DecodeError
	if errors.As(err, &decodeErr) {
		// 키 오류는 JSON 이 아닌 XML 로 내려옵니다.
		if env, ok := parseServiceError(decodeErr.Snippet); ok {
			return resultError(status, env.code(), env.message())
		}
		return &apperr.ProviderError{Provider: provider, Status: status, Message: "invalid response body"}
	}

	if errors.Is(err, httpclient.ErrUnexpectedStatus) {
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return fmt.Errorf("%w: HTTP %d", apperr.ErrProviderAuth, status)
		}
		return &apperr.ProviderError{Provider: provider, Status: status, Message: http.StatusText(status)}
	}
	return fmt.Errorf("기상청 API 요청 실패: %w", err)
}

// 인증·키 관련 결과 코드
var authCodes = map[string]bool{
	"20": true, // SERVICE_ACCESS_DENIED_ERROR
	"21": true, // TEMPORARILY_DISABLE_THE_SERVICEKEY_ERROR
	"30": true, // SERVICE_KEY_IS_NOT_REGISTERED_ERROR
	"31": true, // DEADLINE_HAS_EXPIRED_ERROR
	"32": true, // UNREGISTERED_IP_ERROR
	"33": true, // UNSIGNED_CALL_ERROR
}

func resultError(status int, code, msg string) error {
	if authCodes[code] {
		return fmt.Errorf("%w (%s): %s", apperr.ErrProviderAuth, code, msg)
	}
	return &apperr.ProviderError{Provider: provider, Status: status, Code: code, Message: msg}
}
