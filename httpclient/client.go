package httpclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"reflect"
	"time"

	"github.com/mseongj/weather-outfit/logger"
	"github.com/mseongj/weather-outfit/metrics"
)

const (
	// DefaultTimeout는 호출부가 별도 타임아웃을 주지 않을 때의 상한입니다.
	DefaultTimeout = 10 * time.Second

	// 응답 본문 최대 크기
	maxBodySize = 2 << 20
	// DecodeError 에 남길 본문 앞부분 길이
	snippetSize = 1024
)

// UserAgent는 외부 API 요청에 붙는 User-Agent 입니다.
var UserAgent = "weather-outfit/1.0 (+https://github.com/mseongj/weather-outfit)"

var (
	ErrNonPointerTarget = errors.New("target must be a non-nil pointer")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)

// DecodeError는 2xx 응답이지만 JSON 해석에 실패한 경우입니다.
// 일부 API 는 인증 오류를 XML 로 돌려주므로 본문 앞부분을 보관합니다.
type DecodeError struct {
	Status  int
	Snippet []byte
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("JSON 파싱 실패 (HTTP %d): %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client는 표준 http.Client 와 로거를 묶은 타입입니다.
type Client struct {
	*http.Client
	logger *logger.Logger
}

// New는 공유 HTTP 클라이언트를 만듭니다.
func New(log *logger.Logger) *Client {
	transport := &http.Transport{
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}
	httpClient := &http.Client{
		Timeout:   DefaultTimeout,
		Transport: transport,
	}
	return &Client{httpClient, log}
}

// Get은 rawURL 로 GET 요청을 보내고 2xx 응답을 target 에 JSON 디코딩합니다.
// 2xx 가 아니면 상태 코드와 ErrUnexpectedStatus 를 돌려줍니다.
// provider 는 로그와 메트릭 라벨로 쓰입니다.
func (h *Client) Get(ctx context.Context, provider, rawURL string, target any, headers map[string]string, timeout time.Duration) (int, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return 0, ErrNonPointerTarget
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	start := time.Now()
	status, err := h.get(ctx, rawURL, target, headers, timeout)
	metrics.RecordUpstream(provider, outcome(status, err), time.Since(start).Seconds())
	return status, err
}

func (h *Client) get(ctx context.Context, rawURL string, target any, headers map[string]string, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("HTTP 요청 생성 실패: %w", err)
	}
	request.Header.Set("User-Agent", UserAgent)
	request.Header.Set("Accept", "application/json")
	for k, v := range headers {
		request.Header.Set(k, v)
	}

	response, err := h.Do(request)
	if err != nil {
		return 0, fmt.Errorf("HTTP 요청 실패: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			h.logger.Error("응답 본문 닫기 실패", logger.Err(err))
		}
	}(response.Body)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxBodySize))
		return response.StatusCode, fmt.Errorf("%w: %d", ErrUnexpectedStatus, response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize))
	if err != nil {
		return response.StatusCode, fmt.Errorf("응답 본문 읽기 실패: %w", err)
	}
	if err = json.Unmarshal(body, target); err != nil {
		return response.StatusCode, &DecodeError{
			Status:  response.StatusCode,
			Snippet: body[:min(len(body), snippetSize)],
			Err:     err,
		}
	}
	return response.StatusCode, nil
}

// IsTimeout은 err 가 타임아웃(컨텍스트 마감 또는 네트워크 타임아웃)인지 판별합니다.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func outcome(status int, err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsTimeout(err):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case status >= 500:
		return "http_5xx"
	case status >= 400:
		return "http_4xx"
	default:
		return "error"
	}
}
