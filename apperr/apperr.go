// Package apperr 는 날씨·이미지 클라이언트, 추천 서비스, 핸들러가 함께 쓰는 에러 분류입니다.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind는 에러 종류입니다. HTTP 상태 코드 결정에 쓰입니다.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConfiguration
	KindUpstreamAuth
	KindUpstreamTimeout
	KindUpstream
	KindNoData
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	case KindUpstreamAuth:
		return "upstream_auth"
	case KindUpstreamTimeout:
		return "upstream_timeout"
	case KindUpstream:
		return "upstream"
	case KindNoData:
		return "no_data"
	default:
		return "unknown"
	}
}

// kindError는 Kind 를 가진 센티널 에러입니다.
type kindError struct {
	kind Kind
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func newKind(kind Kind, msg string) error { return &kindError{kind: kind, msg: msg} }

var (
	ErrMissingDistrict   = newKind(KindValidation, "구 이름을 입력해주세요. (예: 강서구)")
	ErrInvalidDistrict   = newKind(KindValidation, "유효한 서울시 구 이름이 아닙니다")
	ErrMissingKeyword    = newKind(KindValidation, "검색 키워드를 입력해주세요.")
	ErrMissingCredential = newKind(KindConfiguration, "API key is not configured")
	ErrProviderAuth      = newKind(KindUpstreamAuth, "provider rejected the API key")
	ErrProviderTimeout   = newKind(KindUpstreamTimeout, "provider did not respond in time")
	ErrNoData            = newKind(KindNoData, "provider returned no data")
)

// ProviderError는 형식은 맞지만 실패한 외부 API 응답입니다.
// Status 는 HTTP 상태, Code 는 제공자 자체 결과 코드(있으면)입니다.
type ProviderError struct {
	Provider string
	Status   int
	Code     string
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s error (%s): %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: HTTP %d %s", e.Provider, e.Status, e.Message)
}

// KindOf는 에러 체인에서 처음 만나는 분류된 에러의 Kind 입니다.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return KindUpstream
	}
	return KindUnknown
}

// HTTPStatus는 err 에 맞는 응답 상태 코드입니다.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindConfiguration:
		return http.StatusInternalServerError
	case KindUpstreamAuth:
		return http.StatusUnauthorized
	case KindUpstreamTimeout:
		return http.StatusGatewayTimeout
	case KindUpstream:
		return http.StatusBadGateway
	case KindNoData:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
