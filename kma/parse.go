package kma

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"

	"github.com/mseongj/weather-outfit/models"
)

// 강수가 없을 때의 기온 구간
const (
	hotFrom  = 28.0
	warmFrom = 20.0
	mildFrom = 10.0

	// 기온이 없을 때 설명 문구 계산에 쓰는 값
	assumedTemp = 15.0
)

// Normalize는 순서 없는 (category, obsrValue) 목록에서 다섯 항목을 뽑아
// WeatherRecord 를 채웁니다. 없는 항목은 nil, 강수형태만 "없음"(0)이 기본값입니다.
// 같은 카테고리가 여러 번 오면 처음 값을 씁니다.
func Normalize(items []models.ObservationItem) models.WeatherRecord {
	values := make(map[string]string, len(items))
	for _, item := range items {
		if _, seen := values[item.Category]; !seen {
			values[item.Category] = strings.TrimSpace(item.ObsrValue)
		}
	}

	var record models.WeatherRecord
	if v, ok := parseFloat(values, models.CategoryTemperature); ok {
		t := round1(v)
		record.Temp = &t
	}
	if v, ok := parseFloat(values, models.CategoryHumidity); ok {
		h := int(math.Round(v))
		record.Humidity = &h
	}
	if v, ok := parseFloat(values, models.CategoryWindSpeed); ok {
		w := round1(v)
		record.WindSpeed = &w
	}
	if v, ok := values[models.CategoryPrecipitation]; ok {
		record.Precipitation = &v
	}

	pty := models.PtyNone
	if v, ok := parseFloat(values, models.CategoryPrecipType); ok && v == math.Trunc(v) {
		pty = models.PrecipitationCode(int(v)).Normalize()
	}
	record.PtyCode = pty
	record.PtyLabel = pty.Label()
	record.Icon = pty.Icon()
	record.Description = Describe(pty, record.Temp)
	return record
}

// Describe는 날씨 설명 문구를 만듭니다. 강수가 있으면 강수형태 이름,
// 없으면 기온 구간(28/20/10℃)에 따라 정합니다.
func Describe(pty models.PrecipitationCode, temp *float64) string {
	pty = pty.Normalize()
	if pty != models.PtyNone {
		return pty.Label()
	}
	t := assumedTemp
	if temp != nil {
		t = *temp
	}
	switch {
	case t >= hotFrom:
		return "맑고 더움"
	case t >= warmFrom:
		return "맑음"
	case t >= mildFrom:
		return "맑고 선선함"
	default:
		return "맑고 쌀쌀함"
	}
}

func parseFloat(values map[string]string, category string) (float64, bool) {
	raw, ok := values[category]
	if !ok || raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	// 관측 결측값 (-998.9, 900 이상 등)
	if v <= -900 || v >= 900 {
		return 0, false
	}
	return v, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// serviceError는 키 오류 등에서 JSON 대신 내려오는 XML 응답입니다.
//
//	<OpenAPI_ServiceResponse><cmmMsgHeader>
//	  <errMsg>SERVICE ERROR</errMsg>
//	  <returnAuthMsg>SERVICE_KEY_IS_NOT_REGISTERED_ERROR</returnAuthMsg>
//	  <returnReasonCode>30</returnReasonCode>
//	</cmmMsgHeader></OpenAPI_ServiceResponse>
type serviceError struct {
	XMLName xml.Name `xml:"OpenAPI_ServiceResponse"`
	Header  struct {
		ErrMsg     string `xml:"errMsg"`
		AuthMsg    string `xml:"returnAuthMsg"`
		ReasonCode string `xml:"returnReasonCode"`
	} `xml:"cmmMsgHeader"`
}

func (e serviceError) code() string { return strings.TrimSpace(e.Header.ReasonCode) }

func (e serviceError) message() string {
	if msg := strings.TrimSpace(e.Header.AuthMsg); msg != "" {
		return msg
	}
	return strings.TrimSpace(e.Header.ErrMsg)
}

func parseServiceError(body []byte) (serviceError, bool) {
	var env serviceError
	if err := xml.Unmarshal(body, &env); err != nil || env.code() == "" {
		return serviceError{}, false
	}
	return env, true
}
