// Package outfit 은 기온과 강수형태로 코디 추천을 고릅니다. 표는 정렬된 하한 기준입니다.
package outfit

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/mseongj/weather-outfit/models"
)

// Row는 (최저 기온, 안내 문구, 검색어 후보) 한 줄입니다.
type Row struct {
	Min      float64
	Desc     string
	Keywords []string
}

// Table은 Min 내림차순으로 정렬되고 -Inf 행으로 끝나는 표입니다.
type Table []Row

// Validate는 내림차순 정렬과 마지막 -Inf 행을 검사합니다.
func (t Table) Validate() error {
	if len(t) == 0 {
		return errors.New("empty table")
	}
	for i, row := range t {
		if len(row.Keywords) == 0 {
			return fmt.Errorf("row %d has no keywords", i)
		}
		if i > 0 && !(row.Min < t[i-1].Min) {
			return fmt.Errorf("row %d is not in descending order", i)
		}
	}
	if !math.IsInf(t[len(t)-1].Min, -1) {
		return errors.New("last row must be the -Inf catch-all")
	}
	return nil
}

// Select는 temp 이하의 Min 을 가진 첫 행을 고릅니다 (하한 포함).
// Min 이 내림차순이므로 "Min <= temp" 는 앞쪽이 false, 뒤쪽이 true 인 단조 조건입니다.
// temp 가 NaN 이면 어느 행도 맞지 않아 마지막 행이 선택됩니다.
func (t Table) Select(temp float64) Row {
	i := sort.Search(len(t), func(i int) bool { return t[i].Min <= temp })
	if i == len(t) {
		i = len(t) - 1
	}
	return t[i]
}

// Guide는 강수형태별 표 묶음입니다. 읽기 전용으로 한 번 만들어 주입합니다.
type Guide struct {
	mixed models.Recommendation
	rain  Table
	snow  Table
	clear Table
}

// New는 주어진 표로 Guide 를 만들고 표의 불변식을 검사합니다.
func New(mixed models.Recommendation, rain, snow, clear Table) (*Guide, error) {
	if len(mixed.Keywords) == 0 {
		return nil, errors.New("mixed recommendation has no keywords")
	}
	for name, table := range map[string]Table{"rain": rain, "snow": snow, "clear": clear} {
		if err := table.Validate(); err != nil {
			return nil, fmt.Errorf("%s table: %w", name, err)
		}
	}
	return &Guide{mixed: mixed, rain: rain, snow: snow, clear: clear}, nil
}

// Default는 서비스 기본 코디 표로 만든 Guide 입니다.
func Default() *Guide {
	g, err := New(mixedGuide, rainGuide, snowGuide, clearGuide)
	if err != nil {
		panic(err)
	}
	return g
}

// Classify는 기온과 강수형태로 코디 추천을 고릅니다. 순수 함수이며,
// 기온을 알 수 없으면 NaN 을 넘기면 됩니다 (각 표의 마지막 행).
func (g *Guide) Classify(temp float64, pty models.PrecipitationCode) models.Recommendation {
	var table Table
	switch pty {
	case models.PtyRainSnow, models.PtyDrizzleSn:
		return clone(g.mixed)
	case models.PtyRain, models.PtyDrizzle:
		table = g.rain
	case models.PtySnow, models.PtyFlurry:
		table = g.snow
	default:
		table = g.clear
	}
	row := table.Select(temp)
	return models.Recommendation{Desc: row.Desc, Keywords: slices.Clone(row.Keywords)}
}

// ClassifyRecord는 WeatherRecord 의 기온(없으면 NaN)과 강수형태로 Classify 합니다.
func (g *Guide) ClassifyRecord(record models.WeatherRecord) models.Recommendation {
	temp := math.NaN()
	if record.Temp != nil {
		temp = *record.Temp
	}
	return g.Classify(temp, record.PtyCode)
}

func clone(r models.Recommendation) models.Recommendation {
	return models.Recommendation{Desc: r.Desc, Keywords: slices.Clone(r.Keywords)}
}
