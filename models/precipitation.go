package models

// PrecipitationCode는 기상청 강수형태(PTY) 코드입니다.
type PrecipitationCode int

const (
	PtyNone      PrecipitationCode = 0 // 없음
	PtyRain      PrecipitationCode = 1 // 비
	PtyRainSnow  PrecipitationCode = 2 // 비/눈
	PtySnow      PrecipitationCode = 3 // 눈
	PtyDrizzle   PrecipitationCode = 5 // 빗방울
	PtyDrizzleSn PrecipitationCode = 6 // 빗방울/눈날림
	PtyFlurry    PrecipitationCode = 7 // 눈날림
)

var ptyLabels = map[PrecipitationCode]string{
	PtyNone:      "없음",
	PtyRain:      "비",
	PtyRainSnow:  "비/눈",
	PtySnow:      "눈",
	PtyDrizzle:   "빗방울",
	PtyDrizzleSn: "빗방울/눈날림",
	PtyFlurry:    "눈날림",
}

var ptyIcons = map[PrecipitationCode]string{
	PtyNone:      "☀️",
	PtyRain:      "🌧️",
	PtyRainSnow:  "🌨️",
	PtySnow:      "❄️",
	PtyDrizzle:   "🌦️",
	PtyDrizzleSn: "🌧️",
	PtyFlurry:    "🌨️",
}

// Known은 기상청 문서에 있는 코드인지 알려줍니다.
func (c PrecipitationCode) Known() bool {
	_, ok := ptyLabels[c]
	return ok
}

// Normalize는 문서에 없는 코드를 PtyNone 으로 바꿉니다.
func (c PrecipitationCode) Normalize() PrecipitationCode {
	if !c.Known() {
		return PtyNone
	}
	return c
}

// Label은 강수형태 코드의 한글 표기를 돌려줍니다. 표에 없는 코드는 "없음".
func (c PrecipitationCode) Label() string {
	return ptyLabels[c.Normalize()]
}

// Icon은 카드에 표시할 이모지입니다.
func (c PrecipitationCode) Icon() string {
	return ptyIcons[c.Normalize()]
}
