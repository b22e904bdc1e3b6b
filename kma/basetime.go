package kma

import "time"

// KST는 기상청 발표 기준 시간대(UTC+9, 일광절약 없음)입니다.
var KST = time.FixedZone("KST", 9*60*60)

// 초단기실황은 매시 정시 자료가 10분 이후에 제공됩니다.
const publishMinute = 10

// ObservationTime은 요청에 쓰는 base_date(YYYYMMDD) / base_time(HH00) 쌍입니다.
type ObservationTime struct {
	Date string
	Time string
}

// ResolveBaseTime은 now 를 KST 로 바꾼 뒤, 정시 자료가 아직 나오지 않은 시각(매시 10분 전)이면
// 한 시간 전 자료를 가리키도록 보정합니다. 날짜·월·연도 경계는 time 패키지가 처리합니다.
func ResolveBaseTime(now time.Time) ObservationTime {
	kst := now.In(KST)
	if kst.Minute() < publishMinute {
		kst = kst.Add(-time.Hour)
	}
	return ObservationTime{
		Date: kst.Format("20060102"),
		Time: kst.Format("15") + "00",
	}
}
