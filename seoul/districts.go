// Package seoul 은 서울시 25개 자치구와 각 구의 기상청 격자 좌표 표입니다.
package seoul

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Grid는 기상청 동네예보 격자 좌표입니다.
type Grid struct {
	Nx int `json:"nx"`
	Ny int `json:"ny"`
}

// District는 서울시 자치구 하나입니다.
type District struct {
	Name string `json:"name"`
	Grid Grid   `json:"grid"`
}

// DisplayName은 화면에 표시할 이름입니다. (예: 서울시 강서구)
func (d District) DisplayName() string {
	return "서울시 " + d.Name
}

// 기상청 격자 좌표 (행정구역별 위경도 변환표 기준, 구청 소재지)
var districts = []District{
	{"종로구", Grid{60, 127}},
	{"중구", Grid{60, 127}},
	{"용산구", Grid{60, 126}},
	{"성동구", Grid{61, 127}},
	{"광진구", Grid{62, 126}},
	{"동대문구", Grid{61, 127}},
	{"중랑구", Grid{62, 128}},
	{"성북구", Grid{61, 127}},
	{"강북구", Grid{61, 128}},
	{"도봉구", Grid{61, 129}},
	{"노원구", Grid{61, 129}},
	{"은평구", Grid{59, 127}},
	{"서대문구", Grid{59, 127}},
	{"마포구", Grid{59, 127}},
	{"양천구", Grid{58, 126}},
	{"강서구", Grid{58, 126}},
	{"구로구", Grid{58, 125}},
	{"금천구", Grid{59, 124}},
	{"영등포구", Grid{58, 126}},
	{"동작구", Grid{59, 125}},
	{"관악구", Grid{59, 125}},
	{"서초구", Grid{61, 125}},
	{"강남구", Grid{61, 126}},
	{"송파구", Grid{62, 126}},
	{"강동구", Grid{62, 126}},
}

var cityPrefixes = []string{"서울특별시", "서울시", "서울"}

// Directory는 읽기 전용 자치구 목록입니다. 프로세스 시작 시 한 번 만들어 주입합니다.
type Directory struct {
	list   []District
	byName map[string]District
}

// NewDirectory는 기본 자치구 표로 Directory 를 만듭니다.
func NewDirectory() *Directory {
	return newDirectory(districts)
}

func newDirectory(list []District) *Directory {
	d := &Directory{
		list:   make([]District, len(list)),
		byName: make(map[string]District, len(list)),
	}
	copy(d.list, list)
	for _, district := range list {
		d.byName[Normalize(district.Name)] = district
	}
	return d
}

// Lookup은 입력을 정규화해 자치구를 찾습니다.
func (d *Directory) Lookup(name string) (District, bool) {
	key := Normalize(name)
	if key == "" {
		return District{}, false
	}
	district, ok := d.byName[key]
	return district, ok
}

// List는 표의 순서대로 자치구 목록 사본을 돌려줍니다.
func (d *Directory) List() []District {
	out := make([]District, len(d.list))
	copy(out, d.list)
	return out
}

// Normalize는 비교용 키를 만듭니다. NFC 정규화 후 공백을 모두 지우고,
// 앞의 "서울시" 류 접두어와 끝의 "구" 를 뗍니다.
//
//	"서울시 강서구" → "강서", " 강서 " → "강서", "구로구" → "구로"
func Normalize(name string) string {
	s := norm.NFC.String(name)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	for _, prefix := range cityPrefixes {
		if rest, ok := strings.CutPrefix(s, prefix); ok && rest != "" {
			s = rest
			break
		}
	}
	return strings.TrimSuffix(s, "구")
}
