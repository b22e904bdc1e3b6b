package outfit

import (
	"math"

	"github.com/mseongj/weather-outfit/models"
)

var catchAll = math.Inf(-1)

// 비+눈 (PTY 2, 6) 은 기온과 관계없이 한 가지 안내를 씁니다.
var mixedGuide = models.Recommendation{
	Desc:     "비와 눈이 섞여 내리고 있어요. 방수 코트, 레인부츠, 우산을 모두 챙기세요.",
	Keywords: []string{"waterproof winter coat rain snow boots umbrella", "sleet weather outfit", "rain snow winter fashion"},
}

// 비/빗방울 (PTY 1, 5)
var rainGuide = Table{
	{Min: 20, Desc: "비가 내리고 있어요. 가벼운 우비나 방수 재킷, 우산을 꼭 챙기세요.",
		Keywords: []string{"raincoat umbrella rainy day outfit", "rain jacket street style", "waterproof outfit rainy"}},
	{Min: 12, Desc: "비가 오는 선선한 날씨입니다. 트렌치코트와 방수 부츠를 추천해요.",
		Keywords: []string{"trench coat rain boots rainy outfit", "rainy day trench coat style", "rain boots fashion"}},
	{Min: catchAll, Desc: "비가 오고 쌀쌀합니다. 방수 패딩과 레인부츠로 완벽 대비하세요.",
		Keywords: []string{"waterproof puffer jacket rain boots", "cold rainy weather outfit", "rain parka winter style"}},
}

// 눈/눈날림 (PTY 3, 7)
var snowGuide = Table{
	{Min: 0, Desc: "눈이 내리고 있어요! 방수 부츠와 두꺼운 코트로 따뜻하게 입으세요.",
		Keywords: []string{"snow boots winter coat snowy day outfit", "snowy weather fashion", "winter snow street style"}},
	{Min: catchAll, Desc: "눈이 내리는 강추위입니다. 방한 패딩, 방수 부츠, 목도리, 장갑, 귀마개로 완무장하세요.",
		Keywords: []string{"heavy snow puffer jacket winter boots scarf gloves earmuffs", "extreme cold winter outfit", "winter parka scarf gloves style"}},
}

// 강수 없음
var clearGuide = Table{
	{Min: 28, Desc: "무더운 날씨입니다. 시원한 민소매나 반바지를 추천해요.",
		Keywords: []string{"summer street fashion", "hot weather casual outfit", "summer minimal style"}},
	{Min: 23, Desc: "반팔 티셔츠를 입기 딱 좋은 날씨예요.",
		Keywords: []string{"casual summer style", "tshirt street fashion", "summer day outfit"}},
	{Min: 20, Desc: "얇은 셔츠나 가디건을 걸치면 좋습니다.",
		Keywords: []string{"light spring layering", "cardigan spring outfit", "spring casual fashion"}},
	{Min: 17, Desc: "야상점퍼나 맨투맨/후드티가 잘 어울리는 기온이에요.",
		Keywords: []string{"windbreaker street style", "casual fall hoodie fashion", "field Jacket look", "field coat style"}},
	{Min: 12, Desc: "가죽 자켓이나 트렌치코트, 항공점퍼를 추천해요.",
		Keywords: []string{"trench coat look", "jacket autumn street style", "leather jacket casual outfit", "bomber Jacket style"}},
	{Min: 9, Desc: "쌀쌀해요. 코트나 경량 패딩을 준비하세요.",
		Keywords: []string{"light puffer jacket", "quilted jacket street style", "autumn coat fashion"}},
	{Min: 5, Desc: "추운 날씨입니다. 코트와 보온 내의를 챙기세요.",
		Keywords: []string{"winter wool coat", "coat scarf winter fashion", "warm winter layering style"}},
	{Min: 0, Desc: "많이 춥습니다. 두꺼운 패딩에 목도리와 장갑을 꼭 챙기세요.",
		Keywords: []string{"winter puffer jacket scarf gloves beanie", "cold weather puffer coat style", "winter beanie scarf outfit"}},
	{Min: catchAll, Desc: "영하의 강추위입니다! 두꺼운 패딩, 방한 모자, 목도리, 장갑, 귀마개까지 완벽히 챙기세요.",
		Keywords: []string{"extreme cold weather outfit scarf gloves earmuffs winter hat", "freezing cold winter parka style", "heavy winter coat hat gloves fashion"}},
}
