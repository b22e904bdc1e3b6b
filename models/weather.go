package models

// WeatherResponse는 기상청 초단기실황(getUltraSrtNcst) API 응답 JSON 구조체입니다.
type WeatherResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			DataType string `json:"dataType"`
			Items    struct {
				Item []ObservationItem `json:"item"`
			} `json:"items"`
			PageNo     int `json:"pageNo"`
			NumOfRows  int `json:"numOfRows"`
			TotalCount int `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// ObservationItem은 실황 응답의 (category, obsrValue) 한 쌍입니다.
type ObservationItem struct {
	BaseDate  string `json:"baseDate"`
	BaseTime  string `json:"baseTime"`
	Category  string `json:"category"`
	ObsrValue string `json:"obsrValue"`
	Nx        int    `json:"nx"`
	Ny        int    `json:"ny"`
}

// 실황 카테고리 코드
const (
	CategoryTemperature   = "T1H" // 기온 (℃)
	CategoryHumidity      = "REH" // 습도 (%)
	CategoryWindSpeed     = "WSD" // 풍속 (m/s)
	CategoryPrecipType    = "PTY" // 강수형태 (코드)
	CategoryPrecipitation = "RN1" // 1시간 강수량 (mm)
)

// WeatherRecord는 /api/weather 가 돌려주는 정규화된 날씨 데이터입니다.
// 응답에 없던 값은 nil 로 남습니다.
type WeatherRecord struct {
	CityName      string            `json:"cityName"`
	Temp          *float64          `json:"temp"`
	Humidity      *int              `json:"humidity"`
	WindSpeed     *float64          `json:"windSpeed"`
	PtyCode       PrecipitationCode `json:"ptyCode"`
	PtyLabel      string            `json:"ptyLabel"`
	Icon          string            `json:"icon"`
	Precipitation *string           `json:"precipitation"`
	Description   string            `json:"description"`
	BaseDate      string            `json:"baseDate"`
	BaseTime      string            `json:"baseTime"`
}
