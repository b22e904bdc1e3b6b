package models

// PexelsSearchResponse는 Pexels 검색 API 응답 전체 구조입니다.
type PexelsSearchResponse struct {
	Page         int           `json:"page"`
	PerPage      int           `json:"per_page"`
	TotalResults int           `json:"total_results"`
	Photos       []PexelsPhoto `json:"photos"`
}

// PexelsPhoto는 개별 사진 항목입니다.
type PexelsPhoto struct {
	ID     int64  `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Src    struct {
		Original string `json:"original"`
		Large    string `json:"large"`
		Medium   string `json:"medium"`
		Portrait string `json:"portrait"`
	} `json:"src"`
}

// ImageResult는 /api/images 응답입니다.
type ImageResult struct {
	Images []string `json:"images"`
}
