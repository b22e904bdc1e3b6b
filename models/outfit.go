package models

// Recommendation은 날씨에 맞는 코디 가이드 문구와 이미지 검색어 후보입니다.
// Keywords 는 비어 있지 않으며 순서가 유지됩니다.
type Recommendation struct {
	Desc     string   `json:"desc"`
	Keywords []string `json:"keyword"`
}
