package rules

import "cardledger/internal/model"

// Defaults returns the built-in category registry. Order matters: it is
// the classification tie-break, and the catch-all sits last.
func Defaults() []model.Category {
	return []model.Category{
		{Key: "food", Color: "#EF4444", Keywords: []string{"김밥", "식당", "맥도날드", "버거킹", "치킨", "피자", "배달의민족", "요기요", "mcdonald", "burger", "kimbap"}},
		{Key: "cafe", Color: "#F59E0B", Keywords: []string{"스타벅스", "카페", "커피", "이디야", "투썸", "메가커피", "starbucks", "coffee"}},
		{Key: "transport", Color: "#3B82F6", Keywords: []string{"지하철", "버스", "택시", "카카오T", "코레일", "ktx", "taxi", "metro"}},
		{Key: "car", Color: "#6366F1", Keywords: []string{"주유", "주차", "세차", "하이패스", "gs칼텍스", "sk에너지", "parking", "fuel"}},
		{Key: "shopping", Color: "#EC4899", Keywords: []string{"쿠팡", "무신사", "올리브영", "백화점", "이마트", "coupang", "amazon"}},
		{Key: "convenience", Color: "#10B981", Keywords: []string{"gs25", "cu", "세븐일레븐", "이마트24", "편의점", "7-eleven"}},
		{Key: "medical", Color: "#14B8A6", Keywords: []string{"병원", "약국", "의원", "치과", "한의원", "pharmacy", "clinic"}},
		{Key: "leisure", Color: "#8B5CF6", Keywords: []string{"cgv", "메가박스", "롯데시네마", "넷플릭스", "영화", "netflix", "spotify"}},
		{Key: "telecom", Color: "#0EA5E9", Keywords: []string{"skt", "kt", "lg유플러스", "알뜰폰", "통신"}},
		{Key: model.CatchAllKey, Color: "#9CA3AF", Keywords: []string{}},
	}
}
