// internal/model/stats.go
package model

import "strconv"

// Distribution は評価値 "1"〜"5" ごとの件数
type Distribution map[string]int64

// NewDistribution は5つのバケットをすべて0で初期化した Distribution を返します
func NewDistribution() Distribution {
	d := make(Distribution, MaxRating)
	for r := MinRating; r <= MaxRating; r++ {
		d[strconv.Itoa(r)] = 0
	}
	return d
}

// StatsResponse は集計APIのレスポンスDTO
type StatsResponse struct {
	Total         int64        `json:"total"`
	AverageRating float64      `json:"average_rating"`
	MedianRating  float64      `json:"median_rating"`
	Distribution  Distribution `json:"distribution"`
}

// TimelinePoint は日付(UTC)ごとの投稿件数
type TimelinePoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}
