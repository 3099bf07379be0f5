// internal/model/submission.go
package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Submission はユーザーが投稿した評価・レビューと、生成された3種類のテキストを表します
type Submission struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Rating            int       `gorm:"not null;check:chk_submissions_rating,rating >= 1 AND rating <= 5;index" json:"rating"`
	Review            string    `gorm:"type:text;not null" json:"review"`
	GeneratedResponse string    `gorm:"type:text" json:"user_response"` // ユーザー向けの返信
	GeneratedSummary  string    `gorm:"type:text" json:"summary"`       // 一文要約
	GeneratedActions  string    `gorm:"type:text" json:"actions"`       // 社内向けアクション ("- " 始まりの改行区切り)
	CreatedAt         time.Time `gorm:"not null;index" json:"created_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

// CreateSubmissionRequest はレビュー投稿リクエストDTO
// review は空文字を許可する (要約はフォールバック側で扱う)。キーの省略はハンドラで弾く
type CreateSubmissionRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review"`
}

// SubmissionListQuery は一覧取得の絞り込み条件
type SubmissionListQuery struct {
	Rating *int
	Limit  int
	Offset int
}
