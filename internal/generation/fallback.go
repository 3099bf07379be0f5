package generation

import (
	"strings"
)

// 要約フォールバックの最大文字数 (rune)
const maxFallbackSummaryRunes = 150

const emptyReviewSummary = "No review text provided."

// ratingBand は評価を3段階に分ける
type ratingBand int

const (
	bandNegative ratingBand = iota // 1-2
	bandNeutral                    // 3
	bandPositive                   // 4-5
)

func bandOf(rating int) ratingBand {
	switch {
	case rating >= 4:
		return bandPositive
	case rating == 3:
		return bandNeutral
	default:
		return bandNegative
	}
}

var fallbackResponses = map[ratingBand]string{
	bandPositive: "Thank you for the wonderful feedback! We're delighted you had a great experience and hope to see you again soon.",
	bandNeutral:  "Thank you for sharing your feedback. We'll use your comments to make your next visit better.",
	bandNegative: "We're sorry your experience fell short. Thank you for letting us know; we'll look into it and work to improve.",
}

var fallbackActions = map[ratingBand][]string{
	bandPositive: {
		"Share the positive feedback with the team.",
		"Note what worked well so it can be repeated.",
		"Invite the customer to come back.",
	},
	bandNeutral: {
		"Ask the customer for more detail on what could be better.",
		"Review the mentioned areas for improvement.",
		"Watch for similar feedback from other customers.",
	},
	bandNegative: {
		"Investigate the reported problem.",
		"Contact the customer to follow up.",
		"Agree on a corrective action plan with the team.",
	},
}

// FallbackUserResponse は評価に応じた定型の返信を返します
func FallbackUserResponse(rating int) string {
	return fallbackResponses[bandOf(rating)]
}

// FallbackSummary はレビューの最初の文 (最初の '.' まで) を最大150文字で返します
func FallbackSummary(review string) string {
	review = strings.TrimSpace(review)
	if review == "" {
		return emptyReviewSummary
	}
	first, _, _ := strings.Cut(review, ".")
	first = strings.TrimSpace(first)
	if first == "" {
		// "..." のように先頭が '.' のレビュー
		first = review
	}
	runes := []rune(first)
	if len(runes) > maxFallbackSummaryRunes {
		runes = runes[:maxFallbackSummaryRunes]
	}
	return strings.TrimSpace(string(runes))
}

// FallbackActions は評価に応じた3つのアクションを "- " 始まりの行で返します
func FallbackActions(rating int) string {
	return FormatActions(fallbackActions[bandOf(rating)])
}

// FormatActions はアクション項目を "- item" の改行区切りに整形します
func FormatActions(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
