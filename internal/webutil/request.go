package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Kumkum15/Review-System/internal/model"
)

// maxBodyBytes はJSONリクエストボディの上限 (レビュー本文 + 余裕)
const maxBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードします。
// 未知のフィールド、複数のJSON値、空ボディは model.ErrInvalidInput として返します。
// json のエラーも errors.As で取り出せます。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidInput, err)
	}
	// 2つ目のJSON値が続いていないか
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: request body must contain a single JSON value", model.ErrInvalidInput)
	}
	return nil
}
