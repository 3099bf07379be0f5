package webutil

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"github.com/Kumkum15/Review-System/internal/model"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"rating":   "評価",
	"review":   "レビュー",
	"password": "パスワード",
}

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation("required", "{0}は必須項目です。", nil)
	// min/max は数値と文字列でメッセージを変える
	registerTranslation("min", "{0}は{1}以上で入力してください。", fieldParam)
	registerTranslation("max", "{0}は{1}以下で入力してください。", fieldParam)
	registerTranslation("min_len", "{0}は{1}文字以上で入力してください。", fieldParam)
	registerTranslation("max_len", "{0}は{1}文字以下で入力してください。", fieldParam)
}

func fieldParam(fe validator.FieldError) []string {
	return []string{fe.Param()}
}

// registerTranslation は、メッセージテンプレートを登録するヘルパー関数
func registerTranslation(tag, msg string, params func(fe validator.FieldError) []string) {
	err := Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
		return ut.Add(tag, msg, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		key := tag
		// 文字列に対する min/max は文字数のメッセージを使う
		if fe.Kind() == reflect.String && (tag == "min" || tag == "max") {
			key = tag + "_len"
		}
		args := []string{translateFieldName(fe.Field())}
		if params != nil {
			args = append(args, params(fe)...)
		}
		t, err := ut.T(key, args...)
		if err != nil {
			return fe.Error()
		}
		return t
	})
	if err != nil {
		log.Fatal(err)
	}
}

func translateFieldName(field string) string {
	if translated, ok := fieldNameTranslations[field]; ok {
		return translated
	}
	return field
}

// ValidateStruct は構造体を検証し、失敗した場合は最初のエラーを翻訳した AppError を返します
func ValidateStruct(s interface{}) error {
	err := Validator.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// バリデーションライブラリ自体のエラーなど、予期せぬエラー
		return err
	}
	firstErr := validationErrors[0]
	return model.NewAppError(
		"VALIDATION_ERROR",
		firstErr.Translate(Trans),
		firstErr.Field(), // エラーが発生したフィールド (jsonタグ名)
		model.ErrInvalidInput,
	)
}
