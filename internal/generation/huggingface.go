package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// maxResponseBytes を超えるレスポンスは読み込まない
const maxResponseBytes = 1 << 20

const defaultMaxNewTokens = 200

// HuggingFaceClient は Hugging Face Inference API (text-generation) のクライアントです。
//
//	request:  {"inputs": "<prompt>", "parameters": {...}}
//	response: [{"generated_text": "..."}]
type HuggingFaceClient struct {
	url        string
	apiToken   string
	httpClient *http.Client
}

func NewHuggingFaceClient(url, apiToken string, timeout time.Duration) *HuggingFaceClient {
	return &HuggingFaceClient{
		url:      url,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type hfParameters struct {
	MaxNewTokens   int  `json:"max_new_tokens"`
	ReturnFullText bool `json:"return_full_text"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

func (c *HuggingFaceClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(hfRequest{
		Inputs:     prompt,
		Parameters: hfParameters{MaxNewTokens: defaultMaxNewTokens, ReturnFullText: false},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call generation endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	return parseHuggingFaceResponse(body, prompt)
}

// parseHuggingFaceResponse は [{"generated_text": "..."}] の形だけを受け付けます
func parseHuggingFaceResponse(body []byte, prompt string) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: invalid JSON", ErrUnexpectedShape)
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return "", fmt.Errorf("%w: top-level value is not an array", ErrUnexpectedShape)
	}
	generated := root.Get("0.generated_text")
	if generated.Type != gjson.String {
		return "", fmt.Errorf("%w: missing generated_text", ErrUnexpectedShape)
	}

	text := html.UnescapeString(generated.String())
	// return_full_text を無視するエンドポイントではプロンプトが先頭に付いてくる
	text = strings.TrimPrefix(text, prompt)
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyOutput
	}
	return text, nil
}
