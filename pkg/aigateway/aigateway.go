// Package aigateway üçüncü parti LLM gateway'inin HTTP istemcisidir.
// Gateway rol etiketli mesaj listesi (opsiyonel tek görselle) alır; ya akan
// metin tamamlaması ya da sabit şemayla yapılandırılmış JSON döndürür.
//
// Hata sözleşmesi: 429 oran limiti, 402 kredi tükenmesi olarak ayrışır ve
// kullanıcıya özel mesajla gösterilir; diğer tüm 2xx dışı cevaplar genel
// hatadır. Bu katman hiçbir çağrıyı otomatik yeniden denemez.
package aigateway

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrRateLimited gateway 429 döndürdü.
	ErrRateLimited = errors.New("aigateway: oran limiti aşıldı")
	// ErrInsufficientCredits gateway 402 döndürdü.
	ErrInsufficientCredits = errors.New("aigateway: kredi bakiyesi yetersiz")
	// ErrGatewayFailure diğer tüm 2xx dışı cevaplar.
	ErrGatewayFailure = errors.New("aigateway: gateway hatası")
)

// Mesaj rolleri.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message rol etiketli tek mesajdır. ImageURL ile en fazla bir görsel gömülebilir.
type Message struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

// Client gateway istemcisi. Tüm çağrılar context üzerinden iptal edilebilir.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient yeni bir gateway istemcisi kurar.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type completionRequest struct {
	Model        string          `json:"model,omitempty"`
	Messages     []Message       `json:"messages"`
	Stream       bool            `json:"stream,omitempty"`
	OutputSchema json.RawMessage `json:"output_schema,omitempty"`
}

type completionResponse struct {
	Content string `json:"content"`
}

// Complete mesaj listesini gönderir ve tam metin cevabını döndürür.
func (c *Client) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	resp, err := c.post(ctx, "/completions", completionRequest{Model: model, Messages: messages})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("aigateway: cevap çözülemedi: %w", err)
	}
	return out.Content, nil
}

// CompleteStream akan tamamlama ister; her metin parçası için fn çağrılır.
// fn hata döndürürse akış kesilir ve o hata döner.
func (c *Client) CompleteStream(ctx context.Context, model string, messages []Message, fn func(chunk string) error) error {
	resp, err := c.post(ctx, "/completions", completionRequest{Model: model, Messages: messages, Stream: true})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// CompleteStructured sabit çıktı şemasıyla ("tool" çağrısı) yapılandırılmış
// JSON ister ve ham gövdeyi döndürür.
func (c *Client) CompleteStructured(ctx context.Context, model string, messages []Message, schema json.RawMessage) (json.RawMessage, error) {
	resp, err := c.post(ctx, "/completions", completionRequest{Model: model, Messages: messages, OutputSchema: schema})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("aigateway: cevap okunamadı: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: geçersiz JSON gövdesi", ErrGatewayFailure)
	}
	return body, nil
}

func (c *Client) post(ctx context.Context, path string, payload completionRequest) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if err := statusError(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// statusError HTTP durum kodunu hata taksonomisine çevirir.
func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return ErrInsufficientCredits
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%w: durum %d: %s", ErrGatewayFailure, resp.StatusCode, bytes.TrimSpace(msg))
}
