package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quizdeck_backend/internal/config"
	"quizdeck_backend/internal/util"
)

// CompletionRequest is one round trip to the generative model: a system
// instruction, a user instruction and optionally attached image bytes.
type CompletionRequest struct {
	System string
	Prompt string
	Image  []byte
}

// CapabilityClient is the generative capability boundary. Implementations
// block with a bounded timeout and never retry; callers decide whether a
// failure is worth a second attempt.
type CapabilityClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatCompletionRequest struct {
	Model         string        `json:"model"`
	Messages      []chatMessage `json:"messages"`
	Temperature   float64       `json:"temperature"`
	MaxTokens     int           `json:"max_tokens"`
	TopP          float64       `json:"top_p"`
	RepeatPenalty float64       `json:"repeat_penalty,omitempty"`
}

// chatCompletionResponse accepts both chat-style bodies (message.content)
// and plain completion bodies (text); whichever is present carries the text.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := []chatMessage{}
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}

	if len(req.Image) > 0 {
		encoded := base64.StdEncoding.EncodeToString(req.Image)
		messages = append(messages, chatMessage{
			Role: "user",
			Content: []map[string]interface{}{
				{"type": "text", "text": req.Prompt},
				{"type": "image_url", "image_url": map[string]string{
					"url": "data:image/png;base64," + encoded,
				}},
			},
		})
	} else {
		messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})
	}

	body := chatCompletionRequest{
		Model:         s.config.Model,
		Messages:      messages,
		Temperature:   s.config.Temperature,
		MaxTokens:     s.config.MaxTokens,
		TopP:          s.config.TopP,
		RepeatPenalty: s.config.RepeatPenalty,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", &util.CapabilityError{Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &util.CapabilityError{Err: fmt.Errorf("model API error (status %d): %s", resp.StatusCode, string(respBody))}
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &util.CapabilityError{Err: fmt.Errorf("malformed model response: %w", err)}
	}
	if result.Error != nil {
		return "", &util.CapabilityError{Err: fmt.Errorf("model API error: %s", result.Error.Message)}
	}

	for _, choice := range result.Choices {
		if choice.Message.Content != "" {
			return choice.Message.Content, nil
		}
		if choice.Text != "" {
			return choice.Text, nil
		}
	}

	return "", &util.CapabilityError{Err: fmt.Errorf("model returned no content")}
}
