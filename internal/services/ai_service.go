// internal/services/ai_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prodmarket/marketplace-backend/internal/config"
	"github.com/prodmarket/marketplace-backend/internal/models"
)

// AIResponder generates a chatbot answer from the user's message and the
// catalog the answer is allowed to draw on.
type AIResponder interface {
	GenerateResponse(ctx context.Context, message string, catalog []models.Product) (string, error)
}

// AIService talks to an OpenAI-compatible chat completions endpoint. When
// no API key is configured, or the remote call fails, it falls back to a
// local keyword matcher over the catalog so the chatbot always answers.
type AIService struct {
	cfg        config.AIConfig
	httpClient *http.Client
}

const (
	// maxAttempts bounds remote calls per question: one try plus one retry.
	maxAttempts    = 2
	attemptTimeout = 10 * time.Second
)

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// GenerateResponse answers the user's message grounded on the given
// catalog. The catalog is the only product knowledge the model receives.
func (s *AIService) GenerateResponse(ctx context.Context, message string, catalog []models.Product) (string, error) {
	if s.cfg.APIKey == "" {
		return s.fallbackResponse(message, catalog), nil
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		response, err := s.callChatCompletions(attemptCtx, message, catalog)
		cancel()
		if err == nil {
			return response, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	logrus.WithError(lastErr).Warn("AI request failed, using fallback response")
	return s.fallbackResponse(message, catalog), nil
}

func (s *AIService) callChatCompletions(ctx context.Context, message string, catalog []models.Product) (string, error) {
	reqBody := chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: s.buildSystemPrompt(catalog)},
			{Role: "user", Content: message},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completions returned status %d: %s", resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", err
	}

	if completion.Error != nil {
		return "", fmt.Errorf("chat completions error: %s", completion.Error.Message)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completions returned no choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// buildSystemPrompt renders the catalog into the system message. Only the
// products passed in are mentioned; the model is told not to invent any.
func (s *AIService) buildSystemPrompt(catalog []models.Product) string {
	var b strings.Builder
	b.WriteString("You are a helpful shopping assistant for a product marketplace. ")
	b.WriteString("Answer questions using only the product catalog below. ")
	b.WriteString("If the catalog does not contain what the customer asks about, say so. ")
	b.WriteString("Never invent products, prices or availability.\n\n")

	if len(catalog) == 0 {
		b.WriteString("The catalog is currently empty.")
		return b.String()
	}

	b.WriteString("Catalog:\n")
	for _, p := range catalog {
		fmt.Fprintf(&b, "- %s ($%s): %s [sold by %s]\n",
			p.Name, p.Price.StringFixed(2), p.Description, p.BusinessNameSnapshot)
	}

	return b.String()
}

// fallbackResponse is a local keyword matcher used when the remote model is
// unavailable. It recognizes product names, purchase intent and catalog
// listing requests.
func (s *AIService) fallbackResponse(message string, catalog []models.Product) string {
	lower := strings.ToLower(message)

	if len(catalog) == 0 {
		return "There are no products available right now. Please check back later."
	}

	var matches []models.Product
	for _, p := range catalog {
		if strings.Contains(lower, strings.ToLower(p.Name)) {
			matches = append(matches, p)
		}
	}

	if len(matches) > 0 {
		var b strings.Builder
		b.WriteString("Here's what I found:\n")
		for _, p := range matches {
			fmt.Fprintf(&b, "- %s: $%s. %s\n", p.Name, p.Price.StringFixed(2), p.Description)
		}
		if containsAny(lower, "buy", "purchase", "order", "get") {
			b.WriteString("To purchase, contact the seller through their business page.")
		}
		return b.String()
	}

	if containsAny(lower, "list", "show", "what do you have", "products", "catalog", "available") {
		var b strings.Builder
		b.WriteString("These products are available:\n")
		for _, p := range catalog {
			fmt.Fprintf(&b, "- %s ($%s)\n", p.Name, p.Price.StringFixed(2))
		}
		return b.String()
	}

	return "I can help you find products in our catalog. Ask me about a specific product, or say \"show products\" to see what's available."
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
