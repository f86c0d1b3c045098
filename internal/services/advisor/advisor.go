// Package advisor answers free-form farming questions by passing them to a
// generative-AI endpoint with a fixed farming system prompt. The feature is
// best-effort: upstream failures degrade to a canned answer, never an error.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

const systemPrompt = "You are a helpful farming assistant for an app called CropSaarthi. " +
	"Provide accurate, practical advice about farming, crop diseases, " +
	"organic treatments, weather-related farming tips, and sustainable " +
	"agricultural techniques. Keep answers clear, concise and focused on " +
	"helping farmers in India. Always prioritize organic and sustainable " +
	"solutions when possible."

// FallbackAnswer is returned when the upstream is unreachable.
const FallbackAnswer = "The farming assistant is offline right now. " +
	"Please try again later, or check the irrigation planner and scheme browser which work offline."

type genRequest struct {
	Contents []content `json:"contents"`
	Config   genConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role"`
}

type part struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type genResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Advisor is the chat client. The endpoint takes the full generateContent
// URL without the key query parameter.
type Advisor struct {
	endpoint string
	apiKey   string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
}

func New(endpoint, apiKey string, timeout time.Duration) *Advisor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Advisor{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "advisor-upstream",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 3
			},
		}),
	}
}

// Ask answers a farming question. degraded is true when the fallback answer
// was used.
func (a *Advisor) Ask(ctx context.Context, question string) (answer string, degraded bool) {
	res, err := a.breaker.Execute(func() (any, error) {
		return a.ask(ctx, question)
	})
	if err != nil {
		log.Printf("advisor: upstream error: %v (using fallback)", err)
		return FallbackAnswer, true
	}
	return res.(string), false
}

func (a *Advisor) ask(ctx context.Context, question string) (string, error) {
	reqBody := genRequest{
		Contents: []content{
			{Parts: []part{{Text: systemPrompt}}, Role: "user"},
			{Parts: []part{{Text: question}}, Role: "user"},
		},
		Config: genConfig{Temperature: 0.7, TopP: 0.95, TopK: 40, MaxOutputTokens: 1024},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", a.endpoint, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("advisor status %d: %s", resp.StatusCode, string(body))
	}

	var out genResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
