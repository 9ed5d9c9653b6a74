// File: services/intelligence/gemini.go
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"repairdesk/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// modelInvoker performs a single conversational exchange against one named
// model. Kept narrow so the failover loop can be exercised with a stub.
type modelInvoker interface {
	Invoke(ctx context.Context, modelName, system string, history []models.ChatTurn, message string, image []byte, imageMIME string) (string, error)
}

// GeminiInvoker implements modelInvoker against the Gemini API.
type GeminiInvoker struct {
	client  *genai.Client
	timeout time.Duration
}

// NewGeminiInvoker creates a Gemini-backed invoker. Each call gets its own
// timeout so one hung request cannot stall the whole turn budget.
func NewGeminiInvoker(apiKey string, timeout time.Duration) (*GeminiInvoker, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiInvoker{client: client, timeout: timeout}, nil
}

// Invoke sends one message on a fresh chat session seeded with the prior
// transcript and returns the model's text reply.
func (g *GeminiInvoker) Invoke(ctx context.Context, modelName, system string, history []models.ChatTurn, message string, image []byte, imageMIME string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model := g.client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	cs := model.StartChat()
	cs.History = buildHistory(history)

	parts := []genai.Part{genai.Text(message)}
	if len(image) > 0 {
		parts = append(parts, genai.ImageData(imageFormat(imageMIME), image))
	}

	resp, err := cs.SendMessage(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini send error: %w", err)
	}
	return collectText(resp), nil
}

func buildHistory(turns []models.ChatTurn) []*genai.Content {
	var history []*genai.Content
	for _, t := range turns {
		role := t.Role
		if role != models.RoleModel {
			role = models.RoleUser
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Text)},
		})
	}
	return history
}

func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if textPart, ok := part.(genai.Text); ok {
				sb.WriteString(string(textPart))
			}
		}
		break
	}
	return sb.String()
}

// imageFormat maps a MIME type to the short format name the SDK expects.
func imageFormat(mime string) string {
	format := strings.TrimPrefix(strings.ToLower(mime), "image/")
	switch format {
	case "jpg", "":
		return "jpeg"
	}
	return format
}
