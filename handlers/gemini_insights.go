package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"posadmin/models"
)

const geminiModel = "gemini-1.5-flash"

// GeminiInsighter asks Gemini for a short briefing on a dashboard snapshot.
type GeminiInsighter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

var _ Insighter = (*GeminiInsighter)(nil)

func NewGeminiInsighter(ctx context.Context, apiKey string) (*GeminiInsighter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiInsighter{client: client, model: client.GenerativeModel(geminiModel)}, nil
}

func (g *GeminiInsighter) Close() error {
	return g.client.Close()
}

func (g *GeminiInsighter) Insights(ctx context.Context, snap *models.DashboardSnapshot) (*models.Insights, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode dashboard data: %w", err)
	}

	prompt := fmt.Sprintf(
		`You are a business analyst for a restaurant point of sale system. Write one sentence summarising today's performance, then up to three lines starting with "- " highlighting what the owner should act on. Amounts are in Sri Lankan rupees. The dashboard data is: %s`,
		string(data),
	)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate insights: %w", err)
	}
	return parseInsights(responseText(resp))
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		break
	}
	return b.String()
}

// parseInsights splits model output into a summary and "- " bullet lines.
func parseInsights(text string) (*models.Insights, error) {
	out := &models.Insights{}
	var summary []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			out.Highlights = append(out.Highlights, strings.TrimSpace(line[2:]))
		default:
			summary = append(summary, line)
		}
	}
	out.Summary = strings.Join(summary, " ")
	if out.Summary == "" && len(out.Highlights) == 0 {
		return nil, errors.New("empty response from model")
	}
	return out, nil
}
