package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/studyflow-app/studyflow/internal/models"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	geminiModel   = "gemini-1.5-pro"
)

// Proposal is a session-shaped record returned by the generation capability,
// not yet persisted. Timestamps travel as ISO-8601 strings on the wire.
type Proposal struct {
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Subject       string    `json:"subject,omitempty"`
	RelatedTaskID string    `json:"related_task_id,omitempty"`
}

// Generator proposes study sessions for a non-empty task list. An error or an
// empty result are both treated as a failed generation by the planner; the
// planner never retries.
type Generator interface {
	ProposeSessions(ctx context.Context, tasks []models.Task) ([]Proposal, error)
}

// GeminiClient calls the Google Generative Language API to turn the owner's
// task list into session proposals.
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	now     func() time.Time
}

// NewGeminiClient creates a client for the Gemini generateContent API.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: geminiBaseURL,
		model:   geminiModel,
		client:  &http.Client{Timeout: 60 * time.Second},
		now:     time.Now,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ProposeSessions sends the task list to Gemini and parses the proposed
// sessions out of the response text.
func (c *GeminiClient) ProposeSessions(ctx context.Context, tasks []models.Task) ([]Proposal, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini api key not set")
	}
	if len(tasks) == 0 {
		return nil, nil
	}

	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: c.buildPrompt(tasks)}}},
		},
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response content")
	}

	return parseProposals(apiResp.Candidates[0].Content.Parts[0].Text)
}

// buildPrompt renders the task list into the scheduling prompt.
func (c *GeminiClient) buildPrompt(tasks []models.Task) string {
	var b strings.Builder
	b.WriteString("Based on the following list of study tasks, create an optimal study schedule for the next 7 days.\n")
	b.WriteString("For each task, create appropriate study sessions with smart time allocation.\n")
	b.WriteString("Include breaks between intense sessions and prioritize tasks with upcoming due dates.\n\nTasks:\n")

	for _, t := range tasks {
		fmt.Fprintf(&b, "- Title: %s\n  ID: %s\n", t.Title, t.ID)
		if t.Description != "" {
			fmt.Fprintf(&b, "  Description: %s\n", t.Description)
		}
		if t.Due != nil {
			fmt.Fprintf(&b, "  Due Date: %s\n", t.Due.Format(time.RFC3339))
		}
		if t.Priority != "" {
			fmt.Fprintf(&b, "  Priority: %s\n", t.Priority)
		}
		if t.Subject != "" {
			fmt.Fprintf(&b, "  Subject: %s\n", t.Subject)
		}
		if t.Status != "" {
			fmt.Fprintf(&b, "  Status: %s\n", t.Status)
		}
	}

	fmt.Fprintf(&b, "\nCurrent date: %s\n\n", c.now().Format(time.RFC3339))
	b.WriteString("Return the result as a JSON array of study sessions. Each session should include:\n")
	b.WriteString("- title (string)\n")
	b.WriteString("- description (string, optional)\n")
	b.WriteString("- start_time (ISO date string)\n")
	b.WriteString("- end_time (ISO date string)\n")
	b.WriteString("- subject (string, optional)\n")
	b.WriteString("- related_task_id (string, optional - the ID of the related task)\n\n")
	b.WriteString("Format the response as a valid JSON array with no additional text or explanation.")
	return b.String()
}

// parseProposals extracts the JSON array from the model response, handling
// markdown code fences.
func parseProposals(text string) ([]Proposal, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		}
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	var proposals []Proposal
	if err := json.Unmarshal([]byte(cleaned), &proposals); err != nil {
		return nil, fmt.Errorf("parse proposals JSON: %w", err)
	}
	return proposals, nil
}
