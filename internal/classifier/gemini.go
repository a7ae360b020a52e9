package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spec-kit/civicpulse-service/internal/domain"
)

// Classifier turns a free-text complaint description into structured
// metadata. Implementations may fail for transport or parse reasons; the
// caller treats any failure as a single opaque classification failure.
type Classifier interface {
	Analyze(ctx context.Context, description string) (*domain.Analysis, error)
}

const systemInstruction = `You are the "CivicPulse Intelligence Engine" for Indian municipalities.
Your job is to read messy citizen complaints and turn them into simple, structured reports.

Language Rule: Use extremely simple, clear, and understandable language. No complex jargon or professional "corporate" talk.

Objectives:
1. Extract Indian Location: Look for landmarks and city names (e.g. Bangalore, Mumbai).
2. Categorize: Choose from: Public Works, Sanitation, Utilities (Water/Electric), Security & Police, Public Health, Roads & Transport, General Administration.
3. Analyze Priority (1-10):
   - Danger: Is it dangerous for people?
   - Impact: How many people are affected?
   - Formula: Final Score = (Danger * 0.6) + (Impact * 0.4)
4. Action Plan: 3 simple steps to fix the problem.
5. Citizen Message: Write a very friendly and simple message to reassure the citizen that someone is fixing it.

Tone: Simple, clear, and helpful.`

// responseSchema constrains the model to the structured_issue envelope.
// Every field is required so a schema violation shows up as a missing key
// rather than a silently absent value.
const responseSchema = `{
  "type": "OBJECT",
  "properties": {
    "structured_issue": {
      "type": "OBJECT",
      "properties": {
        "title": {"type": "STRING"},
        "category": {"type": "STRING"},
        "summary": {"type": "STRING"},
        "location": {"type": "STRING"},
        "priority_metrics": {
          "type": "OBJECT",
          "properties": {
            "urgency": {"type": "NUMBER"},
            "impact": {"type": "NUMBER"},
            "final_score": {"type": "NUMBER"},
            "level": {"type": "STRING"}
          },
          "required": ["urgency", "impact", "final_score", "level"]
        },
        "authority_action_plan": {"type": "ARRAY", "items": {"type": "STRING"}},
        "citizen_message": {"type": "STRING"}
      },
      "required": ["title", "category", "summary", "location", "priority_metrics", "authority_action_plan", "citizen_message"]
    }
  },
  "required": ["structured_issue"]
}`

// GeminiClassifier calls the Gemini generateContent API.
type GeminiClassifier struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateRequest struct {
	Contents          []generateContent `json:"contents"`
	SystemInstruction generateContent   `json:"systemInstruction"`
	GenerationConfig  generationConfig  `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewGeminiClassifier constructs a classifier for the given endpoint and
// model. The timeout bounds the whole call; the per-request context can
// cancel earlier when the submitter goes away.
func NewGeminiClassifier(baseURL, model, apiKey string, timeout time.Duration) *GeminiClassifier {
	return &GeminiClassifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Analyze submits the description and parses the structured result.
func (c *GeminiClassifier) Analyze(ctx context.Context, description string) (*domain.Analysis, error) {
	reqBody := generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: fmt.Sprintf("Analyze this citizen complaint: %q", description)}}},
		},
		SystemInstruction: generateContent{Parts: []generatePart{{Text: systemInstruction}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   json.RawMessage(responseSchema),
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini response contained no candidates")
	}

	payload, err := ExtractJSON(genResp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}
	return parseAnalysis(payload)
}

// ExtractJSON pulls the JSON object out of a model response that may be
// wrapped in markdown fences or surrounding prose.
func ExtractJSON(response string) (string, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}

	jsonStr := response[start : end+1]
	var js json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &js); err != nil {
		return "", fmt.Errorf("extracted text is not valid JSON: %w", err)
	}
	return jsonStr, nil
}
