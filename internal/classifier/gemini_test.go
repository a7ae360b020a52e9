package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const structuredIssueJSON = `{
  "structured_issue": {
    "title": "Streetlight Broken Near School",
    "category": "Utilities (Water/Electric)",
    "summary": "A streetlight near the school is broken.",
    "location": "School Road, Pune",
    "priority_metrics": {"urgency": 7, "impact": 8, "final_score": 7.4, "level": "high"},
    "authority_action_plan": ["Inspect the pole", "Replace the bulb"],
    "citizen_message": "We will fix the light soon."
  }
}`

func geminiStub(t *testing.T, modelText string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) == 0 || len(req.Contents[0].Parts) == 0 {
			t.Error("request carries no content parts")
		}

		w.WriteHeader(status)
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": modelText}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestAnalyzeParsesStructuredIssue(t *testing.T) {
	server := geminiStub(t, structuredIssueJSON, http.StatusOK)
	defer server.Close()

	c := NewGeminiClassifier(server.URL, "test-model", "test-key", 5*time.Second)
	analysis, err := c.Analyze(context.Background(), "Streetlight broken near school, very dark and unsafe")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if analysis.Category != "Utilities (Water/Electric)" {
		t.Errorf("category = %q", analysis.Category)
	}
	if analysis.Level != "high" {
		t.Errorf("level = %q", analysis.Level)
	}
	if analysis.Urgency != 7 || analysis.Impact != 8 {
		t.Errorf("metrics = %v/%v", analysis.Urgency, analysis.Impact)
	}
	if len(analysis.ActionPlan) != 2 {
		t.Errorf("action plan = %v", analysis.ActionPlan)
	}
}

func TestAnalyzeAcceptsFencedResponse(t *testing.T) {
	server := geminiStub(t, "```json\n"+structuredIssueJSON+"\n```", http.StatusOK)
	defer server.Close()

	c := NewGeminiClassifier(server.URL, "test-model", "test-key", 5*time.Second)
	analysis, err := c.Analyze(context.Background(), "Streetlight broken near school")
	if err != nil {
		t.Fatalf("analyze fenced: %v", err)
	}
	if analysis.Title != "Streetlight Broken Near School" {
		t.Errorf("title = %q", analysis.Title)
	}
}

func TestAnalyzeNonOKStatusFails(t *testing.T) {
	server := geminiStub(t, structuredIssueJSON, http.StatusTooManyRequests)
	defer server.Close()

	c := NewGeminiClassifier(server.URL, "test-model", "test-key", 5*time.Second)
	if _, err := c.Analyze(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestAnalyzeRespectsContextCancellation(t *testing.T) {
	server := geminiStub(t, structuredIssueJSON, http.StatusOK)
	defer server.Close()

	c := NewGeminiClassifier(server.URL, "test-model", "test-key", 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Analyze(ctx, "anything"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain object", `{"a": 1}`, false},
		{"fenced", "```json\n{\"a\": 1}\n```", false},
		{"surrounded by prose", `Here you go: {"a": 1} hope that helps`, false},
		{"no object", "sorry, I cannot help", true},
		{"broken json", `{"a": `, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractJSON(tc.input)
			if tc.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseAnalysisRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"no envelope", `{}`},
		{"missing metrics", `{"structured_issue": {"title": "t", "category": "c", "summary": "s", "location": "l", "authority_action_plan": [], "citizen_message": "m"}}`},
		{"missing level", `{"structured_issue": {"title": "t", "category": "c", "summary": "s", "location": "l", "priority_metrics": {"urgency": 1, "impact": 2, "final_score": 1.4}, "authority_action_plan": [], "citizen_message": "m"}}`},
		{"missing action plan", `{"structured_issue": {"title": "t", "category": "c", "summary": "s", "location": "l", "priority_metrics": {"urgency": 1, "impact": 2, "final_score": 1.4, "level": "low"}, "citizen_message": "m"}}`},
		{"non-numeric urgency", `{"structured_issue": {"title": "t", "category": "c", "summary": "s", "location": "l", "priority_metrics": {"urgency": "high", "impact": 2, "final_score": 1.4, "level": "low"}, "authority_action_plan": [], "citizen_message": "m"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseAnalysis(tc.payload); err == nil {
				t.Error("expected rejection")
			}
		})
	}
}

func TestParseAnalysisAcceptsCompletePayload(t *testing.T) {
	analysis, err := parseAnalysis(structuredIssueJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if analysis.CitizenMessage != "We will fix the light soon." {
		t.Errorf("citizen message = %q", analysis.CitizenMessage)
	}
}
