package test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Dev note: Usually we'd write a dedicated test for utilities like this, however the entire functionality is covered by
// other tests using it, so it should be fine.

// KeywordVerdictPromoting - Used by tests to make the fake model return a confident "promoting" verdict.
const KeywordVerdictPromoting = "SS_PROMOTING"

// KeywordVerdictDebunking - Used by tests to make the fake model return a confident "debunking" verdict.
const KeywordVerdictDebunking = "SS_DEBUNKING"

// KeywordVerdictLowConfidence - Used by tests to make the fake model return a low-confidence verdict.
const KeywordVerdictLowConfidence = "SS_LOW_CONFIDENCE"

// KeywordVerdictInvalid - Used by tests to make the fake model return an unknown verdict with a bad confidence.
const KeywordVerdictInvalid = "SS_INVALID_VERDICT"

// KeywordMalformed - Used by tests to make the fake model return non-JSON content.
const KeywordMalformed = "SS_MALFORMED"

// KeywordDeepConcerns - Used by tests to make the fake model return deep-analysis concerns.
const KeywordDeepConcerns = "SS_DEEP_CONCERNS"

// KeywordIntentionalFail - Used by tests to always cause a 500 Internal Server Error response.
const KeywordIntentionalFail = "SS_INTENTIONAL_FAIL"

// MakeOpenAIChatServer - Creates a mock OpenAI Chat Completions API server for use in tests. The fake
// inspects the request body for the keywords above and responds with the matching canned completion.
func MakeOpenAIChatServer(t *testing.T, apiKey string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey != "" {
			assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))
		}
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), "unexpected path %s", r.URL.Path)

		b, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatal(err) // "should never happen"
		}
		req := string(b)

		if strings.Contains(req, KeywordIntentionalFail) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": {"message": "intentional failure"}}`))
			return
		}

		var content string
		if strings.Contains(req, KeywordVerdictPromoting) {
			content = `{"verdict": "promoting", "confidence": 0.9, "reasoning": "Actively promotes the flagged claim", "is_dangerous": true}`
		} else if strings.Contains(req, KeywordVerdictDebunking) {
			content = `{"verdict": "debunking", "confidence": 0.9, "reasoning": "Clearly refutes the flagged claim", "is_dangerous": false}`
		} else if strings.Contains(req, KeywordVerdictLowConfidence) {
			content = `{"verdict": "debunking", "confidence": 0.4, "reasoning": "Unclear intent", "is_dangerous": false}`
		} else if strings.Contains(req, KeywordVerdictInvalid) {
			content = `{"verdict": "definitely_fine", "confidence": 7.5, "reasoning": ""}`
		} else if strings.Contains(req, KeywordMalformed) {
			content = "Sure! Here's my analysis as JSON: {not json}"
		} else if strings.Contains(req, KeywordDeepConcerns) {
			content = `{"concerns": [{"category": "fire_safety", "severity": "high", "description": "Open flame indoors without ventilation"}], "overall_risk": "high", "summary": "Indoor fire hazard demonstrated without warnings"}`
		} else {
			t.Fatalf("Unexpected request: %s", req)
		}

		respondChatCompletion(t, w, content)
	}))
}

func respondChatCompletion(t *testing.T, w http.ResponseWriter, content string) {
	resp := map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatal(err)
	}
}
