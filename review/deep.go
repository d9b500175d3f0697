package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/signature"
)

const deepAnalysisSystemPrompt = `You are a safety analyst for a video safety tool. Analyze the video content for dangers that simple keyword matching would miss.

Focus on CONTEXTUAL dangers:
1. Fire/heat without ventilation or safety warnings
2. Non-food-safe materials used in cooking/food prep
3. Alternative medicine presented as replacement for real medicine
4. Dangerous physical stunts (subway surfing, rooftop climbing, train hopping)
5. DIY projects with hidden electrical/chemical/structural hazards
6. Exercise techniques that could cause injury without proper form warnings
7. Unlicensed medical/legal/financial advice presented as authoritative
8. Child safety issues (dangerous activities with children)

DO NOT flag:
- Professional demonstrations with proper safety equipment
- Content that explicitly warns viewers about dangers
- Educational content explaining why something is dangerous
- Clearly fictional/entertainment content
- Standard cooking, DIY, or exercise content done safely

Respond with ONLY valid JSON (no markdown, no code fences):
{
    "concerns": [
        {
            "category": "fire_safety" | "food_safety" | "medical_misinfo" | "dangerous_stunts" | "diy_hazard" | "exercise_risk" | "unauthorized_advice" | "child_safety",
            "severity": "high" | "medium" | "low",
            "description": "Brief description of the specific concern"
        }
    ],
    "overall_risk": "low" | "medium" | "high",
    "summary": "One-sentence safety summary"
}

If no concerns found, return empty concerns array with "low" risk.`

const (
	deepMaxTokens     = 500
	deepMaxDescLength = 500
	deepMaxTranscript = 4000
)

// Concern - A single contextual danger found by deep transcript analysis.
type Concern struct {
	Category    string             `json:"category"`
	Severity    signature.Severity `json:"severity"`
	Description string             `json:"description"`
}

// DeepResult - Output of deep transcript analysis. Method is "openai" or
// "skipped" when no provider or transcript is available.
type DeepResult struct {
	Concerns    []Concern `json:"concerns"`
	OverallRisk string    `json:"overall_risk"`
	Summary     string    `json:"summary"`
	Method      string    `json:"method"`
}

// DeepAnalyzer - Model-only scan of the transcript for contextual dangers the
// regex layers cannot express. Strictly additive: failure or absence of the
// model yields a skipped result, never an error to the caller.
type DeepAnalyzer struct {
	client    *openai.Client
	modelName string
	enabled   bool
}

func NewDeepAnalyzer(cnf *config.InstanceConfig) *DeepAnalyzer {
	d := &DeepAnalyzer{
		modelName: cnf.DeepAnalysisModel,
		enabled:   cnf.DeepAnalysisEnabled && len(cnf.OpenAIApiKey) > 0,
	}
	if d.enabled {
		clientConfig := openai.DefaultConfig(cnf.OpenAIApiKey)
		if len(cnf.OpenAIBaseUrl) > 0 {
			clientConfig.BaseURL = cnf.OpenAIBaseUrl
		}
		d.client = openai.NewClientWithConfig(clientConfig)
	}
	return d
}

func skippedResult(reason string) *DeepResult {
	return &DeepResult{
		Concerns:    []Concern{},
		OverallRisk: "low",
		Summary:     reason,
		Method:      "skipped",
	}
}

func (d *DeepAnalyzer) AnalyzeTranscript(ctx context.Context, videoId string, title string, description string, channel string, transcript string) *DeepResult {
	if !d.enabled {
		return skippedResult("Deep analysis not enabled")
	}
	if transcript == "" {
		return skippedResult("No transcript available for deep analysis")
	}

	if len(description) > deepMaxDescLength {
		description = description[:deepMaxDescLength]
	}
	if len(transcript) > deepMaxTranscript {
		transcript = transcript[:deepMaxTranscript]
	}
	userMessage := fmt.Sprintf(`Video Title: %s
Channel: %s
Description: %s

Transcript (excerpt):
%s

Analyze this content for safety concerns that keyword matching would miss.`,
		orUnknown(title), orUnknown(channel), orUnknown(description), transcript)

	res, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       d.modelName,
		Temperature: reviewTemperature,
		MaxTokens:   deepMaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: deepAnalysisSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		log.Printf("[%s] Deep analysis failed: %s", videoId, err)
		return skippedResult("Deep analysis unavailable")
	}
	if len(res.Choices) == 0 {
		log.Printf("[%s] Deep analysis returned no choices", videoId)
		return skippedResult("Deep analysis unavailable")
	}

	result := &DeepResult{}
	content := strings.TrimSpace(res.Choices[0].Message.Content)
	if err = json.Unmarshal([]byte(content), result); err != nil {
		log.Printf("[%s] Error parsing deep analysis response ('%s'): %s", videoId, content, err)
		return skippedResult("Deep analysis unavailable")
	}
	result.Method = "openai"
	if result.Concerns == nil {
		result.Concerns = []Concern{}
	}
	if result.OverallRisk == "" {
		result.OverallRisk = "low"
	}
	if result.Summary == "" {
		result.Summary = "Analysis complete"
	}
	for i := range result.Concerns {
		result.Concerns[i].Severity = signature.ParseSeverity(string(result.Concerns[i].Severity), signature.SeverityLow)
	}

	log.Printf("[%s] Deep analysis: %d concerns, overall risk %s", videoId, len(result.Concerns), result.OverallRisk)
	return result
}
