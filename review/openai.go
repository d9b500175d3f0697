package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/internal"
)

const contextReviewSystemPrompt = `You are an expert content context analyzer for a video safety tool. Your job is to determine whether a video is PROMOTING dangerous/misleading content or is DEBUNKING/EDUCATING about it.

You will be given:
- Video title
- Video description (if available)
- Transcript excerpt (if available)
- The safety category that was flagged

Your task: Determine the video's INTENT regarding the flagged category.

CRITICAL RULES:
1. A video that MENTIONS a conspiracy theory to debunk it is NOT promoting it
2. A video titled "X Debunked" or "X is Fake" is clearly debunking, NOT promoting
3. Educational content that explains WHY something is wrong is NOT promoting it
4. Satire and comedy about a topic is NOT promoting it
5. News coverage REPORTING on a conspiracy is NOT promoting it
6. A critic reviewing problematic content is NOT promoting it

Respond with ONLY valid JSON (no markdown, no code fences):
{
    "verdict": "promoting" | "debunking" | "educational" | "neutral" | "satire",
    "confidence": 0.0 to 1.0,
    "reasoning": "Brief explanation of your determination",
    "is_dangerous": true | false
}

Where:
- "promoting": The video actively promotes the flagged dangerous content
- "debunking": The video debunks, refutes, or fact-checks the flagged content
- "educational": The video educates about the topic in a balanced/academic way
- "neutral": The video mentions the topic but doesn't clearly promote or debunk
- "satire": The video treats the topic as comedy/satire
- "is_dangerous": true ONLY if verdict is "promoting", false for all others`

const (
	reviewTemperature   = 0.1
	reviewMaxTokens     = 300
	maxPromptDescLength = 1000
)

type OpenAIReviewer struct {
	// Implements Provider

	client        openai.Client
	modelName     string
	maxTranscript int
}

func NewOpenAIReviewer(cnf *config.InstanceConfig, additionalClientOptions ...option.RequestOption) (Provider, error) {
	if len(cnf.OpenAIApiKey) == 0 {
		return nil, errors.New("api key not set")
	}
	options := []option.RequestOption{option.WithAPIKey(cnf.OpenAIApiKey)}
	if len(cnf.OpenAIBaseUrl) > 0 {
		options = append(options, option.WithBaseURL(cnf.OpenAIBaseUrl))
	}
	options = append(options, additionalClientOptions...)
	return &OpenAIReviewer{
		client:        openai.NewClient(options...),
		modelName:     cnf.OpenAIModel,
		maxTranscript: cnf.MaxTranscriptExcerpt,
	}, nil
}

// verdictResponse - The exact shape the model is instructed to return. A
// pointer confidence distinguishes "absent" from zero.
type verdictResponse struct {
	Verdict    string   `json:"verdict"`
	Confidence *float64 `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
	Dangerous  bool     `json:"is_dangerous"`
}

func (m *OpenAIReviewer) ReviewContext(ctx context.Context, subject *Subject) (*Result, error) {
	// Note: we don't want to log titles or transcripts in production
	log.Printf("[%s | %s] Requesting context review from %s", subject.VideoId, subject.Category, m.modelName)

	res, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       m.modelName,
		Temperature: openai.Float(reviewTemperature),
		MaxTokens:   openai.Int(reviewMaxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Role: "system",
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(contextReviewSystemPrompt),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Role: "user",
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(m.userMessage(subject)),
					},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(res.Choices) == 0 {
		return nil, errors.New("no choices in completion response")
	}

	// Any parse failure is a review failure, never a crash. The caller owns
	// the heuristic fallback.
	verdict := verdictResponse{}
	content := strings.TrimSpace(res.Choices[0].Message.Content)
	if err = json.Unmarshal([]byte(content), &verdict); err != nil {
		log.Printf("[%s | %s] Error parsing review response ('%s'): %s", subject.VideoId, subject.Category, content, err)
		return nil, err
	}

	result := &Result{
		Verdict:   ParseVerdict(verdict.Verdict),
		Reasoning: verdict.Reasoning,
		Method:    "openai",
	}
	result.Confidence = internal.Dereference(verdict.Confidence)
	if verdict.Confidence == nil || result.Confidence < 0 || result.Confidence > 1 {
		result.Confidence = 0.5
	}
	// The verdict decides dangerousness; the model's own is_dangerous claim is
	// deliberately ignored.
	result.IsDangerous = result.Verdict == VerdictPromoting
	if result.Reasoning == "" {
		result.Reasoning = "No reasoning provided"
	}

	log.Printf("[%s | %s] Review result: verdict=%s confidence=%.2f dangerous=%t",
		subject.VideoId, subject.Category, result.Verdict, result.Confidence, result.IsDangerous)
	return result, nil
}

func (m *OpenAIReviewer) userMessage(subject *Subject) string {
	transcriptSection := "Transcript: Not available"
	if subject.Transcript != "" {
		excerpt := subject.Transcript
		if len(excerpt) > m.maxTranscript {
			excerpt = excerpt[:m.maxTranscript]
		}
		transcriptSection = "Transcript excerpt:\n" + excerpt
	}

	description := subject.Description
	if description == "" {
		description = "No description"
	}
	if len(description) > maxPromptDescLength {
		description = description[:maxPromptDescLength]
	}

	categoryDescription := subject.CategoryDescription
	if categoryDescription == "" {
		categoryDescription = subject.Category
	}

	return fmt.Sprintf(`Flagged Category: %s
Category Description: %s

Video Title: %s
Channel: %s
Video Description: %s

%s

Based on this information, is this video PROMOTING the flagged dangerous content, or is it DEBUNKING/EDUCATING about it? Respond with JSON only.`,
		subject.Category, categoryDescription,
		orUnknown(subject.Title), orUnknown(subject.Channel),
		description, transcriptSection)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
