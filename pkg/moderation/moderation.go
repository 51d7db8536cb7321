// Package moderation classifies event submissions before they are published.
// The classifier is an external LLM collaborator; this package owns the
// prompt, the response parsing, and nothing else.
package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Decision is the classifier's verdict on a submission.
type Decision string

const (
	DecisionAllow  Decision = "ALLOW"
	DecisionReview Decision = "REVIEW"
	DecisionBlock  Decision = "BLOCK"
)

// Category names the kind of content that triggered a non-ALLOW decision.
type Category string

const (
	CategoryIllegal     Category = "Illegal"
	CategoryViolence    Category = "Violence"
	CategorySuicide     Category = "Suicide"
	CategorySexual      Category = "Sexual"
	CategoryOtherUnsafe Category = "OtherUnsafe"
	CategoryNone        Category = "None"
)

// Input describes one event submission to classify.
type Input struct {
	Title        string
	Description  string
	MarketTitles []string
}

// Result is the parsed classifier verdict.
type Result struct {
	Decision  Decision `json:"decision"`
	Category  Category `json:"category"`
	Rationale string   `json:"rationale"`
}

// Classifier decides whether an event submission may be published.
type Classifier interface {
	Moderate(ctx context.Context, input Input) (*Result, error)
}

const systemInstruction = "You are a strict content moderation system for an events platform."

func buildPrompt(input Input) string {
	marketsSection := "None provided"
	if len(input.MarketTitles) > 0 {
		lines := make([]string, len(input.MarketTitles))
		for i, t := range input.MarketTitles {
			lines[i] = fmt.Sprintf("%d. Title: %s", i+1, t)
		}
		marketsSection = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`You are a strict content moderation system for an events platform.

Analyze the following event submission and classify it.
Your task is to detect if it contains any of these categories:
- Illegal activity
- Violence or threats
- Suicide or self-harm
- Sexual or sexually explicit content
- Anything else unsafe or that could cause legal/trust issues

Rules:
- If any prohibited content is detected → "BLOCK"
- If unclear, borderline, or potentially risky → "REVIEW"
- Otherwise → "ALLOW"
- Do not allow events involving minors in a sexual context, criminal facilitation, or credible threats.

Return your answer ONLY in this JSON format:

{
  "decision": "ALLOW | REVIEW | BLOCK",
  "category": "<one of: Illegal, Violence, Suicide, Sexual, OtherUnsafe, None>",
  "rationale": "<short one-sentence reason>"
}

EVENT:
Title: %q
Description: %q

MARKETS:
%s`, input.Title, input.Description, marketsSection)
}

// extractJSONObject slices the first JSON object out of a model response,
// tolerating prose or code fences around it.
func extractJSONObject(raw string) (string, error) {
	firstBrace := strings.Index(raw, "{")
	lastBrace := strings.LastIndex(raw, "}")
	if firstBrace == -1 || lastBrace == -1 || lastBrace <= firstBrace {
		return "", fmt.Errorf("classifier response did not contain a JSON object")
	}
	return raw[firstBrace : lastBrace+1], nil
}

func parseResult(raw string) (*Result, error) {
	jsonSlice, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var result Result
	if err := json.Unmarshal([]byte(jsonSlice), &result); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}

	switch result.Decision {
	case DecisionAllow, DecisionReview, DecisionBlock:
	default:
		return nil, fmt.Errorf("unexpected decision %q", result.Decision)
	}
	switch result.Category {
	case CategoryIllegal, CategoryViolence, CategorySuicide, CategorySexual, CategoryOtherUnsafe, CategoryNone:
	default:
		return nil, fmt.Errorf("unexpected category %q", result.Category)
	}
	if result.Rationale == "" {
		return nil, fmt.Errorf("classifier response missing rationale")
	}

	return &result, nil
}
