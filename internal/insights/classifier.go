package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/William2809/spendwise-backend/internal/domain"
	"github.com/William2809/spendwise-backend/internal/llm"
)

// Sampling parameters for classification. The temperature is kept low and
// the output capped so replies stay deterministic and compact: the model
// only has to emit a four-key JSON object.
const (
	classifyTemperature = 0.3
	classifyMaxTokens   = 60
)

// Classifier turns a free-text expense description into a structured
// ClassificationResult via one language-model call. It never persists
// anything; the caller decides whether the result becomes a Transaction.
type Classifier struct {
	provider llm.Provider
}

// NewClassifier creates a classifier backed by the given provider.
func NewClassifier(provider llm.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify sends text to the model and parses the reply.
//
// Failure modes: empty input is a validation error; a failed model call or
// a reply that does not parse as the expected JSON shape is an upstream
// error. No partial result is ever returned.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.ClassificationResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ClassificationResult{}, fmt.Errorf("classify: empty text: %w", domain.ErrValidation)
	}

	reply, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System:      classifierSystemPrompt(),
		User:        text,
		Assistant:   classifierOutputContract,
		Temperature: classifyTemperature,
		MaxTokens:   classifyMaxTokens,
	})
	if err != nil {
		return domain.ClassificationResult{}, domain.NewUpstreamError(domain.ServiceClassifier, err)
	}

	result, err := parseClassification(reply)
	if err != nil {
		return domain.ClassificationResult{}, domain.NewUpstreamError(domain.ServiceClassifier,
			fmt.Errorf("unparseable model reply: %w", err))
	}
	return result, nil
}

// parseClassification normalizes and strictly decodes a model reply.
// Models occasionally wrap the JSON across lines, lead with stray text, or
// fence it in Markdown; all of that is tolerated. Missing or extra keys are
// not.
func parseClassification(reply string) (domain.ClassificationResult, error) {
	clean := extractJSONObject(joinFragments(reply))
	if clean == "" {
		return domain.ClassificationResult{}, fmt.Errorf("no JSON object in reply")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &fields); err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("decoding object: %w", err)
	}

	for key := range fields {
		switch key {
		case "name", "item", "category", "amount":
		default:
			return domain.ClassificationResult{}, fmt.Errorf("unexpected key %q", key)
		}
	}

	name, err := requireString(fields, "name")
	if err != nil {
		return domain.ClassificationResult{}, err
	}
	item, err := requireString(fields, "item")
	if err != nil {
		return domain.ClassificationResult{}, err
	}
	category, err := requireString(fields, "category")
	if err != nil {
		return domain.ClassificationResult{}, err
	}
	amount, err := requireAmount(fields)
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	canonical, ok := CanonicalCategory(category)
	if !ok {
		return domain.ClassificationResult{}, fmt.Errorf("category %q not in taxonomy", category)
	}

	return domain.ClassificationResult{
		Name:     name,
		Item:     item,
		Category: canonical,
		Amount:   amount,
	}, nil
}

// joinFragments trims the reply and joins newline-split fragments, matching
// how models tend to wrap a compact JSON body across lines.
func joinFragments(reply string) string {
	lines := strings.Split(strings.TrimSpace(reply), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "")
}

// extractJSONObject strips Markdown fences and any stray text around the
// outermost JSON object. Returns "" when no object is present.
func extractJSONObject(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "```"); idx != -1 {
			s = strings.TrimPrefix(s[idx+3:], "json")
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

func requireString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("missing required key %q", key)
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("key %q is not a string", key)
	}
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("key %q is empty", key)
	}
	return v, nil
}

// requireAmount accepts a bare number, or the "Unknown"/"0" strings the
// prompt permits when no valid amount is present; those map to 0.
func requireAmount(fields map[string]json.RawMessage) (float64, error) {
	raw, ok := fields["amount"]
	if !ok {
		return 0, fmt.Errorf("missing required key %q", "amount")
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("key %q is neither number nor string", "amount")
	}
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, CategoryUnknown) {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("key %q has non-numeric value %q", "amount", s)
	}
	return n, nil
}
