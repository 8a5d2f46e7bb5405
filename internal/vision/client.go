// Package vision extracts structured expense data from receipt images
// by delegating to an external vision-capable model provider. The
// provider's answer is free text; the JSON payload is fished out of it
// and missing fields fall back to sensible empty defaults so a bad
// extraction never aborts the review flow.
package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cardledger/internal/model"
)

// Client defines the interface for receipt-analysis providers.
type Client interface {
	AnalyzeReceipt(ctx context.Context, image []byte, mediaType, targetDate string) (Result, error)
}

// Config describes a provider connection.
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	MaxTokens int
}

// Result is the provider's raw extraction. Nil fields mean "not
// extracted"; callers normalize before use.
type Result struct {
	Merchant *string      `json:"merchant"`
	Amount   *json.Number `json:"amount"`
	Date     *string      `json:"date"`
	Memo     *string      `json:"memo"`
}

// Review is a normalized extraction ready to prefill the review form.
type Review struct {
	Merchant string
	Date     string
	Memo     string
	Amount   int64
}

// Normalize fills in defaults for unextracted fields: empty merchant
// and memo, zero amount, and the target date when no date was found.
func (r Result) Normalize(targetDate string) Review {
	review := Review{Date: targetDate}
	if r.Merchant != nil {
		review.Merchant = strings.TrimSpace(*r.Merchant)
	}
	if r.Amount != nil {
		if n, err := r.Amount.Int64(); err == nil {
			review.Amount = n
		} else if f, err := r.Amount.Float64(); err == nil {
			review.Amount = int64(f)
		}
	}
	if r.Date != nil && model.ValidDate(strings.TrimSpace(*r.Date)) {
		review.Date = strings.TrimSpace(*r.Date)
	}
	if r.Memo != nil {
		review.Memo = strings.TrimSpace(*r.Memo)
	}
	return review
}

// NewClient creates a provider client based on the configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "anthropic", "":
		return newAnthropicClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported vision provider: %s", cfg.Provider)
	}
}
