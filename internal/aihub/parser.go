package aihub

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/holiday"
)

// DefaultParserModel is the text model used when the config names none.
const DefaultParserModel = "deepseek-v3.2"

// Parser turns free-form holiday announcements into structured records using
// a chat model.
type Parser struct {
	client *Client
	model  string
	logger *zap.Logger
}

// NewParser creates a parser bound to a client and model.
func NewParser(client *Client, model string, logger *zap.Logger) *Parser {
	if model == "" {
		model = DefaultParserModel
	}
	return &Parser{client: client, model: model, logger: logger}
}

// Parse extracts a normalized holiday record from announcement text. The
// returned record is not yet validated.
func (p *Parser) Parse(ctx context.Context, text string, refYear int) (*holiday.Record, error) {
	req := &ChatRequest{
		Model: p.model,
		Messages: []Message{
			{Role: "user", Content: BuildParsePrompt(text, refYear)},
		},
	}

	p.logger.Info("Parsing announcement",
		zap.String("model", p.model),
		zap.Int("reference_year", refYear),
		zap.Int("text_length", len(text)))

	resp, err := p.client.ChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("parser model call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("parser model returned no choices")
	}

	rec, err := holiday.Decode(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode model output: %w", err)
	}
	rec.Normalize()

	p.logger.Info("Announcement parsed",
		zap.String("holiday", rec.HolidayName),
		zap.String("start", rec.StartDate),
		zap.String("end", rec.EndDate),
		zap.Int("total_days", rec.TotalDays),
		zap.Int("makeup_workdays", len(rec.MakeupWorkdays)))

	return rec, nil
}
