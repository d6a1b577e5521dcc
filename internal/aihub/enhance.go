package aihub

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"
)

// DefaultEnhancerModel is the image model used when the config names none.
const DefaultEnhancerModel = "gemini-2.5-flash-image"

const enhanceTemperature = 0.7

// Enhancer refines a rendered base calendar through an image-to-image model.
type Enhancer struct {
	client *Client
	model  string
	logger *zap.Logger
}

// NewEnhancer creates an enhancer bound to a client and model.
func NewEnhancer(client *Client, model string, logger *zap.Logger) *Enhancer {
	if model == "" {
		model = DefaultEnhancerModel
	}
	return &Enhancer{client: client, model: model, logger: logger}
}

// Enhance submits the base PNG with the styling prompt and returns the
// refined image bytes. The payload travels as a base64 data URL and comes
// back in the response's multi_mod_content parts.
func (e *Enhancer) Enhance(ctx context.Context, basePNG []byte, prompt string) ([]byte, error) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(basePNG)

	req := &ChatRequest{
		Model: e.model,
		Messages: []Message{
			{
				Role: "user",
				Content: []ContentPart{
					{Type: "image_url", ImageURL: &ImageURL{URL: dataURL}},
					{Type: "text", Text: prompt},
				},
			},
		},
		Modalities:  []string{"text", "image"},
		Temperature: enhanceTemperature,
	}

	e.logger.Info("Enhancing calendar image",
		zap.String("model", e.model),
		zap.Int("base_size", len(basePNG)))

	resp, err := e.client.ChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("enhancement model call failed: %w", err)
	}

	for _, choice := range resp.Choices {
		for _, part := range choice.Message.MultiModContent {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			img, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode image data: %w", err)
			}
			e.logger.Info("Calendar image enhanced",
				zap.String("mime_type", part.InlineData.MimeType),
				zap.Int("size", len(img)))
			return img, nil
		}
	}

	return nil, fmt.Errorf("no image data in enhancement response")
}
