// Package gemini implements menu extraction from images using Google
// Gemini's vision models.
package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/jwalczak/menuscan"
)

const model = "gemini-2.5-flash"

// Ensure Vision implements menuscan.Vision at compile time.
var _ menuscan.Vision = (*Vision)(nil)

// Vision implements menuscan.Vision using Google Gemini.
type Vision struct {
	client  *genai.Client
	limiter menuscan.CallLimiter
	delays  []time.Duration
}

// NewVision creates a new Vision. The limiter paces API calls and may be
// nil; retry delays default to DefaultRetryDelays.
func NewVision(client *genai.Client, limiter menuscan.CallLimiter) *Vision {
	return &Vision{client: client, limiter: limiter, delays: DefaultRetryDelays()}
}

// DefaultRetryDelays returns the backoff delays for throttled calls: 2s, 8s, 30s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{2 * time.Second, 8 * time.Second, 30 * time.Second}
}

// ExtractMenu sends a menu image to the model and decodes the structured
// item list it returns. A response that cannot be decoded comes back as
// free text instead.
func (v *Vision) ExtractMenu(ctx context.Context, image []byte, mimeType string) (*menuscan.VisionResult, error) {
	if len(image) == 0 {
		return nil, menuscan.Errorf(menuscan.EINVALID, "image required")
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	text, err := v.generateWithRetry(ctx, image, mimeType)
	if err != nil {
		return nil, err
	}

	return DecodeResult(text), nil
}

// DecodeResult turns a raw model response into a VisionResult. When the
// response is not decodable JSON the transcription is still usable, so it
// comes back as a free-text result instead of an error.
func DecodeResult(text string) *menuscan.VisionResult {
	items, err := DecodeItems(text)
	if err != nil {
		return &menuscan.VisionResult{Text: text}
	}
	return &menuscan.VisionResult{Items: items, Text: text}
}

func (v *Vision) generateWithRetry(ctx context.Context, image []byte, mimeType string) (string, error) {
	maxAttempts := len(v.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if v.limiter != nil {
			if err := v.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		text, err := v.generate(ctx, image, mimeType)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !retryable(err) {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(v.delays[attempt]):
		}
	}
	if retryable(lastErr) {
		return "", menuscan.Errorf(menuscan.EUNAVAILABLE, "gemini: %s", lastErr)
	}
	return "", lastErr
}

func (v *Vision) generate(ctx context.Context, image []byte, mimeType string) (string, error) {
	result, err := v.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
				{Text: BuildPrompt()},
			},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", menuscan.Errorf(menuscan.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// retryable reports whether the error is a throttle or transient server
// failure worth backing off on.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	msg := err.Error()
	return strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "429")
}

// BuildConfig returns the GenerateContentConfig for menu extraction calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a meticulous data extractor. You transcribe restaurant menus from images into structured JSON exactly as printed, without inventing or omitting items.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildPrompt returns the user prompt describing the expected JSON shape.
func BuildPrompt() string {
	var sb strings.Builder
	sb.WriteString("Extract every menu item from this menu image.\n\n")
	sb.WriteString("Return a JSON array where each element has these keys:\n")
	sb.WriteString(`  "name": the item name exactly as printed` + "\n")
	sb.WriteString(`  "description": the item description, or "" if none` + "\n")
	sb.WriteString(`  "price": the price text exactly as printed, or "" if none` + "\n")
	sb.WriteString(`  "section": the menu section heading the item appears under, or "" if none` + "\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Transcribe prices verbatim, including size labels like Cup/Bowl or Small/Large.\n")
	sb.WriteString("- If an item lists several sizes or prices, keep them all in the price field.\n")
	sb.WriteString("- Do not include page headers, footers, phone numbers, or legal disclaimers.\n")
	sb.WriteString("- Do not invent items that are not visible in the image.\n")
	sb.WriteString("- Return only the JSON array, nothing else.")
	return sb.String()
}
