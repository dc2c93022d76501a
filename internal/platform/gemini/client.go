package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// genaiClient wraps the genai SDK behind the two narrow calls the pipeline
// makes.
type genaiClient struct {
	client *genai.Client
}

func newGenaiClient(ctx context.Context, apiKey string) (*genaiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &genaiClient{client: client}, nil
}

// generateText makes a single text-generation call and concatenates the
// text parts of the first candidate.
func (c *genaiClient) generateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text += part.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("empty text in response")
	}
	return text, nil
}

// generateImage makes a single image-generation call. The response may carry
// inline bytes or a hosted URI depending on model and backend; both shapes
// are surfaced to the caller.
func (c *genaiClient) generateImage(ctx context.Context, model, prompt string) (*imageResult, error) {
	resp, err := c.client.Models.GenerateImages(ctx, model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("no image generated")
	}

	img := resp.GeneratedImages[0].Image
	return &imageResult{
		data:     img.ImageBytes,
		uri:      img.GCSURI,
		mimeType: img.MIMEType,
	}, nil
}
