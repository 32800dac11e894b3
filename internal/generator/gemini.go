package generator

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

// Gemini generates content with Google's Gemini API
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini creates a Gemini generator
func NewGemini(ctx context.Context, apiKey, modelName string, temperature float64) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{client: client, model: modelName, temperature: float32(temperature)}, nil
}

func (g *Gemini) Name() string { return "gemini:" + g.model }

// Generate asks for a JSON object constrained by outputSchema
func (g *Gemini) Generate(ctx context.Context, req Request) (model.Output, error) {
	parts := []*genai.Part{genai.NewPartFromText(UserPrompt(req))}
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(g.temperature),
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    outputSchema(),
	})
	if err != nil {
		return model.Output{}, fmt.Errorf("GenAI generate failed: %w", err)
	}

	return ParseOutput(resp.Text())
}

func outputSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"video_script":   {Type: genai.TypeString, Description: "The Instagram Reel/Shorts script."},
			"poster_content": {Type: genai.TypeString, Description: "The poster headline and body content."},
			"email_content":  {Type: genai.TypeString, Description: "The body content for a marketing email."},
			"tagline":        {Type: genai.TypeString, Description: "The brand's catchy tagline."},
		},
		Required: []string{"video_script", "poster_content", "email_content", "tagline"},
	}
}
