package generator

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

// jsonHint replaces the response schema Gemini supports natively
const jsonHint = " Respond with a single JSON object with exactly these string keys: " +
	"video_script, poster_content, email_content, tagline. No prose, no code fences."

// OpenAI generates content with an OpenAI-compatible chat completions API
type OpenAI struct {
	model       string
	temperature float64
	opts        []option.RequestOption
}

// NewOpenAI creates an OpenAI generator. baseURL may be empty.
func NewOpenAI(apiKey, baseURL, modelName string, temperature float64) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if modelName == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAI{model: modelName, temperature: temperature, opts: opts}, nil
}

func (o *OpenAI) Name() string { return "openai:" + o.model }

func (o *OpenAI) Generate(ctx context.Context, req Request) (model.Output, error) {
	client := openai.NewClient(o.opts...)

	user := openai.UserMessage(UserPrompt(req))
	if req.Image != nil && req.Image.DataURL != "" {
		user = openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(UserPrompt(req)),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: req.Image.DataURL}),
		})
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemInstruction + jsonHint),
			user,
		},
		Temperature: openai.Float(o.temperature),
	})
	if err != nil {
		return model.Output{}, fmt.Errorf("openai generate failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.Output{}, errors.New("openai: empty choices")
	}

	return ParseOutput(resp.Choices[0].Message.Content)
}
