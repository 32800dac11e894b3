// Package generator produces the four marketing assets for a product
// prompt and a target audience.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/config"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

// SystemInstruction frames every generation
const SystemInstruction = "You are a 'Creative Marketing AI' expert. Your task is to generate highly " +
	"engaging and creative marketing content. Based on the product/service prompt " +
	"and the target audience, create the following four outputs in JSON format: " +
	"1. a video script (for Instagram/YouTube Shorts), " +
	"2. a poster content block (a catchy headline and short body text), " +
	"3. an email content body, and " +
	"4. a brand tagline (short, memorable)."

// ErrInvalidOutput means the model answered with something that is not the
// expected JSON object
var ErrInvalidOutput = errors.New("invalid content structure")

// Image is an optional product picture sent along with the prompt
type Image struct {
	MIMEType string
	Data     []byte
	DataURL  string
}

// Request is one generation
type Request struct {
	Prompt   string
	Audience string
	Image    *Image
}

// Generator turns a request into marketing output
type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (model.Output, error)
}

// New builds the generator selected by cfg
func New(ctx context.Context, cfg *config.ServerConfig) (Generator, error) {
	switch cfg.Generator {
	case config.GeneratorGemini:
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.Model, cfg.Temperature)
	case config.GeneratorOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIURL, cfg.Model, cfg.Temperature)
	case config.GeneratorMock:
		return Mock{}, nil
	default:
		return nil, fmt.Errorf("unknown generator %q", cfg.Generator)
	}
}

// UserPrompt is the user turn sent to the model
func UserPrompt(req Request) string {
	return fmt.Sprintf("Product/Service: %s. Target Audience: %s.", req.Prompt, req.Audience)
}

// rawOutput uses pointers so a missing key can be told apart from an empty one
type rawOutput struct {
	VideoScript   *string `json:"video_script"`
	PosterContent *string `json:"poster_content"`
	EmailContent  *string `json:"email_content"`
	Tagline       *string `json:"tagline"`
}

// ParseOutput decodes the model's JSON answer. Markdown code fences around
// the object are tolerated.
func ParseOutput(text string) (model.Output, error) {
	text = stripFences(text)

	var raw rawOutput
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return model.Output{}, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	var missing []string
	for name, v := range map[string]*string{
		"video_script":   raw.VideoScript,
		"poster_content": raw.PosterContent,
		"email_content":  raw.EmailContent,
		"tagline":        raw.Tagline,
	} {
		if v == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return model.Output{}, fmt.Errorf("%w: missing %s", ErrInvalidOutput, strings.Join(missing, ", "))
	}

	return model.Output{
		Tagline:       *raw.Tagline,
		PosterContent: *raw.PosterContent,
		EmailContent:  *raw.EmailContent,
		VideoScript:   *raw.VideoScript,
	}, nil
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
