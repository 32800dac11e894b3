package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

// Mock is a deterministic generator for local runs and tests. It never
// calls an external model.
type Mock struct{}

func (Mock) Name() string { return "mock" }

func (Mock) Generate(ctx context.Context, req Request) (model.Output, error) {
	if err := ctx.Err(); err != nil {
		return model.Output{}, err
	}

	product := strings.TrimSpace(req.Prompt)
	audience := strings.TrimSpace(req.Audience)

	var email strings.Builder
	fmt.Fprintf(&email, "Subject: Meet %s\n\n", product)
	fmt.Fprintf(&email, "Hi there,\n\nWe built %s with %s in mind.\n", product, audience)
	if req.Image != nil {
		email.WriteString("Take a look at the picture below.\n")
	}
	email.WriteString("\nCheers,\nThe Team")

	return model.Output{
		Tagline:       fmt.Sprintf("%s. Made for %s.", product, audience),
		PosterContent: fmt.Sprintf("%s\n\nEverything %s asked for, nothing they didn't.", strings.ToUpper(product), audience),
		EmailContent:  email.String(),
		VideoScript: fmt.Sprintf("[0-3s] Close-up of %s.\n[3-10s] Someone from %s uses it.\n[10-15s] Logo and call to action.",
			product, audience),
	}, nil
}
