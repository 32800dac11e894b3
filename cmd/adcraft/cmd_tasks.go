package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/app"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/media"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

func (c *cli) generateCmd() *cobra.Command {
	var prompt, audience, imagePath string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate marketing content for a product",
		Example: `  adcraft generate --prompt "Eco-friendly water bottle" --audience "hikers"
  adcraft generate --prompt "Trail shoes" --audience "runners" --image shoe.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Start()

			in := app.TaskInput{Prompt: prompt, Audience: audience}
			if imagePath != "" {
				img, err := media.Load(imagePath)
				if err != nil {
					return fmt.Errorf("attach image: %w", err)
				}
				in.ImageData = img.DataURL
			}

			res, err := c.app.GenerateTask(cmd.Context(), in, nil)
			if err != nil {
				return errors.New(app.AlertText(err))
			}
			printTask(cmd.OutOrStdout(), res.Task)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", res.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "", "Product or service description")
	cmd.Flags().StringVar(&audience, "audience", "", "Target audience")
	cmd.Flags().StringVar(&imagePath, "image", "", "Optional product image")
	return cmd
}

func (c *cli) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List generated tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := c.app.Session.RestoreSession()
			if !ok {
				return errors.New(app.AlertText(app.ErrUnauthenticated))
			}
			resp, err := c.client.ListTasks(cmd.Context(), string(id))
			if err != nil {
				return fmt.Errorf("list tasks: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), model.HistoryPlaceholder)
			fmt.Fprintf(cmd.OutOrStdout(), "%d stored task(s).\n", len(resp.Tasks))
			return nil
		},
	}
}

func printTask(w io.Writer, task model.Task) {
	fmt.Fprintf(w, "Task %s\n", task.ID)
	if task.HasImage() {
		fmt.Fprintf(w, "Image: %s\n", media.Describe(task.ImageReference))
	}
	for _, s := range []struct{ title, body string }{
		{"Tagline", task.Output.Tagline},
		{"Poster", task.Output.PosterContent},
		{"Email", task.Output.EmailContent},
		{"Video script", task.Output.VideoScript},
	} {
		fmt.Fprintf(w, "\n== %s ==\n%s\n", s.title, s.body)
	}
}
