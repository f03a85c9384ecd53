package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/priya/resume-builder/internal/db"
	"github.com/priya/resume-builder/internal/profile"
	"github.com/priya/resume-builder/internal/rendering"
)

var (
	renderUserID   string
	renderOut      string
	renderFormat   string
	renderTemplate string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one user's resume from the command line",
	Long:  "Aggregate a user's included, ordered sections and write the rendered resume to a file.",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderUserID, "user", "", "User UUID (required)")
	renderCmd.Flags().StringVar(&renderOut, "out", "resume.tex", "Output file path")
	renderCmd.Flags().StringVar(&renderFormat, "format", "tex", "Output format: tex or pdf")
	renderCmd.Flags().StringVar(&renderTemplate, "template", "", "Custom LaTeX template path (tex format only)")
	_ = renderCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(renderUserID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	p, err := profile.New(database, logger).BuildProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to build profile: %w", err)
	}
	if p.IsEmpty() {
		return fmt.Errorf("user %s has no included resume content", userID)
	}

	var output []byte
	switch renderFormat {
	case "tex":
		tex, err := rendering.RenderLaTeX(p, renderTemplate)
		if err != nil {
			return err
		}
		output = []byte(tex)
	case "pdf":
		html, err := rendering.RenderHTML(p)
		if err != nil {
			return err
		}
		renderer := &rendering.PDFRenderer{ChromePath: os.Getenv("CHROME_PATH")}
		output, err = renderer.RenderPDF(ctx, html)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s (want tex or pdf)", renderFormat)
	}

	if err := os.WriteFile(renderOut, output, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOut, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", renderOut, len(output))
	return nil
}
