package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vellum/pkg/model"
	"vellum/pkg/render"
	"vellum/pkg/storage"
)

// renderCommand creates the render command for drawing diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		diagram  string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "render [model-file]",
		Short: "Render a diagram to SVG, PNG, or DOT",
		Long: `Render a diagram to SVG, PNG, or DOT.

The output format is picked from the output file extension (.svg, .png,
or .dot). When the model holds a single diagram it is rendered directly;
with several diagrams, --diagram selects one by id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, diagram, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg, .png, or .dot); defaults to the input name with .svg")
	cmd.Flags().StringVarP(&diagram, "diagram", "d", "", "id of the diagram to render")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include element ids in node labels")

	return cmd
}

// runRender loads the model, picks a diagram, and writes the rendered
// output.
func (c *CLI) runRender(ctx context.Context, input, output, diagramID string, detailed bool) error {
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}

	start := time.Now()
	repo, err := storage.LoadFile(input, model.CoreSchema())
	if err != nil {
		return err
	}
	c.timed(start, "loaded model")

	diagram, err := pickDiagram(repo, diagramID)
	if err != nil {
		return err
	}

	dot, err := render.ToDOT(diagram, render.Options{Detailed: detailed})
	if err != nil {
		return fmt.Errorf("render diagram %s: %w", diagram.ID(), err)
	}

	var data []byte
	switch ext := filepath.Ext(output); ext {
	case ".dot":
		data = []byte(dot)
	case ".svg":
		data, err = render.RenderSVG(ctx, dot)
	case ".png":
		data, err = render.RenderPNG(ctx, dot)
	default:
		return fmt.Errorf("unsupported output extension %q (want .svg, .png, or .dot)", ext)
	}
	if err != nil {
		return fmt.Errorf("render diagram %s: %w", diagram.ID(), err)
	}
	c.timed(start, "rendered diagram")

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("rendered diagram %s", diagram.ID())
	printFile(output)
	return nil
}

// pickDiagram selects the diagram to render: by id when given, otherwise
// the model's single diagram.
func pickDiagram(repo *model.Repository, id string) (*model.Element, error) {
	if id != "" {
		e, ok := repo.Element(id)
		if !ok {
			return nil, fmt.Errorf("no element with id %s", id)
		}
		if !e.IsKind(model.KindDiagram) {
			return nil, fmt.Errorf("element %s is a %s, not a diagram", id, e.Kind().Name)
		}
		return e, nil
	}

	var diagrams []*model.Element
	for _, e := range repo.Elements() {
		if e.IsKind(model.KindDiagram) {
			diagrams = append(diagrams, e)
		}
	}
	switch len(diagrams) {
	case 0:
		return nil, fmt.Errorf("model contains no diagrams")
	case 1:
		return diagrams[0], nil
	}
	return nil, fmt.Errorf("model contains %d diagrams, pick one with --diagram", len(diagrams))
}
