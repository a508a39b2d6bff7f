package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vellum/pkg/model"
	"vellum/pkg/storage"
)

// exportCommand creates the export command for converting between model
// codecs.
func (c *CLI) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [model-file] [output-file]",
		Short: "Convert a model file between codecs",
		Long: `Convert a model file between codecs.

The input and output codecs are picked from the file extensions:
.json for the readable JSON form, .vmod for compact msgpack. The model
is fully loaded and re-serialized, so the output is normalized
regardless of how the input was written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(args[0], args[1])
		},
	}

	return cmd
}

// runExport loads the input and writes it with the output codec.
func (c *CLI) runExport(input, output string) error {
	outCodec, err := storage.CodecFor(output)
	if err != nil {
		return err
	}

	start := time.Now()
	repo, err := storage.LoadFile(input, model.CoreSchema())
	if err != nil {
		return err
	}
	c.timed(start, "loaded model")

	if err := storage.SaveFile(repo, output); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	printSuccess("exported %d elements as %s", repo.Len(), outCodec.Name())
	printFile(output)
	return nil
}
