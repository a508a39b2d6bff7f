package cli

import (
	"time"

	"github.com/spf13/cobra"

	"vellum/pkg/model"
	"vellum/pkg/storage"
)

// validateCommand creates the validate command for checking model
// consistency.
func (c *CLI) validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [model-file]",
		Short: "Check a model file's structural invariants",
		Long: `Check a model file's structural invariants.

Validation verifies that every bidirectional relation is stored
symmetrically on both ends, that composite ownership forms a tree with
no cycles, and that nested presentations agree with their parent about
the owning diagram. The command exits non-zero when the model is
inconsistent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}

	return cmd
}

// runValidate loads the model and runs the full consistency check.
func (c *CLI) runValidate(input string) error {
	start := time.Now()

	repo, err := storage.LoadFile(input, model.CoreSchema())
	if err != nil {
		return err
	}
	c.timed(start, "loaded model")

	if err := model.ValidateModel(repo); err != nil {
		printError("model is inconsistent")
		printDetail("%s", err)
		return err
	}

	printSuccess("model is consistent")
	if pending := model.PendingChanges(repo); len(pending) > 0 {
		printWarning("%d pending changes not yet applied", len(pending))
	}
	printStats(repo.Len(), 0)
	return nil
}
