package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vellum/pkg/model"
	"vellum/pkg/storage"
)

// inspectCommand creates the inspect command for listing model contents.
func (c *CLI) inspectCommand() *cobra.Command {
	var kindFilter string

	cmd := &cobra.Command{
		Use:   "inspect [model-file]",
		Short: "List the elements of a model file",
		Long: `List the elements of a model file.

Each element is printed with its kind and id. Diagram elements also show
how many presentations they own, comments show their body text. Use
--kind to restrict the listing to one kind (subtypes included).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], kindFilter)
		},
	}

	cmd.Flags().StringVarP(&kindFilter, "kind", "k", "", "only show elements of this kind (and its subtypes)")

	return cmd
}

// runInspect loads the model and prints its elements.
func (c *CLI) runInspect(input, kindFilter string) error {
	start := time.Now()

	repo, err := storage.LoadFile(input, model.CoreSchema())
	if err != nil {
		return err
	}
	c.timed(start, "loaded model")

	if kindFilter != "" {
		if _, ok := repo.Schema().Kind(kindFilter); !ok {
			return fmt.Errorf("unknown kind %q", kindFilter)
		}
	}

	printInfo("%s", StyleTitle.Render(input))
	diagrams := 0
	shown := 0
	for _, e := range repo.Elements() {
		if e.IsKind(model.KindDiagram) {
			diagrams++
		}
		if kindFilter != "" && !e.IsKind(kindFilter) {
			continue
		}
		note, err := elementNote(e)
		if err != nil {
			return err
		}
		printElement(e.Kind().Name, e.ID(), note)
		shown++
	}
	if shown == 0 {
		printDetail("no matching elements")
	}
	printStats(repo.Len(), diagrams)
	return nil
}

// elementNote summarizes an element for the listing.
func elementNote(e *model.Element) (string, error) {
	switch {
	case e.IsKind(model.KindDiagram):
		owned, err := e.Get("ownedPresentation")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%d presentations)", len(owned)), nil
	case e.IsKind(model.KindComment):
		body, err := e.AttrString("body")
		if err != nil {
			return "", err
		}
		return body, nil
	}
	return "", nil
}
