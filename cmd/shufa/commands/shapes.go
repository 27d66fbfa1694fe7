package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/shufa/errors"
	"github.com/teranos/shufa/grammar"
	"github.com/teranos/shufa/resolve"
	"github.com/teranos/shufa/sym"
)

// ShapesCmd lists the sentence shapes the engine accepts
var ShapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "List the accepted query shapes",
	Long: `List the canonical sentence shapes in match order, with the token
pattern, an example sentence and the glyph that marks its answer.`,
	Args: cobra.NoArgs,
	RunE: runShapes,
}

func runShapes(cmd *cobra.Command, args []string) error {
	data := pterm.TableData{{"#", "shape", "pattern", "example", "answer"}}
	for i, shape := range grammar.Shapes() {
		glyph := resolve.Glyph(shape)
		data = append(data, []string{
			strconv.Itoa(i + 1),
			shape.String(),
			shape.Pattern(),
			shape.Example(),
			glyph + " " + sym.Description(glyph),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}
