package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/shufa/errors"
	"github.com/teranos/shufa/kb"
	"github.com/teranos/shufa/sym"
)

// KbCmd groups knowledge base commands
var KbCmd = &cobra.Command{
	Use:   "kb",
	Short: sym.Calligrapher + " Inspect, export and validate knowledge base datasets",
	Long: sym.Calligrapher + ` kb: knowledge base datasets

The engine answers from one immutable knowledge base: the built-in dataset, or
a .toml/.yaml file given by --dataset or dataset.path in shufa.toml.

Examples:
  shufa kb show                          # Tables of the active dataset
  shufa kb export --format yaml -o kb.yaml
  shufa kb validate my-dataset.toml      # Check a file before using it`,
}

var kbShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active dataset",
	Args:  cobra.NoArgs,
	RunE:  runKbShow,
}

var kbExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active dataset as TOML or YAML",
	Long: `Write the active dataset in a form kb validate and --dataset accept.
Exporting the built-in dataset is the easiest way to start a custom one.`,
	Args: cobra.NoArgs,
	RunE: runKbExport,
}

var kbValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a dataset file",
	Long: `Load a dataset file with the same rules the engine uses and report its
contents. Dangling cross-references (a style with no record, a master with no
calligrapher record) are listed but do not fail validation.`,
	Args: cobra.ExactArgs(1),
	RunE: runKbValidate,
}

var (
	kbExportFormat string
	kbExportOutput string
)

func init() {
	kbExportCmd.Flags().StringVar(&kbExportFormat, "format", kb.FormatTOML, "Output format: toml, yaml")
	kbExportCmd.Flags().StringVarP(&kbExportOutput, "output", "o", "", "Write to file instead of stdout")

	KbCmd.AddCommand(kbShowCmd)
	KbCmd.AddCommand(kbExportCmd)
	KbCmd.AddCommand(kbValidateCmd)
}

func runKbShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	k, source, err := loadKnowledgeBase(cmd, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s (version %s)\n\n", pterm.Cyan("dataset:"), source, k.Version())
	return renderKnowledgeBase(out, k)
}

func renderKnowledgeBase(w io.Writer, k *kb.KnowledgeBase) error {
	calligraphers := pterm.TableData{{"书法家", "朝代", "风格", "作品"}}
	for _, c := range k.Calligraphers() {
		calligraphers = append(calligraphers, []string{c.Name, c.Dynasty, c.Style, strings.Join(c.Works, sym.Separator)})
	}

	styles := pterm.TableData{{"风格", "代表书法家", "特点"}}
	for _, s := range k.Styles() {
		styles = append(styles, []string{s.Name, strings.Join(s.Masters, sym.Separator), strings.Join(s.Features, sym.Separator)})
	}

	eras := pterm.TableData{{"朝代", "别称"}}
	for _, e := range k.Eras() {
		eras = append(eras, []string{e.Name, strings.Join(e.Aliases, sym.Separator)})
	}

	for _, t := range []struct {
		title string
		data  pterm.TableData
	}{
		{fmt.Sprintf("Calligraphers (%d)", len(calligraphers)-1), calligraphers},
		{fmt.Sprintf("Styles (%d)", len(styles)-1), styles},
		{fmt.Sprintf("Eras (%d)", len(eras)-1), eras},
	} {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(t.data).Srender()
		if err != nil {
			return errors.Wrap(err, "failed to render table")
		}
		fmt.Fprintln(w, pterm.Bold.Sprint(t.title))
		fmt.Fprintln(w, table)
		fmt.Fprintln(w)
	}
	return nil
}

func runKbExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	k, _, err := loadKnowledgeBase(cmd, cfg)
	if err != nil {
		return err
	}

	if kbExportOutput == "" {
		return kb.Export(cmd.OutOrStdout(), k, kbExportFormat)
	}

	f, err := os.Create(kbExportOutput)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", kbExportOutput)
	}
	if err := kb.Export(f, k, kbExportFormat); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", kbExportOutput)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), pterm.Success.Sprintf("Exported dataset to %s", kbExportOutput))
	return nil
}

func runKbValidate(cmd *cobra.Command, args []string) error {
	k, err := kb.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, pterm.Success.Sprintf("%s is valid (version %s)", args[0], k.Version()))
	fmt.Fprintf(out, "  calligraphers: %d\n", len(k.Calligraphers()))
	fmt.Fprintf(out, "  styles:        %d\n", len(k.Styles()))
	fmt.Fprintf(out, "  era surfaces:  %d\n", len(k.EraSurfaces()))
	fmt.Fprintf(out, "  alphabet:      %d runes\n", len(k.Alphabet()))

	if refs := k.DanglingReferences(); len(refs) > 0 {
		fmt.Fprintln(out, pterm.Warning.Sprintf("%d dangling references", len(refs)))
		for _, r := range refs {
			fmt.Fprintf(out, "  %s %s.%s → %s\n", r.Table, r.Owner, r.Field, r.Name)
		}
	}
	return nil
}
