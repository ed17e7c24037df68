package adapter

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/imp-refactor/imp-refactor/internal/model"
)

// SimpleUI implements UI using the cobra Command's own output stream.
// Detection results are always rendered as a tablewriter table, whether
// or not the output is a terminal; the registry listing is a table on a
// terminal and one path per line otherwise.
type SimpleUI struct {
	cmd   *cobra.Command
	isTTY bool
}

// NewSimpleUI creates a SimpleUI bound to cmd's output stream.
func NewSimpleUI(cmd *cobra.Command, isTTY bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, isTTY: isTTY}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// DisplayDetection implements UI.
func (s *SimpleUI) DisplayDetection(result m.DetectionResult) error {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Reference", "Verdict", "Suggestion"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, fr := range result.Files {
		if fr.ParseError != "" {
			table.Append([]string{fr.Path, "", "parse-error", fr.ParseError})
		}
		for _, ref := range fr.References {
			suggestion := ref.Reason
			if ref.Suggestion != nil {
				suggestion = *ref.Suggestion
			}
			table.Append([]string{fr.Path, ref.Tail, ref.Verdict, suggestion})
		}
	}

	table.SetFooter([]string{
		"", "",
		fmt.Sprintf("broken %d", result.Diagnostics.BrokenCount),
		fmt.Sprintf("suggested %d", result.Diagnostics.Suggested),
	})
	table.Render()

	s.printf("\n%s", buf.String())
	s.printf("\nscanned %d file(s), %d reference(s), run %s\n",
		result.Diagnostics.FilesScanned, result.Diagnostics.TotalReferences, result.RunID)
	return nil
}

// DisplayRegistry implements UI.
func (s *SimpleUI) DisplayRegistry(paths []m.DottedPath) error {
	if !s.isTTY {
		for _, p := range paths {
			s.printf("%s\n", p.String())
		}
		return nil
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Depth", "Path"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for _, p := range paths {
		table.Append([]string{fmt.Sprintf("%d", p.Len()), p.String()})
	}
	table.Render()

	s.printf("%s", buf.String())
	return nil
}

// ReviewPlans implements UI: SimpleUI always approves every plan
// without prompting, matching the non-interactive `apply --write` path.
func (s *SimpleUI) ReviewPlans(plans []m.FilePlan, diffs map[string]string) ([]m.FilePlan, error) {
	for _, plan := range plans {
		if diff, ok := diffs[plan.Path]; ok {
			s.printf("--- %s\n%s\n", plan.Path, diff)
		}
	}
	return plans, nil
}
