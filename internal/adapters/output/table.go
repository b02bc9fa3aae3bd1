// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"byakugan/internal/core/domain"
)

// WriteSummaryTable imprime el resumen de una corrida como tabla legible.
func WriteSummaryTable(out io.Writer, summary *domain.RunSummary) error {
	if summary == nil {
		return fmt.Errorf("nil summary")
	}

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)

	// Header con información de la corrida
	fmt.Fprintf(w, "\n=== Byakugan Recon Results ===\n")
	fmt.Fprintf(w, "Target:\t%s\n", summary.Target)
	fmt.Fprintf(w, "Run ID:\t%s\n", summary.RunID)
	fmt.Fprintf(w, "Duration:\t%s\n", summary.Duration().Round(time.Millisecond))
	fmt.Fprintf(w, "Output:\t%s\n\n", summary.OutputDir)

	fmt.Fprintln(w, "STAGE\tSTATE\tCOUNT")
	fmt.Fprintln(w, "-----\t-----\t-----")
	for _, s := range summary.Stages {
		fmt.Fprintf(w, "%s\t%s\t%d\n", s.Stage, s.State, s.Count)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Subdomains:\t%d\n", summary.Subdomains)
	fmt.Fprintf(w, "Live:\t%d\n", summary.Live)
	fmt.Fprintf(w, "Analyzed:\t%d\n", summary.Analyzed)
	fmt.Fprintf(w, "High risk:\t%d\n", len(summary.HighRisk))

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	// Alertas de keywords
	if len(summary.Alerts) > 0 {
		fmt.Fprintf(out, "\nAlerts (%d):\n", len(summary.Alerts))
		for _, a := range summary.Alerts {
			fmt.Fprintf(out, "  - %s [%s]\n", a.Host, a.Keyword)
		}
	}

	// Hosts high-risk
	if len(summary.HighRisk) > 0 {
		hw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
		fmt.Fprintln(hw, "\nHOST\tSOURCE\tBOUNTY\tSUMMARY")
		fmt.Fprintln(hw, "----\t------\t------\t-------")
		for _, r := range summary.HighRisk {
			bounty := "no"
			if r.BugBountyPotential {
				bounty = "yes"
			}
			fmt.Fprintf(hw, "%s\t%s\t%s\t%s\n", r.Subdomain, r.Source, bounty, oneLine(r.Summary))
		}
		if err := hw.Flush(); err != nil {
			return fmt.Errorf("failed to flush table: %w", err)
		}
	}

	// Stats por proveedor de análisis
	if len(summary.BySource) > 0 {
		fmt.Fprintln(out, "\nRecords by source:")
		sources := make([]string, 0, len(summary.BySource))
		for src := range summary.BySource {
			sources = append(sources, string(src))
		}
		sort.Strings(sources)
		for _, src := range sources {
			fmt.Fprintf(out, "  - %s: %d\n", src, summary.BySource[domain.AnalysisSource(src)])
		}
	}

	// Errores no fatales
	if len(summary.Errors) > 0 {
		fmt.Fprintf(out, "\nErrors (%d):\n", len(summary.Errors))
		for i, e := range summary.Errors {
			fmt.Fprintf(out, "  %d. %s\n", i+1, e)
		}
	}

	fmt.Fprintln(out)
	return nil
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 80 {
		return s[:77] + "..."
	}
	return s
}
