package printer

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/slok/navcorpus/internal/model"
)

// TablePrinter prints pipeline reports in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintCheck prints the consistency check report.
func (t *TablePrinter) PrintCheck(r model.CheckReport) error {
	fmt.Fprintf(t.writer, "Checked %d tasks (%d skipped) in %d directories\n", r.Tasks, r.Skipped, len(r.Dirs))

	if r.Clean() {
		fmt.Fprintln(t.writer, "No inconsistencies found")
		return nil
	}

	if len(r.IDMismatches) > 0 {
		fmt.Fprintf(t.writer, "\nID/filename mismatches (%d):\n", len(r.IDMismatches))
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FILE\tDECLARED ID\tDIR")
		for _, m := range r.IDMismatches {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.File, m.DeclaredID, m.Dir)
		}
		tw.Flush()
	}

	if len(r.MissingSiblings) > 0 {
		fmt.Fprintf(t.writer, "\nMissing %s siblings for %s tasks (%d):\n", r.ToType, r.FromType, len(r.MissingSiblings))
		for _, key := range r.MissingSiblings {
			fmt.Fprintf(t.writer, "  %s\n", key)
		}
	}

	if len(r.UnresolvedGeofences) > 0 {
		fmt.Fprintf(t.writer, "\nUnresolved geofence references (%d):\n", len(r.UnresolvedGeofences))
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TASK\tGEOFENCE")
		for _, g := range r.UnresolvedGeofences {
			fmt.Fprintf(tw, "%s\t%s\n", g.TaskID, g.Geofence)
		}
		tw.Flush()
	}

	if len(r.NegativeScalars) > 0 {
		fmt.Fprintf(t.writer, "\nNegative ground-truth scalars (%d):\n", len(r.NegativeScalars))
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TASK\tFIELD\tVALUE")
		for _, v := range r.NegativeScalars {
			fmt.Fprintf(tw, "%s\t%s\t%g\n", v.TaskID, v.Field, v.Value)
		}
		tw.Flush()
	}

	return nil
}

// PrintPropagation prints the defect propagation report.
func (t *TablePrinter) PrintPropagation(r model.PropagationReport) error {
	fmt.Fprintf(t.writer, "%d defective panoramas, %d affected geofences, %d affected tasks\n",
		r.DefectiveIDs, len(r.Geofences), len(r.Tasks))

	if len(r.Geofences) > 0 {
		fmt.Fprintln(t.writer, "\nAffected geofences:")
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "GEOFENCE\tBAD PANORAMAS")
		for _, g := range r.Geofences {
			fmt.Fprintf(tw, "%s\t%d\n", g.Name, len(g.BadPanoramas))
		}
		tw.Flush()
	}

	if len(r.Tasks) > 0 {
		fmt.Fprintln(t.writer, "\nAffected tasks:")
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TASK\tGEOFENCE\tBAD\tDIR")
		for _, task := range r.Tasks {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", task.TaskID, task.Geofence, task.BadCount, task.Dir)
		}
		tw.Flush()
	}

	return nil
}

// PrintQuarantinePlan prints the planned quarantine moves.
func (t *TablePrinter) PrintQuarantinePlan(p model.QuarantinePlan) error {
	fmt.Fprintf(t.writer, "Quarantine plan for %s (%s > %g): %d moves, %d without the field, %d unresolved pairings\n",
		p.Dir, p.Field, p.Threshold, len(p.Moves), p.Skipped, len(p.UnresolvedPairings))

	if len(p.Moves) > 0 {
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FILE\tVALUE\tSIBLING")
		for _, m := range p.Moves {
			sibling := m.SiblingFile
			if sibling == "" {
				sibling = "-"
			}
			fmt.Fprintf(tw, "%s\t%g\t%s\n", m.File, m.Value, sibling)
		}
		tw.Flush()
	}

	for _, u := range p.UnresolvedPairings {
		fmt.Fprintf(t.writer, "Unresolved pairing: %s\n", u)
	}

	return nil
}

// PrintQuarantineResult prints the outcome of an applied quarantine plan.
func (t *TablePrinter) PrintQuarantineResult(r model.QuarantineResult) error {
	fmt.Fprintf(t.writer, "Moved %d files into %s (%d skipped, %d unresolved pairings, %d errors)\n",
		r.Moved, r.QuarantineDir, r.Skipped, len(r.UnresolvedPairings), len(r.Errors))
	for _, e := range r.Errors {
		fmt.Fprintf(t.writer, "Error: %s\n", e)
	}
	return nil
}

// PrintSamplePlan prints the planned sample.
func (t *TablePrinter) PrintSamplePlan(p model.SamplePlan) error {
	fmt.Fprintf(t.writer, "Sample plan for %s: %d selected of %d candidates (k=%d)\n",
		p.Dir, len(p.Selected), p.Candidates, p.K)
	if p.Shortfall {
		fmt.Fprintf(t.writer, "Warning: candidate pool below requested sample size\n")
	}

	if len(p.Selected) > 0 {
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FILE\tGEOFENCE\tSIBLING")
		for _, sel := range p.Selected {
			sibling := sel.SiblingFile
			if sibling == "" {
				sibling = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", sel.File, sel.Geofence, sibling)
		}
		tw.Flush()
	}

	for _, m := range p.MissingSiblings {
		fmt.Fprintf(t.writer, "Missing sibling: %s\n", m)
	}

	return nil
}

// PrintSampleResult prints the outcome of an applied sample plan.
func (t *TablePrinter) PrintSampleResult(r model.SampleResult) error {
	fmt.Fprintf(t.writer, "Copied %d files into %s (%d skipped, %d errors)\n",
		r.Copied, r.DestDir, r.Skipped, len(r.Errors))
	for _, e := range r.Errors {
		fmt.Fprintf(t.writer, "Error: %s\n", e)
	}
	return nil
}

// PrintStats prints corpus summary statistics.
func (t *TablePrinter) PrintStats(r model.StatsReport) error {
	for _, ds := range r.Dirs {
		fmt.Fprintf(t.writer, "%s: %d tasks, %d skipped\n", ds.Dir, ds.Tasks, ds.Skipped)

		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TYPE\tCOUNT")
		for _, taskType := range model.AllTaskTypes {
			if n := ds.ByType[taskType]; n > 0 {
				fmt.Fprintf(tw, "%s\t%d\n", taskType, n)
			}
		}
		tw.Flush()

		fmt.Fprintf(t.writer, "Verification: yes=%d no=%d unknown=%d\n",
			ds.Verification[model.VerificationYes],
			ds.Verification[model.VerificationNo],
			ds.Verification[model.VerificationUnknown])

		geofences := make([]string, 0, len(ds.ByGeofence))
		for g := range ds.ByGeofence {
			geofences = append(geofences, g)
		}
		sort.Strings(geofences)
		fmt.Fprintf(t.writer, "Geofences: %d distinct\n", len(geofences))
	}

	return nil
}

// PrintRunList prints persisted runs in a table format.
func (t *TablePrinter) PrintRunList(runs []model.Run) error {
	if len(runs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tCOMMAND\tSTARTED\tOK\tSKIP\tERR")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			r.ID, r.Command, TimeAgo(r.StartedAt), r.Successes, r.Skips, r.Errors)
	}

	return nil
}

// PrintRun prints one persisted run with its full report detail.
func (t *TablePrinter) PrintRun(r model.Run) error {
	fmt.Fprintf(t.writer, "ID:        %s\n", r.ID)
	fmt.Fprintf(t.writer, "Command:   %s\n", r.Command)
	fmt.Fprintf(t.writer, "Started:   %s\n", FormatTimestamp(r.StartedAt))
	fmt.Fprintf(t.writer, "Finished:  %s\n", FormatTimestamp(r.FinishedAt))
	fmt.Fprintf(t.writer, "Successes: %d\n", r.Successes)
	fmt.Fprintf(t.writer, "Skips:     %d\n", r.Skips)
	fmt.Fprintf(t.writer, "Errors:    %d\n", r.Errors)
	if r.Detail != "" {
		fmt.Fprintf(t.writer, "Detail:    %s\n", r.Detail)
	}
	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
