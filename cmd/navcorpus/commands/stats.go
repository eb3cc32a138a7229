package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/navcorpus/internal/app/stats"
	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/printer"
)

type StatsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	dirs   []string
	prefix string
	suffix string
	format string
}

// NewStatsCommand returns the stats command.
func NewStatsCommand(rootCmd *RootCommand, app *kingpin.Application) *StatsCommand {
	c := &StatsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("stats", "Summarize corpus directories.")
	c.Cmd.Flag("dir", "Corpus directory to summarize (repeatable).").Required().StringsVar(&c.dirs)
	c.Cmd.Flag("prefix", "Only consider files with this name prefix.").StringVar(&c.prefix)
	c.Cmd.Flag("suffix", "Only consider files with this name suffix.").Default(".json").StringVar(&c.suffix)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c StatsCommand) Name() string { return c.Cmd.FullCommand() }

func (c StatsCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger
	startedAt := time.Now().UTC()

	filter := corpus.Filter{Prefix: c.prefix, Suffix: c.suffix}
	var snapshots []*corpus.Snapshot
	for _, dir := range c.dirs {
		snap, err := corpus.LoadSnapshot(dir, filter, logger)
		if err != nil {
			return fmt.Errorf("could not load corpus: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	svc, err := stats.NewService(stats.ServiceConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	report, err := svc.Run(ctx, stats.Request{Snapshots: snapshots})
	if err != nil {
		return fmt.Errorf("could not compute stats: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default:
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}
	if err := p.PrintStats(*report); err != nil {
		return fmt.Errorf("could not print stats: %w", err)
	}

	tasks, skipped := 0, 0
	for _, ds := range report.Dirs {
		tasks += ds.Tasks
		skipped += ds.Skipped
	}
	saveRun(ctx, c.rootCmd, c.Name(), startedAt, tasks, skipped, 0, report)

	return nil
}
