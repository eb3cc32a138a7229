package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/navcorpus/internal/app/propagate"
	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/printer"
)

type PropagateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	defectPath   string
	geofencePath string
	dirs         []string
	prefix       string
	suffix       string
	format       string
}

// NewPropagateCommand returns the propagate command.
func NewPropagateCommand(rootCmd *RootCommand, app *kingpin.Application) *PropagateCommand {
	c := &PropagateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("propagate", "Propagate a panorama defect list to affected geofences and tasks.")
	c.Cmd.Flag("defects", "Defect list file, one panorama id per line.").Required().StringVar(&c.defectPath)
	c.Cmd.Flag("geofences", "Geofence configuration YAML.").Required().StringVar(&c.geofencePath)
	c.Cmd.Flag("dir", "Corpus directory to scan (repeatable).").Required().StringsVar(&c.dirs)
	c.Cmd.Flag("prefix", "Only consider files with this name prefix.").StringVar(&c.prefix)
	c.Cmd.Flag("suffix", "Only consider files with this name suffix.").Default(".json").StringVar(&c.suffix)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c PropagateCommand) Name() string { return c.Cmd.FullCommand() }

func (c PropagateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger
	startedAt := time.Now().UTC()

	defectiveIDs, err := loadDefectList(ctx, c.defectPath)
	if err != nil {
		return fmt.Errorf("could not load defect list: %w", err)
	}

	registry, err := loadRegistry(ctx, c.geofencePath)
	if err != nil {
		return fmt.Errorf("could not load geofences: %w", err)
	}

	filter := corpus.Filter{Prefix: c.prefix, Suffix: c.suffix}
	var snapshots []*corpus.Snapshot
	skipped := 0
	for _, dir := range c.dirs {
		snap, err := corpus.LoadSnapshot(dir, filter, logger)
		if err != nil {
			return fmt.Errorf("could not load corpus: %w", err)
		}
		snapshots = append(snapshots, snap)
		skipped += len(snap.Skipped)
	}

	svc, err := propagate.NewService(propagate.ServiceConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	report, err := svc.Run(ctx, propagate.Request{
		DefectiveIDs: defectiveIDs,
		Registry:     registry,
		Snapshots:    snapshots,
	})
	if err != nil {
		return fmt.Errorf("could not propagate defects: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default:
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}
	if err := p.PrintPropagation(*report); err != nil {
		return fmt.Errorf("could not print report: %w", err)
	}

	saveRun(ctx, c.rootCmd, c.Name(), startedAt, len(report.Tasks), skipped, 0, report)

	return nil
}
