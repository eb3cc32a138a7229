package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/navcorpus/internal/app/check"
	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/printer"
)

type CheckCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	dirs         []string
	fromType     string
	toType       string
	geofencePath string
	prefix       string
	suffix       string
	format       string
}

// NewCheckCommand returns the check command.
func NewCheckCommand(rootCmd *RootCommand, app *kingpin.Application) *CheckCommand {
	c := &CheckCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("check", "Run corpus consistency checks.")
	c.Cmd.Flag("dir", "Corpus directory to check (repeatable).").Required().StringsVar(&c.dirs)
	c.Cmd.Flag("from-type", "Source type for the cross-type completeness check.").StringVar(&c.fromType)
	c.Cmd.Flag("to-type", "Target type for the cross-type completeness check.").StringVar(&c.toType)
	c.Cmd.Flag("geofences", "Geofence configuration YAML, enables the reference check.").StringVar(&c.geofencePath)
	c.Cmd.Flag("prefix", "Only consider files with this name prefix.").StringVar(&c.prefix)
	c.Cmd.Flag("suffix", "Only consider files with this name suffix.").Default(".json").StringVar(&c.suffix)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c CheckCommand) Name() string { return c.Cmd.FullCommand() }

func (c CheckCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger
	startedAt := time.Now().UTC()

	fromType, err := taskTypeFlag(c.fromType)
	if err != nil {
		return err
	}
	toType, err := taskTypeFlag(c.toType)
	if err != nil {
		return err
	}

	// Snapshot every directory once, components share the snapshots.
	filter := corpus.Filter{Prefix: c.prefix, Suffix: c.suffix}
	var snapshots []*corpus.Snapshot
	for _, dir := range c.dirs {
		snap, err := corpus.LoadSnapshot(dir, filter, logger)
		if err != nil {
			return fmt.Errorf("could not load corpus: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	req := check.Request{
		Snapshots: snapshots,
		FromType:  fromType,
		ToType:    toType,
	}

	if c.geofencePath != "" {
		registry, err := loadRegistry(ctx, c.geofencePath)
		if err != nil {
			return fmt.Errorf("could not load geofences: %w", err)
		}
		req.Registry = registry
	}

	svc, err := check.NewService(check.ServiceConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	report, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not check corpus: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default:
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}
	if err := p.PrintCheck(*report); err != nil {
		return fmt.Errorf("could not print report: %w", err)
	}

	issues := len(report.IDMismatches) + len(report.MissingSiblings) +
		len(report.UnresolvedGeofences) + len(report.NegativeScalars)
	saveRun(ctx, c.rootCmd, c.Name(), startedAt, report.Tasks, report.Skipped, issues, report)

	return nil
}
