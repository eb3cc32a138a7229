package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/navcorpus/internal/app/quarantine"
	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/printer"
)

type QuarantineCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	dir           string
	quarantineDir string
	field         string
	threshold     float64
	siblingType   string
	prefix        string
	suffix        string
	dryRun        bool
	format        string
}

// NewQuarantineCommand returns the quarantine command.
func NewQuarantineCommand(rootCmd *RootCommand, app *kingpin.Application) *QuarantineCommand {
	c := &QuarantineCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("quarantine", "Move tasks whose ground-truth scalar exceeds a threshold, siblings included.")
	c.Cmd.Flag("dir", "Corpus directory to quarantine from.").Required().StringVar(&c.dir)
	c.Cmd.Flag("quarantine-dir", "Destination directory for quarantined files.").StringVar(&c.quarantineDir)
	c.Cmd.Flag("field", "Ground-truth scalar field to test.").Required().StringVar(&c.field)
	c.Cmd.Flag("threshold", "Value above which a task is quarantined.").Required().Float64Var(&c.threshold)
	c.Cmd.Flag("sibling-type", "Paired counterpart type, resolved by filename prefix substitution.").StringVar(&c.siblingType)
	c.Cmd.Flag("prefix", "Only consider files with this name prefix.").StringVar(&c.prefix)
	c.Cmd.Flag("suffix", "Only consider files with this name suffix.").Default(".json").StringVar(&c.suffix)
	c.Cmd.Flag("dry-run", "Print the plan without moving anything.").BoolVar(&c.dryRun)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c QuarantineCommand) Name() string { return c.Cmd.FullCommand() }

func (c QuarantineCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger
	startedAt := time.Now().UTC()

	if !c.dryRun && c.quarantineDir == "" {
		return fmt.Errorf("--quarantine-dir is required unless --dry-run")
	}

	siblingType, err := taskTypeFlag(c.siblingType)
	if err != nil {
		return err
	}

	snap, err := corpus.LoadSnapshot(c.dir, corpus.Filter{Prefix: c.prefix, Suffix: c.suffix}, logger)
	if err != nil {
		return fmt.Errorf("could not load corpus: %w", err)
	}

	svc, err := quarantine.NewService(quarantine.ServiceConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	plan, err := svc.Plan(ctx, quarantine.PlanRequest{
		Snapshot:    snap,
		Field:       c.field,
		Threshold:   c.threshold,
		SiblingType: siblingType,
	})
	if err != nil {
		return fmt.Errorf("could not plan quarantine: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default:
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if c.dryRun {
		if err := p.PrintQuarantinePlan(*plan); err != nil {
			return fmt.Errorf("could not print plan: %w", err)
		}
		saveRun(ctx, c.rootCmd, c.Name(), startedAt, len(plan.Moves), plan.Skipped, len(plan.UnresolvedPairings), plan)
		return nil
	}

	result, err := svc.Apply(ctx, plan, c.quarantineDir)
	if err != nil {
		return fmt.Errorf("could not apply quarantine: %w", err)
	}

	if err := p.PrintQuarantineResult(*result); err != nil {
		return fmt.Errorf("could not print result: %w", err)
	}

	saveRun(ctx, c.rootCmd, c.Name(), startedAt, result.Moved, result.Skipped, len(result.Errors), result)

	return nil
}
