package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/navcorpus/internal/app/sample"
	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/printer"
)

type SampleCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	dir            string
	destDir        string
	k              int
	seed           int64
	verifiedOnly   bool
	maxRouteSteps  int
	uniqueGeofence bool
	siblingType    string
	siblingDir     string
	prefix         string
	suffix         string
	dryRun         bool
	format         string
}

// NewSampleCommand returns the sample command.
func NewSampleCommand(rootCmd *RootCommand, app *kingpin.Application) *SampleCommand {
	c := &SampleCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("sample", "Draw a constrained random sample of verified tasks into a destination directory.")
	c.Cmd.Flag("dir", "Corpus directory to sample from.").Required().StringVar(&c.dir)
	c.Cmd.Flag("dest", "Destination directory for the sampled files.").StringVar(&c.destDir)
	c.Cmd.Flag("k", "Target sample size.").Required().IntVar(&c.k)
	c.Cmd.Flag("seed", "Random seed (0 means time-seeded).").Int64Var(&c.seed)
	c.Cmd.Flag("verified-only", "Keep only tasks with agent verification YES.").Default("true").BoolVar(&c.verifiedOnly)
	c.Cmd.Flag("max-route-steps", "Drop tasks whose refined route exceeds this step count (0 disables).").IntVar(&c.maxRouteSteps)
	c.Cmd.Flag("unique-geofence", "Keep at most one task per distinct geofence.").Default("true").BoolVar(&c.uniqueGeofence)
	c.Cmd.Flag("sibling-type", "Counterpart type to copy along with each selection.").StringVar(&c.siblingType)
	c.Cmd.Flag("sibling-dir", "Directory holding the counterpart files (defaults to --dir).").StringVar(&c.siblingDir)
	c.Cmd.Flag("prefix", "Only consider files with this name prefix.").StringVar(&c.prefix)
	c.Cmd.Flag("suffix", "Only consider files with this name suffix.").Default(".json").StringVar(&c.suffix)
	c.Cmd.Flag("dry-run", "Print the plan without copying anything.").BoolVar(&c.dryRun)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c SampleCommand) Name() string { return c.Cmd.FullCommand() }

func (c SampleCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger
	startedAt := time.Now().UTC()

	if !c.dryRun && c.destDir == "" {
		return fmt.Errorf("--dest is required unless --dry-run")
	}

	siblingType, err := taskTypeFlag(c.siblingType)
	if err != nil {
		return err
	}

	snap, err := corpus.LoadSnapshot(c.dir, corpus.Filter{Prefix: c.prefix, Suffix: c.suffix}, logger)
	if err != nil {
		return fmt.Errorf("could not load corpus: %w", err)
	}

	svc, err := sample.NewService(sample.ServiceConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	plan, err := svc.Plan(ctx, sample.PlanRequest{
		Snapshot:        snap,
		K:               c.k,
		Seed:            c.seed,
		RequireVerified: c.verifiedOnly,
		MaxRouteSteps:   c.maxRouteSteps,
		UniqueGeofence:  c.uniqueGeofence,
		SiblingType:     siblingType,
		SiblingDir:      c.siblingDir,
	})
	if err != nil {
		return fmt.Errorf("could not plan sample: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default:
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if c.dryRun {
		if err := p.PrintSamplePlan(*plan); err != nil {
			return fmt.Errorf("could not print plan: %w", err)
		}
		saveRun(ctx, c.rootCmd, c.Name(), startedAt, len(plan.Selected), 0, len(plan.MissingSiblings), plan)
		return nil
	}

	result, err := svc.Apply(ctx, plan, c.destDir)
	if err != nil {
		return fmt.Errorf("could not apply sample: %w", err)
	}

	if err := p.PrintSampleResult(*result); err != nil {
		return fmt.Errorf("could not print result: %w", err)
	}

	saveRun(ctx, c.rootCmd, c.Name(), startedAt, result.Copied, result.Skipped, len(result.Errors), result)

	return nil
}
