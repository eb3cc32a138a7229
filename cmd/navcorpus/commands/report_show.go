package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/navcorpus/internal/app/report"
	"github.com/slok/navcorpus/internal/printer"
	"github.com/slok/navcorpus/internal/storage/sqlite"
)

type ReportShowCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     string
	format string
}

// NewReportShowCommand returns the report show command.
func NewReportShowCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ReportShowCommand {
	c := &ReportShowCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("show", "Show one persisted run report with its full detail.")
	c.Cmd.Arg("id", "Run id.").Required().StringVar(&c.id)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ReportShowCommand) Name() string { return c.Cmd.FullCommand() }

func (c ReportShowCommand) Run(ctx context.Context) error {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not open run-report store: %w", err)
	}
	defer repo.Close()

	svc, err := report.NewService(report.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	run, err := svc.Get(ctx, c.id)
	if err != nil {
		return fmt.Errorf("could not get run: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default:
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintRun(*run); err != nil {
		return fmt.Errorf("could not print run: %w", err)
	}

	return nil
}
