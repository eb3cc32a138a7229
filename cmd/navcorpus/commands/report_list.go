package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/navcorpus/internal/app/report"
	"github.com/slok/navcorpus/internal/printer"
	"github.com/slok/navcorpus/internal/storage/sqlite"
)

type ReportListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	command string
	format  string
}

// NewReportListCommand returns the report list command.
func NewReportListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ReportListCommand {
	c := &ReportListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List persisted run reports.")
	c.Cmd.Flag("command", "Only show runs of this command.").StringVar(&c.command)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ReportListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ReportListCommand) Run(ctx context.Context) error {
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

	runs, err := svc.List(ctx, report.ListRequest{Command: c.command})
	if err != nil {
		return fmt.Errorf("could not list runs: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default:
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintRunList(runs); err != nil {
		return fmt.Errorf("could not print runs: %w", err)
	}

	return nil
}
