package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/ulid/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/navcorpus/internal/geofence"
	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
	storageio "github.com/slok/navcorpus/internal/storage/io"
	"github.com/slok/navcorpus/internal/storage/sqlite"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	DBPath     string
	NoReport   bool

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	defaultDBPath := filepath.Join(homedir.HomeDir(), ".navcorpus", "navcorpus.db")
	app.Flag("db-path", "Path to the SQLite run-report database file.").Envar("NAVCORPUS_DB_PATH").Default(defaultDBPath).StringVar(&c.DBPath)
	app.Flag("no-report", "Don't persist the run report.").BoolVar(&c.NoReport)

	return c
}

// saveRun persists the run summary counts and report detail. Persistence is
// ancillary: failures are warned about, never fatal for the pipeline run.
func saveRun(ctx context.Context, rootCmd *RootCommand, command string, startedAt time.Time, successes, skips, errCount int, detail any) {
	if rootCmd.NoReport {
		return
	}

	logger := rootCmd.Logger

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		logger.Warningf("Could not open run-report store: %s", err)
		return
	}
	defer repo.Close()

	detailJSON, err := json.Marshal(detail)
	if err != nil {
		logger.Warningf("Could not encode run detail: %s", err)
		detailJSON = nil
	}

	run := model.Run{
		ID:         ulid.Make().String(),
		Command:    command,
		StartedAt:  startedAt.UTC(),
		FinishedAt: time.Now().UTC(),
		Successes:  successes,
		Skips:      skips,
		Errors:     errCount,
		Detail:     string(detailJSON),
	}

	if err := repo.SaveRun(ctx, run); err != nil {
		logger.Warningf("Could not save run report: %s", err)
		return
	}

	logger.Debugf("Run report saved as %s", run.ID)
}

// loadRegistry loads the geofence registry from a YAML file path.
func loadRegistry(ctx context.Context, path string) (*geofence.Registry, error) {
	repo := storageio.NewGeofenceYAMLRepository(os.DirFS(filepath.Dir(path)))
	return repo.GetRegistry(ctx, filepath.Base(path))
}

// loadDefectList loads the defective panorama ids from a defect list path.
func loadDefectList(ctx context.Context, path string) ([]string, error) {
	repo := storageio.NewDefectListRepository(os.DirFS(filepath.Dir(path)))
	return repo.GetDefectiveIDs(ctx, filepath.Base(path))
}

func taskTypeFlag(v string) (model.TaskType, error) {
	if v == "" {
		return "", nil
	}

	t := model.TaskType(v)
	if !t.Valid() {
		return "", fmt.Errorf("unknown task type %q (must be: nav, dis, angle, vis, height)", v)
	}
	return t, nil
}
