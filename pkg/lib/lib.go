package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slok/navcorpus/internal/app/check"
	"github.com/slok/navcorpus/internal/app/propagate"
	"github.com/slok/navcorpus/internal/app/quarantine"
	"github.com/slok/navcorpus/internal/app/sample"
	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/geofence"
	"github.com/slok/navcorpus/internal/log"
	"github.com/slok/navcorpus/internal/model"
	storageio "github.com/slok/navcorpus/internal/storage/io"
)

// Re-exported domain types so SDK users don't import internal packages.
type (
	Snapshot          = corpus.Snapshot
	Filter            = corpus.Filter
	Registry          = geofence.Registry
	TaskType          = model.TaskType
	CheckReport       = model.CheckReport
	PropagationReport = model.PropagationReport
	QuarantinePlan    = model.QuarantinePlan
	QuarantineResult  = model.QuarantineResult
	SamplePlan        = model.SamplePlan
	SampleResult      = model.SampleResult
)

// Task type constants.
const (
	TaskTypeNav    = model.TaskTypeNav
	TaskTypeDis    = model.TaskTypeDis
	TaskTypeAngle  = model.TaskTypeAngle
	TaskTypeVis    = model.TaskTypeVis
	TaskTypeHeight = model.TaskTypeHeight
)

// Config configures the SDK client. All fields are optional.
type Config struct {
	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger

	// DefaultSuffix filters corpus files on snapshot loads. Default: ".json".
	DefaultSuffix string
}

func (c *Config) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.DefaultSuffix == "" {
		c.DefaultSuffix = ".json"
	}

	return nil
}

// Client is the main SDK entry point for running the curation pipeline
// programmatically.
type Client struct {
	logger log.Logger
	suffix string

	checkSvc      *check.Service
	propagateSvc  *propagate.Service
	quarantineSvc *quarantine.Service
	sampleSvc     *sample.Service
}

// New creates a new SDK client.
func New(cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	checkSvc, err := check.NewService(check.ServiceConfig{Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create check service: %w", err)
	}
	propagateSvc, err := propagate.NewService(propagate.ServiceConfig{Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create propagate service: %w", err)
	}
	quarantineSvc, err := quarantine.NewService(quarantine.ServiceConfig{Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create quarantine service: %w", err)
	}
	sampleSvc, err := sample.NewService(sample.ServiceConfig{Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create sample service: %w", err)
	}

	return &Client{
		logger:        cfg.Logger,
		suffix:        cfg.DefaultSuffix,
		checkSvc:      checkSvc,
		propagateSvc:  propagateSvc,
		quarantineSvc: quarantineSvc,
		sampleSvc:     sampleSvc,
	}, nil
}

// LoadSnapshot indexes one corpus directory.
func (c *Client) LoadSnapshot(dir string) (*Snapshot, error) {
	return corpus.LoadSnapshot(dir, corpus.Filter{Suffix: c.suffix}, c.logger)
}

// LoadSnapshotFiltered indexes one corpus directory with an explicit filter.
func (c *Client) LoadSnapshotFiltered(dir string, filter Filter) (*Snapshot, error) {
	return corpus.LoadSnapshot(dir, filter, c.logger)
}

// LoadRegistry loads a geofence configuration YAML file.
func (c *Client) LoadRegistry(ctx context.Context, path string) (*Registry, error) {
	repo := storageio.NewGeofenceYAMLRepository(os.DirFS(filepath.Dir(path)))
	return repo.GetRegistry(ctx, filepath.Base(path))
}

// LoadDefectList loads a line-oriented defect list file.
func (c *Client) LoadDefectList(ctx context.Context, path string) ([]string, error) {
	repo := storageio.NewDefectListRepository(os.DirFS(filepath.Dir(path)))
	return repo.GetDefectiveIDs(ctx, filepath.Base(path))
}

// CheckOpts are the options for Check.
type CheckOpts struct {
	Snapshots []*Snapshot
	FromType  TaskType
	ToType    TaskType
	Registry  *Registry
}

// Check runs the corpus consistency checks.
func (c *Client) Check(ctx context.Context, opts CheckOpts) (*CheckReport, error) {
	return c.checkSvc.Run(ctx, check.Request{
		Snapshots: opts.Snapshots,
		FromType:  opts.FromType,
		ToType:    opts.ToType,
		Registry:  opts.Registry,
	})
}

// PropagateOpts are the options for Propagate.
type PropagateOpts struct {
	DefectiveIDs []string
	Registry     *Registry
	Snapshots    []*Snapshot
}

// Propagate computes the defect propagation report.
func (c *Client) Propagate(ctx context.Context, opts PropagateOpts) (*PropagationReport, error) {
	return c.propagateSvc.Run(ctx, propagate.Request{
		DefectiveIDs: opts.DefectiveIDs,
		Registry:     opts.Registry,
		Snapshots:    opts.Snapshots,
	})
}

// QuarantineOpts are the options for PlanQuarantine.
type QuarantineOpts struct {
	Snapshot    *Snapshot
	Field       string
	Threshold   float64
	SiblingType TaskType
}

// PlanQuarantine computes quarantine moves without performing them.
func (c *Client) PlanQuarantine(ctx context.Context, opts QuarantineOpts) (*QuarantinePlan, error) {
	return c.quarantineSvc.Plan(ctx, quarantine.PlanRequest{
		Snapshot:    opts.Snapshot,
		Field:       opts.Field,
		Threshold:   opts.Threshold,
		SiblingType: opts.SiblingType,
	})
}

// ApplyQuarantine performs a quarantine plan's moves.
func (c *Client) ApplyQuarantine(ctx context.Context, plan *QuarantinePlan, quarantineDir string) (*QuarantineResult, error) {
	return c.quarantineSvc.Apply(ctx, plan, quarantineDir)
}

// SampleOpts are the options for PlanSample.
type SampleOpts struct {
	Snapshot        *Snapshot
	K               int
	Seed            int64
	RequireVerified bool
	MaxRouteSteps   int
	UniqueGeofence  bool
	SiblingType     TaskType
	SiblingDir      string
}

// PlanSample computes a constrained random sample without copying anything.
func (c *Client) PlanSample(ctx context.Context, opts SampleOpts) (*SamplePlan, error) {
	return c.sampleSvc.Plan(ctx, sample.PlanRequest{
		Snapshot:        opts.Snapshot,
		K:               opts.K,
		Seed:            opts.Seed,
		RequireVerified: opts.RequireVerified,
		MaxRouteSteps:   opts.MaxRouteSteps,
		UniqueGeofence:  opts.UniqueGeofence,
		SiblingType:     opts.SiblingType,
		SiblingDir:      opts.SiblingDir,
	})
}

// ApplySample copies a sample plan's files into the destination.
func (c *Client) ApplySample(ctx context.Context, plan *SamplePlan, destDir string) (*SampleResult, error) {
	return c.sampleSvc.Apply(ctx, plan, destDir)
}
