// Package lib provides a Go SDK for running the navcorpus curation pipeline
// programmatically.
//
// This package allows applications to index corpora, run consistency checks,
// propagate panorama defects, and plan/apply quarantine and sampling without
// shelling out to the navcorpus CLI binary.
//
// # Quick start
//
// Create a client and run the pipeline over a corpus directory:
//
//	client, err := lib.New(lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	snap, err := client.LoadSnapshot("./tasks/nav")
//	report, err := client.Check(ctx, lib.CheckOpts{
//	    Snapshots: []*lib.Snapshot{snap},
//	    FromType:  lib.TaskTypeNav,
//	    ToType:    lib.TaskTypeVis,
//	})
//
// Quarantine and sampling are two-step: Plan computes the report without
// touching the filesystem, Apply performs the moves/copies.
//
//	plan, err := client.PlanQuarantine(ctx, lib.QuarantineOpts{
//	    Snapshot:  snap,
//	    Field:     "distance_between_pois_m",
//	    Threshold: 150,
//	})
//	result, err := client.ApplyQuarantine(ctx, plan, "./tasks/quarantine")
package lib
