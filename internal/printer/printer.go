package printer

import "github.com/slok/navcorpus/internal/model"

// Printer knows how to print pipeline reports in different formats.
type Printer interface {
	PrintCheck(r model.CheckReport) error
	PrintPropagation(r model.PropagationReport) error
	PrintQuarantinePlan(p model.QuarantinePlan) error
	PrintQuarantineResult(r model.QuarantineResult) error
	PrintSamplePlan(p model.SamplePlan) error
	PrintSampleResult(r model.SampleResult) error
	PrintStats(r model.StatsReport) error
	PrintRunList(runs []model.Run) error
	PrintRun(r model.Run) error
	PrintMessage(msg string) error
}
