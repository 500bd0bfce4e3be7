package pitch

import (
	"github.com/sirupsen/logrus"
)

//go:generate go tool stringer -type=Stage -trimprefix=Stage -output=stage_string.go

// Stage identifies a step of the analysis pipeline. The pipeline advances
// CollectStacks → CheckSufficiency → EstimateX → AssignColumns → EstimateY →
// Done; Failed is terminal and reachable from any stage after sufficiency.
type Stage int

const (
	StageCollectStacks Stage = iota
	StageCheckSufficiency
	StageEstimateX
	StageAssignColumns
	StageEstimateY
	StageDone
	StageFailed
)

// WarnInsufficientStacks is the soft warning attached to a report when fewer
// than two valid stacks exist. Too little candidate geometry is a reportable
// outcome, not an error.
const WarnInsufficientStacks = "insufficient matching stacks"

// PitchReport is the sole externally visible result of one analysis run.
// Nil pitch pointers mean the sample was insufficient; Warning explains why.
type PitchReport struct {
	StackCount int      `json:"stack_count"`
	PitchX     *float64 `json:"array_pitch_x"`
	PitchY     *float64 `json:"array_pitch_y"`
	Warning    string   `json:"warning,omitempty"`
}

// StageError marks a hard pipeline failure with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return "stage " + e.Stage.String() + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Analyze runs the full pipeline over an immutable rectangle table. It is a
// pure function of its inputs: repeated runs on the same table and config
// produce identical reports, and independent inputs may be analyzed
// concurrently without coordination.
//
// Fewer than two matched stacks ends the run at Done with nil pitches and a
// warning. Once enough geometry is present, an estimator failure is a hard
// error distinguishing "geometry present yet estimation fails" from "not
// enough candidate geometry".
func Analyze(table LayerTable, cfg Config) (PitchReport, error) {
	if err := cfg.Validate(); err != nil {
		return PitchReport{}, err
	}
	policy, err := NewMatchPolicy(cfg.Match.Policy)
	if err != nil {
		return PitchReport{}, err
	}
	estimator, err := NewEstimator(cfg.Estimate.Estimator, cfg.Estimate)
	if err != nil {
		return PitchReport{}, err
	}

	logrus.Debugf("stage %s: via=%q metal_a=%q metal_b=%q cell=%q policy=%q",
		StageCollectStacks, cfg.Roles.Via, cfg.Roles.MetalA, cfg.Roles.MetalB, cfg.Match.Cell, cfg.Match.Policy)
	stacks := FindStacks(table, cfg.Roles, cfg.Match, policy)
	report := PitchReport{StackCount: len(stacks)}

	logrus.Debugf("stage %s: %d stacks matched", StageCheckSufficiency, len(stacks))
	if len(stacks) < 2 {
		report.Warning = WarnInsufficientStacks
		return report, nil
	}

	xs := make([]float64, len(stacks))
	centers := make([]Point, len(stacks))
	for i, s := range stacks {
		xs[i] = s.Center.X
		centers[i] = s.Center
	}

	pitchX, err := estimator.Estimate(xs)
	if err != nil {
		return report, &StageError{Stage: StageEstimateX, Err: err}
	}
	logrus.Debugf("stage %s: pitch_x=%.9f", StageEstimateX, pitchX)

	assign := AssignColumns(xs, pitchX, cfg.Estimate.PhaseTolFrac, cfg.Estimate.PhaseCandidates)
	logrus.Debugf("stage %s: %d columns at phase %.9f", StageAssignColumns, len(assign.Columns), assign.Phase)

	pitchY, err := columnSpacingPitch(centers, assign, cfg.Estimate)
	if err != nil {
		return report, &StageError{Stage: StageEstimateY, Err: err}
	}
	logrus.Debugf("stage %s: pitch_y=%.9f", StageEstimateY, pitchY)

	report.PitchX = &pitchX
	report.PitchY = &pitchY
	return report, nil
}
