package pitch

// epsFloor guards bin widths and tolerances against collapsing to zero when
// a sample has zero range.
const epsFloor = 1e-12

// MatchConfig groups stack matcher parameters.
type MatchConfig struct {
	Policy string  // "any-overlap" (default) or "best-overlap"
	Eps    float64 // overlap tolerance; 0 = strict projection overlap
	Cell   string  // restrict matching to this cell name; "" = all cells
}

// EstimateConfig groups pitch estimator parameters.
type EstimateConfig struct {
	Estimator       string  // "mode-bin" (default) or "nearest-gap" for the X axis
	MaxGap          int     // pairwise-difference span for mode-bin (default 3)
	BinFracX        float64 // X bin width as a fraction of coordinate range (default 0.01)
	BinFracY        float64 // Y bin width as a fraction of spacing range (default 0.05)
	PhaseTolFrac    float64 // column assignment tolerance as a fraction of pitch (default 0.15)
	PhaseCandidates int     // number of distinct X values tried as phase references (default 6)
}

// Config carries everything one analysis run needs beyond the table itself.
// The role mapping is always caller-supplied; the engine never guesses which
// layer plays which role.
type Config struct {
	Roles    LayerRoles
	Match    MatchConfig
	Estimate EstimateConfig
}

// DefaultConfig returns a Config with the documented defaults. The role
// mapping is left empty and must be filled in by the caller.
func DefaultConfig() Config {
	return Config{
		Match: MatchConfig{Policy: "any-overlap"},
		Estimate: EstimateConfig{
			Estimator:       "mode-bin",
			MaxGap:          3,
			BinFracX:        0.01,
			BinFracY:        0.05,
			PhaseTolFrac:    0.15,
			PhaseCandidates: 6,
		},
	}
}

// Validate checks the role mapping, policy names, and parameter ranges.
// It is called by Analyze before any geometry work begins.
func (c Config) Validate() error {
	if err := c.Roles.Validate(); err != nil {
		return err
	}
	if !ValidMatchPolicies[c.Match.Policy] {
		return NewError(CodeInvalidPolicy, "unknown match policy %q; valid policies: [any-overlap, best-overlap]", c.Match.Policy)
	}
	if !ValidEstimators[c.Estimate.Estimator] {
		return NewError(CodeInvalidPolicy, "unknown estimator %q; valid estimators: [mode-bin, nearest-gap]", c.Estimate.Estimator)
	}
	if c.Match.Eps < 0 {
		return NewError(CodeInvalidConfig, "eps must be >= 0, got %v", c.Match.Eps)
	}
	if c.Estimate.MaxGap < 1 {
		return NewError(CodeInvalidConfig, "max gap must be >= 1, got %d", c.Estimate.MaxGap)
	}
	if c.Estimate.BinFracX <= 0 || c.Estimate.BinFracY <= 0 {
		return NewError(CodeInvalidConfig, "bin fractions must be > 0, got x=%v y=%v", c.Estimate.BinFracX, c.Estimate.BinFracY)
	}
	if c.Estimate.PhaseTolFrac <= 0 {
		return NewError(CodeInvalidConfig, "phase tolerance fraction must be > 0, got %v", c.Estimate.PhaseTolFrac)
	}
	if c.Estimate.PhaseCandidates < 1 {
		return NewError(CodeInvalidConfig, "phase candidates must be >= 1, got %d", c.Estimate.PhaseCandidates)
	}
	return nil
}
