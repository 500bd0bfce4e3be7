package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pitchscan/pitchscan/pitch"
)

var (
	// CLI flags for the analyze command
	csvPath         string  // Input shape CSV path
	cellName        string  // Cell name filter ("" = all cells)
	viaLayer        string  // Layer key playing the via role
	metalALayer     string  // Layer key playing the metal-A role
	metalBLayer     string  // Layer key playing the metal-B role
	rolesPath       string  // YAML role mapping file (overrides the role flags)
	matchPolicy     string  // Stack match policy name
	estimatorName   string  // X-axis estimator name
	overlapEps      float64 // Overlap tolerance
	maxGap          int     // Pairwise-difference span for mode-bin estimation
	phaseTol        float64 // Column assignment tolerance fraction
	phaseCandidates int     // Number of phase references tried
	binFracX        float64 // X estimator bin width fraction
	binFracY        float64 // Y estimator bin width fraction
)

// analyzeResult mirrors the result object of the JSON envelope.
type analyzeResult struct {
	InputCSV    string   `json:"input_csv"`
	CellName    string   `json:"cell_name,omitempty"`
	StackCount  int      `json:"stack_count"`
	ArrayPitchX *float64 `json:"array_pitch_x"`
	ArrayPitchY *float64 `json:"array_pitch_y"`
	Warning     string   `json:"warning,omitempty"`
}

// envelope is the CLI's JSON output contract: ok=true carries a result,
// ok=false carries a human-readable error. Exit code follows ok.
type envelope struct {
	OK     bool           `json:"ok"`
	Result *analyzeResult `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// analyzeCmd estimates stack array pitch from a shape CSV
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Detect via/metal stacks in a shape CSV and estimate array pitch",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := buildConfig()
		if err != nil {
			emit(envelope{OK: false, Error: err.Error()})
			return
		}
		result, err := runAnalysis(csvPath, cfg)
		if err != nil {
			emit(envelope{OK: false, Error: err.Error()})
			return
		}
		emit(envelope{OK: true, Result: result})
	},
}

// buildConfig assembles the analysis Config from flags, with an optional
// YAML role mapping file taking precedence over the individual role flags.
func buildConfig() (pitch.Config, error) {
	cfg := pitch.DefaultConfig()
	cfg.Roles = pitch.LayerRoles{Via: viaLayer, MetalA: metalALayer, MetalB: metalBLayer}
	if rolesPath != "" {
		roles, err := pitch.LoadLayerRoles(rolesPath)
		if err != nil {
			return pitch.Config{}, err
		}
		cfg.Roles = roles
	}
	cfg.Match.Policy = matchPolicy
	cfg.Match.Eps = overlapEps
	cfg.Match.Cell = cellName
	cfg.Estimate.Estimator = estimatorName
	cfg.Estimate.MaxGap = maxGap
	cfg.Estimate.PhaseTolFrac = phaseTol
	cfg.Estimate.PhaseCandidates = phaseCandidates
	cfg.Estimate.BinFracX = binFracX
	cfg.Estimate.BinFracY = binFracY
	return cfg, nil
}

// runAnalysis loads the table and runs the engine. Shared by the analyze
// command and the registered pipeline tool.
func runAnalysis(path string, cfg pitch.Config) (*analyzeResult, error) {
	if path == "" {
		return nil, fmt.Errorf("no input csv provided")
	}
	table, err := pitch.LoadTable(path)
	if err != nil {
		return nil, err
	}
	report, err := pitch.Analyze(table, cfg)
	if err != nil {
		return nil, err
	}
	return &analyzeResult{
		InputCSV:    path,
		CellName:    cfg.Match.Cell,
		StackCount:  report.StackCount,
		ArrayPitchX: report.PitchX,
		ArrayPitchY: report.PitchY,
		Warning:     report.Warning,
	}, nil
}

// emit writes the JSON envelope to stdout and exits 1 when ok is false.
func emit(env envelope) {
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
	if !env.OK {
		os.Exit(1)
	}
}

// init sets up analyze command flags
func init() {
	analyzeCmd.Flags().StringVar(&csvPath, "csv", "", "Input shape CSV (cell_name, layer, bbox_x1..bbox_y2)")
	analyzeCmd.Flags().StringVar(&cellName, "cell", "", "Restrict matching to this cell name")
	analyzeCmd.Flags().StringVar(&viaLayer, "via", "", "Layer key for the via role")
	analyzeCmd.Flags().StringVar(&metalALayer, "m1", "", "Layer key for the metal-A role")
	analyzeCmd.Flags().StringVar(&metalBLayer, "m2", "", "Layer key for the metal-B role")
	analyzeCmd.Flags().StringVar(&rolesPath, "roles", "", "YAML role mapping file (overrides --via/--m1/--m2)")
	analyzeCmd.Flags().StringVar(&matchPolicy, "policy", "any-overlap", "Stack match policy (any-overlap, best-overlap)")
	analyzeCmd.Flags().StringVar(&estimatorName, "estimator", "mode-bin", "X pitch estimator (mode-bin, nearest-gap)")
	analyzeCmd.Flags().Float64Var(&overlapEps, "eps", 0, "Overlap tolerance")
	analyzeCmd.Flags().IntVar(&maxGap, "max-gap", 3, "Sorted-neighbor span for pairwise differences")
	analyzeCmd.Flags().Float64Var(&phaseTol, "phase-tol", 0.15, "Column assignment tolerance as a fraction of pitch")
	analyzeCmd.Flags().IntVar(&phaseCandidates, "phase-candidates", 6, "Number of distinct X values tried as phase references")
	analyzeCmd.Flags().Float64Var(&binFracX, "bin-frac-x", 0.01, "X estimator bin width as a fraction of coordinate range")
	analyzeCmd.Flags().Float64Var(&binFracY, "bin-frac-y", 0.05, "Y estimator bin width as a fraction of spacing range")
}
