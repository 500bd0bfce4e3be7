package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pitchscan/pitchscan/pitch"
	"github.com/pitchscan/pitchscan/registry"
)

var (
	indexPath    string // Tool index path
	pipelinePath string // Pipeline definition path
)

// toolsCmd lists the tools registered in an index file
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools in a tool index",
	Run: func(cmd *cobra.Command, args []string) {
		idx, err := registry.LoadIndex(indexPath)
		if err != nil {
			emit(envelope{OK: false, Error: err.Error()})
			return
		}
		for _, tool := range idx.Tools {
			fmt.Printf("%-24s %s\n", tool.Name, tool.Summary)
		}
	},
}

// runCmd executes a pipeline definition against the tool index
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a pipeline of registered tools",
	Run: func(cmd *cobra.Command, args []string) {
		idx, err := registry.LoadIndex(indexPath)
		if err != nil {
			emit(envelope{OK: false, Error: err.Error()})
			return
		}
		p, err := registry.LoadPipeline(pipelinePath)
		if err != nil {
			emit(envelope{OK: false, Error: err.Error()})
			return
		}
		runner := registry.NewRunner(idx)
		if err := runner.Register("analyze_array_pitch", analyzeTool); err != nil {
			emit(envelope{OK: false, Error: err.Error()})
			return
		}
		out, err := runner.Execute(p, registry.Payload{})
		if err != nil {
			emit(envelope{OK: false, Error: err.Error()})
			return
		}
		result, err := resultFromPayload(out)
		if err != nil {
			emit(envelope{OK: false, Error: err.Error()})
			return
		}
		emit(envelope{OK: true, Result: result})
	},
}

// resultFromPayload extracts the analysis result left in the final payload.
// A pipeline whose last tool leaves no result is a failure, not an empty
// success.
func resultFromPayload(out registry.Payload) (*analyzeResult, error) {
	result, ok := out["result"].(*analyzeResult)
	if !ok {
		return nil, fmt.Errorf("pipeline completed without producing an analysis result")
	}
	return result, nil
}

// analyzeTool adapts the analysis engine to the pipeline payload contract.
// Recognized payload keys: input_csv, cell_name, via, metal_a, metal_b, and
// the estimator knobs eps, policy, estimator.
func analyzeTool(payload registry.Payload) (registry.Payload, error) {
	cfg := pitch.DefaultConfig()
	cfg.Roles = pitch.LayerRoles{
		Via:    payloadString(payload, "via"),
		MetalA: payloadString(payload, "metal_a"),
		MetalB: payloadString(payload, "metal_b"),
	}
	cfg.Match.Cell = payloadString(payload, "cell_name")
	if v, ok := payload["eps"].(float64); ok {
		cfg.Match.Eps = v
	}
	if v := payloadString(payload, "policy"); v != "" {
		cfg.Match.Policy = v
	}
	if v := payloadString(payload, "estimator"); v != "" {
		cfg.Estimate.Estimator = v
	}

	result, err := runAnalysis(payloadString(payload, "input_csv"), cfg)
	if err != nil {
		return nil, err
	}
	payload["result"] = result
	return payload, nil
}

func payloadString(payload registry.Payload, key string) string {
	s, _ := payload[key].(string)
	return s
}

// init sets up pipeline command flags
func init() {
	toolsCmd.Flags().StringVar(&indexPath, "index", "TOOL_INDEX.json", "Tool index file (JSON or JSONC)")
	runCmd.Flags().StringVar(&indexPath, "index", "TOOL_INDEX.json", "Tool index file (JSON or JSONC)")
	runCmd.Flags().StringVar(&pipelinePath, "pipeline", "", "Pipeline definition file (JSON or JSONC)")
}
