package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchscan/pitchscan/pitch"
	"github.com/pitchscan/pitchscan/registry"
)

// writeGridCSV writes a cols x rows grid of via/metal triples.
func writeGridCSV(t *testing.T, cols, rows int, pitchX, pitchY float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shapes.csv")
	content := "cell_name,layer,bbox_x1,bbox_y1,bbox_x2,bbox_y2\n"
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			cx := 0.1 + float64(c)*pitchX
			cy := 0.1 + float64(r)*pitchY
			content += fmt.Sprintf("top,100.0,%f,%f,%f,%f\n", cx-0.02, cy-0.02, cx+0.02, cy+0.02)
			content += fmt.Sprintf("top,200.0,%f,%f,%f,%f\n", cx-0.04, cy-0.03, cx+0.04, cy+0.03)
			content += fmt.Sprintf("top,300.0,%f,%f,%f,%f\n", cx-0.03, cy-0.04, cx+0.03, cy+0.04)
		}
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func gridConfig() pitch.Config {
	cfg := pitch.DefaultConfig()
	cfg.Roles = pitch.LayerRoles{Via: "100.0", MetalA: "200.0", MetalB: "300.0"}
	return cfg
}

func TestRunAnalysis_Grid(t *testing.T) {
	path := writeGridCSV(t, 4, 3, 0.16, 0.24)

	result, err := runAnalysis(path, gridConfig())
	require.NoError(t, err)

	assert.Equal(t, path, result.InputCSV)
	assert.Equal(t, 12, result.StackCount)
	require.NotNil(t, result.ArrayPitchX)
	require.NotNil(t, result.ArrayPitchY)
	assert.InDelta(t, 0.16, *result.ArrayPitchX, 1e-4)
	assert.InDelta(t, 0.24, *result.ArrayPitchY, 1e-4)
	assert.Empty(t, result.Warning)
}

func TestRunAnalysis_NoCSV(t *testing.T) {
	_, err := runAnalysis("", gridConfig())
	assert.Error(t, err)
}

func TestEnvelope_JSONShape(t *testing.T) {
	px, py := 0.16, 0.24
	env := envelope{OK: true, Result: &analyzeResult{
		InputCSV:    "shapes.csv",
		StackCount:  12,
		ArrayPitchX: &px,
		ArrayPitchY: &py,
	}}
	out, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"ok": true,
		"result": {
			"input_csv": "shapes.csv",
			"stack_count": 12,
			"array_pitch_x": 0.16,
			"array_pitch_y": 0.24
		}
	}`, string(out))
}

func TestEnvelope_NullPitches(t *testing.T) {
	env := envelope{OK: true, Result: &analyzeResult{
		InputCSV:   "shapes.csv",
		StackCount: 1,
		Warning:    pitch.WarnInsufficientStacks,
	}}
	out, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"array_pitch_x":null`)
	assert.Contains(t, string(out), `"array_pitch_y":null`)
	assert.Contains(t, string(out), `"warning":"insufficient matching stacks"`)
}

func TestAnalyzeTool_PayloadContract(t *testing.T) {
	path := writeGridCSV(t, 4, 3, 0.16, 0.24)
	payload := registry.Payload{
		"input_csv": path,
		"via":       "100.0",
		"metal_a":   "200.0",
		"metal_b":   "300.0",
	}

	out, err := analyzeTool(payload)
	require.NoError(t, err)

	result, ok := out["result"].(*analyzeResult)
	require.True(t, ok)
	assert.Equal(t, 12, result.StackCount)
}

func TestResultFromPayload(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		want := &analyzeResult{StackCount: 12}
		got, err := resultFromPayload(registry.Payload{"result": want})
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := resultFromPayload(registry.Payload{"value": 5.0})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "without producing an analysis result")
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := resultFromPayload(registry.Payload{"result": "not a result"})
		require.Error(t, err)
	})
}

func TestAnalyzeTool_MissingRoles(t *testing.T) {
	path := writeGridCSV(t, 2, 2, 0.16, 0.24)
	_, err := analyzeTool(registry.Payload{"input_csv": path})
	require.Error(t, err)
	assert.Equal(t, pitch.CodeInvalidLayerSpec, pitch.CodeOf(err))
}
