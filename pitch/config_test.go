package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Roles = LayerRoles{Via: "100.0", MetalA: "200.0", MetalB: "300.0"}
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "any-overlap", cfg.Match.Policy)
	assert.Equal(t, "mode-bin", cfg.Estimate.Estimator)
	assert.Equal(t, 0.0, cfg.Match.Eps)
	assert.Equal(t, 3, cfg.Estimate.MaxGap)
	assert.Equal(t, 0.01, cfg.Estimate.BinFracX)
	assert.Equal(t, 0.05, cfg.Estimate.BinFracY)
	assert.Equal(t, 0.15, cfg.Estimate.PhaseTolFrac)
	assert.Equal(t, 6, cfg.Estimate.PhaseCandidates)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode Code
	}{
		{name: "valid defaults", mutate: func(c *Config) {}},
		{
			name:     "empty roles",
			mutate:   func(c *Config) { c.Roles = LayerRoles{} },
			wantCode: CodeInvalidLayerSpec,
		},
		{
			name:     "unknown match policy",
			mutate:   func(c *Config) { c.Match.Policy = "most-overlap" },
			wantCode: CodeInvalidPolicy,
		},
		{
			name:     "unknown estimator",
			mutate:   func(c *Config) { c.Estimate.Estimator = "fourier" },
			wantCode: CodeInvalidPolicy,
		},
		{
			name:     "negative eps",
			mutate:   func(c *Config) { c.Match.Eps = -0.1 },
			wantCode: CodeInvalidConfig,
		},
		{
			name:     "zero max gap",
			mutate:   func(c *Config) { c.Estimate.MaxGap = 0 },
			wantCode: CodeInvalidConfig,
		},
		{
			name:     "zero bin fraction",
			mutate:   func(c *Config) { c.Estimate.BinFracX = 0 },
			wantCode: CodeInvalidConfig,
		},
		{
			name:     "zero phase tolerance",
			mutate:   func(c *Config) { c.Estimate.PhaseTolFrac = 0 },
			wantCode: CodeInvalidConfig,
		},
		{
			name:     "zero phase candidates",
			mutate:   func(c *Config) { c.Estimate.PhaseCandidates = 0 },
			wantCode: CodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, CodeOf(err))
		})
	}
}
