package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Evaluator: EvaluatorConfig{
			Unknown:           "x",
			SignificantDigits: 4,
			VerifyRoots:       false,
		},
		Display: DisplayConfig{
			Format:      "text",
			Color:       true,
			Placeholder: "The solution will appear here",
			DefaultType: "linear",
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name: "valid config file with custom values",
			configContent: `evaluator:
  unknown: t
  significant_digits: 6
  verify_roots: true
display:
  format: yaml
  color: false
  placeholder: Type an equation
  default_type: quadratic
`,
			want: func() *Config {
				return &Config{
					Evaluator: EvaluatorConfig{Unknown: "t", SignificantDigits: 6, VerifyRoots: true},
					Display:   DisplayConfig{Format: "yaml", Color: false, Placeholder: "Type an equation", DefaultType: "quadratic"},
				}
			},
		},
		{
			name: "partial config keeps defaults",
			configContent: `display:
  format: json
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Display.Format = "json"
				return cfg
			},
		},
		{
			name:          "environment overrides the file",
			configContent: "evaluator:\n  significant_digits: 6\n",
			env: map[string]string{
				"GOSOLVE_EVALUATOR_SIGNIFICANT_DIGITS": "8",
				"GOSOLVE_DISPLAY_COLOR":                "false",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Evaluator.SignificantDigits = 8
				cfg.Display.Color = false
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `evaluator:
  unknown: x
  invalid yaml format here [[[
`,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name:              "significant digits out of range",
			configContent:     "evaluator:\n  significant_digits: 40\n",
			wantErrorContains: []string{"invalid configuration", "significant_digits must be 15 or less"},
		},
		{
			name:              "unknown must be an identifier",
			configContent:     "evaluator:\n  unknown: 2x\n",
			wantErrorContains: []string{"evaluator.unknown must be a single identifier"},
		},
		{
			name:              "unsupported output format",
			configContent:     "display:\n  format: xml\n",
			wantErrorContains: []string{"format must be one of [text json yaml]"},
		},
		{
			name:              "unsupported default type",
			configContent:     "display:\n  default_type: cubic\n",
			wantErrorContains: []string{"default_type must be one of [linear quadratic]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			configFile := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.configContent), 0o644))

			loader, err := NewConfigLoader(configFile)
			require.NoError(t, err)
			got, err := loader.Load()
			if len(tt.wantErrorContains) > 0 {
				require.Error(t, err)
				for _, want := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), want)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestConfigLoader_Load_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	loader, err := NewConfigLoader("")
	require.NoError(t, err)
	got, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), got)
}

func TestIsIdentifier(t *testing.T) {
	validate, _, err := newValidator()
	require.NoError(t, err)

	for _, name := range []string{"x", "t", "x1", "_y", "alpha"} {
		assert.NoError(t, validate.Var(name, "identifier"), name)
	}
	for _, name := range []string{"", "2x", "x y", "x-1", "sqrt"} {
		assert.Error(t, validate.Var(name, "identifier"), name)
	}
}
