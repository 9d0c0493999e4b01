package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCmdDefaults(t *testing.T) {
	r := DefaultRegistry()

	// With nothing configured the command is just the executable.
	cmd, err := r.BuildCmd(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, []string{"dmenu"}, cmd)
}

func TestBuildCmdScenarios(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name   string
		config map[string]any
		want   []string
	}{
		{
			name:   "bottom flag",
			config: map[string]any{"bottom": true},
			want:   []string{"dmenu", "-b"},
		},
		{
			name:   "lines and prompt",
			config: map[string]any{"lines": 2, "prompt": "-> "},
			want:   []string{"dmenu", "-l", "2", "-p", "-> "},
		},
		{
			name:   "alternate executable",
			config: map[string]any{"dmenu": "rofi", "insensitive": true},
			want:   []string{"rofi", "-i"},
		},
		{
			name: "tokens follow registration order, not config order",
			config: map[string]any{
				"prompt": ">",
				"bottom": true,
				"lines":  4,
			},
			want: []string{"dmenu", "-b", "-l", "4", "-p", ">"},
		},
		{
			name:   "float option",
			config: map[string]any{"opacity": 1},
			want:   []string{"dmenu", "-o", "1.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := r.BuildCmd(tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestBuildCmdConvertError(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.BuildCmd(map[string]any{"lines": "not castable"})
	require.Error(t, err)

	var convErr *ConvertError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "lines", convErr.Option)
	assert.Equal(t, "not castable", convErr.Value)
}

func TestRegisterAppendsNewNames(t *testing.T) {
	r := DefaultRegistry()
	before, err := r.BuildCmd(map[string]any{"bottom": true})
	require.NoError(t, err)

	r.Register("underline", IntFlag("-uh"), nil)

	// Existing options are untouched.
	cmd, err := r.BuildCmd(map[string]any{"bottom": true})
	require.NoError(t, err)
	assert.Equal(t, before, cmd)

	// The new option's tokens land at the end, after all built-in options.
	cmd, err = r.BuildCmd(map[string]any{"bottom": true, "underline": 3})
	require.NoError(t, err)
	assert.Equal(t, append(before, "-uh", "3"), cmd)
}

func TestRegisterReplaceKeepsPosition(t *testing.T) {
	r := DefaultRegistry()
	names := r.Names()

	// Replace an option in the middle of the table.
	r.Register("prompt", StringFlag("--prompt"), nil)
	assert.Equal(t, names, r.Names())

	cmd, err := r.BuildCmd(map[string]any{"prompt": ">", "font": "fixed"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dmenu", "--prompt", ">", "-fn", "fixed"}, cmd)
}

func TestRegisterDefaultValue(t *testing.T) {
	r := NewRegistry()
	r.Register("dmenu", Executable("mymenu"), nil)
	r.Register("wrap", Flag("-wrap"), true)

	cmd, err := r.BuildCmd(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, []string{"mymenu", "-wrap"}, cmd)

	// An explicit value beats the registered default.
	cmd, err = r.BuildCmd(map[string]any{"wrap": false})
	require.NoError(t, err)
	assert.Equal(t, []string{"mymenu"}, cmd)
}

func TestDefaultRegistryOrder(t *testing.T) {
	r := DefaultRegistry()
	names := r.Names()

	require.NotEmpty(t, names)
	assert.Equal(t, "dmenu", names[0])

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		assert.False(t, seen[name], "duplicate option %q", name)
		seen[name] = true
	}
}
