package menu

import (
	"context"
)

// ProcRunner executes one command with the given input lines on stdin and
// returns the selected output lines. The default runner spawns a real
// subprocess; tests inject their own.
type ProcRunner func(ctx context.Context, cmd []string, input []string) ([]string, error)

// Menu is an extensible wrapper around an external selector process. It
// holds a registry of options, a base configuration, and the process runner
// used to execute the tool. The zero value is not usable; construct with
// New or NewWithRunner.
type Menu struct {
	registry *Registry
	base     map[string]any
	runProc  ProcRunner
}

// New creates a Menu with the default option registry and the real
// subprocess runner.
func New() *Menu {
	return NewWithRunner(nil)
}

// NewWithRunner creates a Menu with the default option registry and the
// given process runner. Passing nil selects the real subprocess runner.
func NewWithRunner(runner ProcRunner) *Menu {
	if runner == nil {
		runner = runMenuProc
	}
	return &Menu{
		registry: DefaultRegistry(),
		base:     make(map[string]any),
		runProc:  runner,
	}
}

// Registry returns the menu's option registry.
func (m *Menu) Registry() *Registry {
	return m.registry
}

// Set stores a base configuration value for the named option. Per-call
// overrides passed to Run or BuildCmd win over base values.
func (m *Menu) Set(name string, value any) {
	m.base[name] = value
}

// AddOption registers a new named option (or replaces an existing one) and
// records its default configured value. This is the plugin surface for
// flags of menu forks the default registry does not cover.
func (m *Menu) AddOption(name string, conv Converter, def any) {
	m.registry.Register(name, conv, def)
}

// BuildCmd assembles the full command token sequence from the base
// configuration with overrides applied on top. The first token is the
// executable. The result is built fresh on every call and never cached.
func (m *Menu) BuildCmd(overrides map[string]any) ([]string, error) {
	config := make(map[string]any, len(m.base)+len(overrides))
	for name, value := range m.base {
		config[name] = value
	}
	for name, value := range overrides {
		config[name] = value
	}
	return m.registry.BuildCmd(config)
}

// Run performs one round-trip with the external selector: build the command,
// spawn it, write the choices newline-joined to its stdin, and return the
// line(s) the user picked. An escaped menu (no selection) yields an empty
// slice. Failures surface as ConvertError, LaunchError or UsageError; no
// retry is ever attempted.
func (m *Menu) Run(ctx context.Context, choices []string, overrides map[string]any) ([]string, error) {
	cmd, err := m.BuildCmd(overrides)
	if err != nil {
		return nil, err
	}
	return m.runProc(ctx, cmd, choices)
}

// Version runs the selector with a single -v flag, bypassing option
// building, and returns the first line of its output. exe overrides the
// configured executable; pass "" to use the configured or default one.
func (m *Menu) Version(ctx context.Context, exe string) (string, error) {
	if exe == "" {
		exe = m.executable()
	}
	lines, err := m.runProc(ctx, []string{exe, "-v"}, nil)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}
	return lines[0], nil
}

// executable resolves the menu binary name from the base configuration,
// falling back to the registry default.
func (m *Menu) executable() string {
	if v, ok := m.base["dmenu"]; ok && truthy(v) {
		return stringify(v)
	}
	if v := m.registry.Default("dmenu"); truthy(v) {
		return stringify(v)
	}
	return DefaultExecutable
}
