// Package menu translates named configuration options into the command line
// of an external interactive selector (dmenu or a compatible fork) and runs
// one synchronous round-trip with it: candidate lines in on stdin, the
// user's selection out on stdout.
//
// The package has two halves: an insertion-ordered registry mapping option
// names to converter functions, and an invoker that builds the argv, spawns
// the tool and classifies the outcome.
package menu

import "errors"

// DefaultExecutable is the menu binary used when none is configured.
const DefaultExecutable = "dmenu"

// Registry owns the ordered mapping from option name to converter and
// default value. Order determines argv token ordering and is fixed at first
// registration: re-registering a name replaces its converter in place, a new
// name appends at the end. Last registration wins; duplicates are not an
// error.
type Registry struct {
	names    []string
	convert  map[string]Converter
	defaults map[string]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		convert:  make(map[string]Converter),
		defaults: make(map[string]any),
	}
}

// DefaultRegistry returns a registry pre-populated with the standard dmenu
// options followed by the extensions found in common forks (dmenu2). The
// registration order here is the argv order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("dmenu", Executable(DefaultExecutable), nil)
	r.Register("bottom", Flag("-b"), nil)
	r.Register("grab", Flag("-f"), nil)
	r.Register("insensitive", Flag("-i"), nil)
	r.Register("lines", IntFlag("-l"), nil)
	r.Register("monitor", IntFlag("-m"), nil)
	r.Register("prompt", StringFlag("-p"), nil)
	r.Register("font", StringFlag("-fn"), nil)
	r.Register("normal_bg_color", StringFlag("-nb"), nil)
	r.Register("normal_fg_color", StringFlag("-nf"), nil)
	r.Register("selected_bg_color", StringFlag("-sb"), nil)
	r.Register("selected_fg_color", StringFlag("-sf"), nil)
	r.Register("windowid", StringFlag("-w"), nil)
	// Non-standard options supported by dmenu2 and friends.
	r.Register("filter", Flag("-r"), nil)
	r.Register("fuzzy", Flag("-z"), nil)
	r.Register("token", Flag("-t"), nil)
	r.Register("mask", Flag("-mask"), nil)
	r.Register("screen", IntFlag("-s"), nil)
	r.Register("window_name", StringFlag("-name"), nil)
	r.Register("window_class", StringFlag("-class"), nil)
	r.Register("opacity", FloatFlag("-o"), nil)
	r.Register("dim", FloatFlag("-dim"), nil)
	r.Register("dim_color", StringFlag("-dc"), nil)
	r.Register("height", IntFlag("-h"), nil)
	r.Register("xoffset", IntFlag("-x"), nil)
	r.Register("yoffset", IntFlag("-y"), nil)
	r.Register("width", IntFlag("-w"), nil)
	return r
}

// Register adds or replaces an option. Replacing keeps the option's position
// in the argv order; a new option is appended at the end. This is the sole
// extension surface for wrapping flags of menu forks this package does not
// know about.
func (r *Registry) Register(name string, conv Converter, def any) {
	if _, exists := r.convert[name]; !exists {
		r.names = append(r.names, name)
	}
	r.convert[name] = conv
	r.defaults[name] = def
}

// Names returns the option names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Has reports whether the named option is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.convert[name]
	return ok
}

// Default returns the registered default value for the named option.
func (r *Registry) Default(name string) any {
	return r.defaults[name]
}

// BuildCmd produces the full command token sequence for the given
// configuration: for every registered option, in registration order, the
// converter output for the configured value (or the option's default when
// the name is absent from config). Conversion failures surface as a
// ConvertError naming the offending option; no process is spawned.
func (r *Registry) BuildCmd(config map[string]any) ([]string, error) {
	var cmd []string
	for _, name := range r.names {
		value, ok := config[name]
		if !ok {
			value = r.defaults[name]
		}
		tokens, err := r.convert[name](value)
		if err != nil {
			var convErr *ConvertError
			if errors.As(err, &convErr) && convErr.Option == "" {
				convErr.Option = name
			}
			return nil, err
		}
		cmd = append(cmd, tokens...)
	}
	return cmd, nil
}
