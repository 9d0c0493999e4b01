package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/xmenu/internal/config"
	"github.com/harrison/xmenu/internal/history"
	"github.com/harrison/xmenu/internal/logger"
	"github.com/harrison/xmenu/internal/menu"
	"github.com/harrison/xmenu/internal/source"
)

// NewPickCommand creates the pick command
func NewPickCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Run the menu and print the selection",
		Long: `Run the external selector over a set of candidate lines and print the
line(s) the user picked, one per line.

Candidates are read from stdin unless --from-markdown is given, in which
case the headings and list items of the document become the candidates.

Examples:
  ls | xmenu pick --prompt "open: "
  xmenu pick --from-markdown notes.md --lines 20
  cut -d: -f1 /etc/passwd | xmenu pick --insensitive --bottom
  printf 'yes\nno' | xmenu pick --menu rofi`,
		Args: cobra.NoArgs,
		RunE: runPick,
	}

	cmd.Flags().String("config", "", "Path to config file (default: ~/.config/xmenu/xmenu.yaml)")
	cmd.Flags().Bool("verbose", false, "Show the assembled command and history activity")
	cmd.Flags().String("from-markdown", "", "Read candidates from a markdown file instead of stdin")
	cmd.Flags().Bool("no-history", false, "Neither rank by nor record to the selection history")

	// Menu tool options; unset flags fall back to the config file.
	cmd.Flags().String("menu", "", "Menu executable to invoke")
	cmd.Flags().Bool("bottom", false, "Menu appears at the bottom of the screen")
	cmd.Flags().Bool("grab", false, "Menu grabs the keyboard before reading stdin")
	cmd.Flags().Bool("insensitive", false, "Match items case insensitively")
	cmd.Flags().Bool("filter", false, "Filter mode (dmenu2)")
	cmd.Flags().Bool("fuzzy", false, "Fuzzy matching (dmenu2)")
	cmd.Flags().Bool("token", false, "Token matching (dmenu2)")
	cmd.Flags().Bool("mask", false, "Mask typed input (dmenu2)")
	cmd.Flags().Int("lines", 0, "List items vertically with the given number of lines")
	cmd.Flags().Int("monitor", 0, "Monitor to display the menu on, counted from 0")
	cmd.Flags().Int("screen", 0, "Screen to display the menu on (dmenu2)")
	cmd.Flags().Int("height", 0, "Menu line height in pixels (dmenu2)")
	cmd.Flags().Int("x-offset", 0, "Horizontal offset in pixels (dmenu2)")
	cmd.Flags().Int("y-offset", 0, "Vertical offset in pixels (dmenu2)")
	cmd.Flags().Int("width", 0, "Menu width in pixels (dmenu2)")
	cmd.Flags().String("prompt", "", "Prompt displayed left of the input field")
	cmd.Flags().String("font", "", "Font or font set to use")
	cmd.Flags().String("normal-bg", "", "Normal background color")
	cmd.Flags().String("normal-fg", "", "Normal foreground color")
	cmd.Flags().String("selected-bg", "", "Selected background color")
	cmd.Flags().String("selected-fg", "", "Selected foreground color")
	cmd.Flags().String("window-id", "", "Window id to embed into")
	cmd.Flags().String("window-name", "", "Menu window name (dmenu2)")
	cmd.Flags().String("window-class", "", "Menu window class (dmenu2)")
	cmd.Flags().String("dim-color", "", "Dim color (dmenu2)")
	cmd.Flags().Float64("opacity", 0, "Menu opacity (dmenu2)")
	cmd.Flags().Float64("dim", 0, "Dim opacity of unfocused screen area (dmenu2)")

	return cmd
}

// flagOptions maps pick flag names onto registry option names. Only changed
// flags become overrides, so config file values survive unless the user says
// otherwise.
var flagOptions = map[string]string{
	"menu":         "dmenu",
	"bottom":       "bottom",
	"grab":         "grab",
	"insensitive":  "insensitive",
	"filter":       "filter",
	"fuzzy":        "fuzzy",
	"token":        "token",
	"mask":         "mask",
	"lines":        "lines",
	"monitor":      "monitor",
	"screen":       "screen",
	"height":       "height",
	"x-offset":     "xoffset",
	"y-offset":     "yoffset",
	"width":        "width",
	"prompt":       "prompt",
	"font":         "font",
	"normal-bg":    "normal_bg_color",
	"normal-fg":    "normal_fg_color",
	"selected-bg":  "selected_bg_color",
	"selected-fg":  "selected_fg_color",
	"window-id":    "windowid",
	"window-name":  "window_name",
	"window-class": "window_class",
	"dim-color":    "dim_color",
	"opacity":      "opacity",
	"dim":          "dim",
}

// collectOverrides turns every changed menu flag into a per-call override.
func collectOverrides(cmd *cobra.Command) (map[string]any, error) {
	overrides := make(map[string]any)
	for flagName, option := range flagOptions {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil || !flag.Changed {
			continue
		}
		switch flag.Value.Type() {
		case "bool":
			v, err := cmd.Flags().GetBool(flagName)
			if err != nil {
				return nil, err
			}
			overrides[option] = v
		case "int":
			v, err := cmd.Flags().GetInt(flagName)
			if err != nil {
				return nil, err
			}
			overrides[option] = v
		case "float64":
			v, err := cmd.Flags().GetFloat64(flagName)
			if err != nil {
				return nil, err
			}
			overrides[option] = v
		default:
			v, err := cmd.Flags().GetString(flagName)
			if err != nil {
				return nil, err
			}
			overrides[option] = v
		}
	}
	return overrides, nil
}

// readCandidates loads the candidate lines from the markdown file when given,
// or from the command's stdin otherwise.
func readCandidates(markdownPath string, stdin io.Reader) ([]string, error) {
	if markdownPath == "" {
		return source.Lines(stdin)
	}

	f, err := os.Open(markdownPath)
	if err != nil {
		return nil, fmt.Errorf("open markdown file: %w", err)
	}
	defer f.Close()

	candidates, err := source.Markdown(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", markdownPath, err)
	}
	return candidates, nil
}

// runPick implements the pick command logic
func runPick(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logLevel = "debug"
	}
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)

	markdownPath, _ := cmd.Flags().GetString("from-markdown")
	candidates, err := readCandidates(markdownPath, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no candidates to choose from")
	}

	overrides, err := collectOverrides(cmd)
	if err != nil {
		return err
	}

	m := menu.New()
	for name, value := range cfg.Values() {
		m.Set(name, value)
	}

	// The prompt scopes history: "run: " and "open: " menus rank separately.
	prompt := cfg.Menu.Prompt
	if p, ok := overrides["prompt"].(string); ok {
		prompt = p
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	var store *history.Store
	if cfg.History.Enabled && !noHistory {
		store, err = history.Open(cfg.HistoryDBPath())
		if err != nil {
			// History is a convenience; a broken database must not keep the
			// menu from showing.
			log.LogWarn(fmt.Sprintf("history disabled: %v", err))
		} else {
			defer store.Close()
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if store != nil {
		frequent, err := store.Frequent(ctx, prompt, cfg.History.Limit)
		if err != nil {
			log.LogWarn(fmt.Sprintf("history ranking skipped: %v", err))
		} else if len(frequent) > 0 {
			candidates = history.Rank(candidates, frequent)
			log.LogDebug(fmt.Sprintf("ranked %d candidate(s) by history", len(frequent)))
		}
	}

	if argv, err := m.BuildCmd(overrides); err == nil {
		log.LogCommand(argv)
	}

	selection, err := m.Run(ctx, candidates, overrides)
	if err != nil {
		return err
	}

	if store != nil {
		for _, choice := range selection {
			if err := store.Record(ctx, prompt, choice); err != nil {
				log.LogWarn(fmt.Sprintf("failed to record selection: %v", err))
				break
			}
		}
		if deleted, err := store.Prune(ctx, cfg.History.KeepDays); err == nil && deleted > 0 {
			log.LogDebug(fmt.Sprintf("pruned %d old selection(s)", deleted))
		}
	}

	if len(selection) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(selection, "\n"))
	}
	return nil
}
