package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/display"
	"github.com/1broseidon/tilewm/internal/logging"
	"github.com/1broseidon/tilewm/internal/model"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/workspace"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "screens":
		os.Exit(runScreens(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tilewm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Manage the display and stream window events (foreground)")
	fmt.Fprintln(w, "  screens             Show live monitors and configured workspace screens")
	fmt.Fprintln(w, "  windows             Show existing windows and whether they would be managed")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'tilewm <command> --help' for command-specific options.")
}

// loadConfig loads path, or the default location when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// newLogger honours a --log-level override, falling back to the config.
func newLogger(cfg *config.Config, override string) (*slog.Logger, error) {
	levelName := cfg.LogLevel
	if override != "" {
		levelName = override
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	return logging.NewStderr(level), nil
}

// connect opens the display named in the config.
func connect(cfg *config.Config) (*platform.LinuxBackend, error) {
	if err := cfg.ApplyEnvironment(); err != nil {
		return nil, err
	}
	return platform.NewLinuxBackendFromDisplay(cfg.Display)
}

func runScreens(args []string) int {
	fs := flag.NewFlagSet("screens", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm screens [--config PATH] [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List live monitors and the screens configured workspaces resolve to.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	path := fs.String("config", "", "Config file path (default: ~/.config/tilewm/config.yaml)")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "screens takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	backend, err := connect(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Disconnect()

	logger, err := newLogger(cfg, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	report, err := collectScreens(backend, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	monitors, live, configured := report.Monitors, report.Live, report.Configured

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	} else {
		fmt.Println("monitors:")
		for _, m := range monitors {
			primary := ""
			if m.Primary {
				primary = " (primary)"
			}
			fmt.Printf("  %s %dx%d+%d+%d%s\n", m.Name, m.WidthPx, m.HeightPx, m.X, m.Y, primary)
		}
		fmt.Println("live:")
		for i, s := range live {
			printScreen(i, s)
		}
		fmt.Println("configured:")
		for i, s := range configured {
			printScreen(i, s)
		}
	}

	if report.Errors != "" {
		fmt.Fprintln(os.Stderr, report.Errors)
		return 1
	}
	return 0
}

// screensReport is the output of the screens command.
type screensReport struct {
	Monitors   []model.Monitor `json:"monitors"`
	Live       []model.Screen  `json:"live"`
	Configured []model.Screen  `json:"configured"`
	Errors     string          `json:"errors,omitempty"`
}

// collectScreens gathers monitors, bootstrap screens and configured
// workspace screens. A failed monitor query leaves the monitor list empty;
// display.Screens has already logged it and fallen back to the root window.
func collectScreens(backend platform.Backend, cfg *config.Config, logger *slog.Logger) (screensReport, error) {
	live, err := display.Screens(backend, logger)
	if err != nil {
		return screensReport{}, err
	}
	monitors, err := backend.Monitors()
	if err != nil {
		monitors = nil
	}
	report := screensReport{Monitors: monitors, Live: live}

	var resolveErr error
	report.Configured, resolveErr = workspace.ResolveAll(cfg.Workspaces, backend)
	if resolveErr != nil {
		report.Errors = resolveErr.Error()
	}
	return report, nil
}

func printScreen(i int, s model.Screen) {
	b := s.BBox
	line := fmt.Sprintf("  [%d] %dx%d+%d+%d root=%s", i, b.Width, b.Height, b.X, b.Y, s.Root)
	if s.WorkspaceID != nil {
		line += fmt.Sprintf(" workspace=%d", *s.WorkspaceID)
	}
	if s.MaxWindowWidth != nil {
		line += fmt.Sprintf(" max_window_width=%s", s.MaxWindowWidth)
	}
	fmt.Println(line)
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm windows [--config PATH] [--json] [--all]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Classify existing top-level windows. Safe to run under another window manager.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	path := fs.String("config", "", "Config file path (default: ~/.config/tilewm/config.yaml)")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	all := fs.Bool("all", false, "Include windows that would not be managed")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	backend, err := connect(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Disconnect()

	reports, err := display.Survey(backend)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !*all {
		kept := reports[:0]
		for _, r := range reports {
			if r.Managed {
				kept = append(kept, r)
			}
		}
		reports = kept
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	for _, r := range reports {
		if r.Error != "" {
			fmt.Printf("0x%08x  error: %s\n", uint32(r.ID), r.Error)
			continue
		}
		fmt.Printf("0x%08x  %-24s %-10s %s\n", uint32(r.ID), r.Decision, r.MapState, r.Name)
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  tilewm config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  tilewm config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/tilewm/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/tilewm/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			var err error
			cfg, err = loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}
