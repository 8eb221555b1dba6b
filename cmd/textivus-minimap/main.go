package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cornish/textivus-minimap/config"
	"github.com/cornish/textivus-minimap/document"
	"github.com/cornish/textivus-minimap/logging"
	"github.com/cornish/textivus-minimap/ui"
	"github.com/cornish/textivus-minimap/viewer"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var filename, configPath string
	asciiMode := false
	forceBraille := false
	noWatch := false
	debug := false

	// Handle flags
	for _, arg := range args {
		switch arg {
		case "--version", "-v":
			fmt.Printf("textivus-minimap %s\n", version)
			return 0
		case "--help", "-h":
			printHelp()
			return 0
		case "--ascii":
			asciiMode = true
		case "--braille":
			forceBraille = true
		case "--no-watch":
			noWatch = true
		case "--debug":
			debug = true
		default:
			if path, ok := strings.CutPrefix(arg, "--config="); ok {
				configPath = path
			} else if filename == "" && !isFlag(arg) {
				filename = arg
			} else {
				fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
				return 2
			}
		}
	}
	if filename == "" {
		printHelp()
		return 2
	}

	// Detect terminal capabilities early
	term := config.DetectTerminal(os.Getenv)

	// Load configuration
	var cfg *config.Config
	var configErr error
	if configPath != "" {
		cfg, configErr = config.LoadFile(configPath)
	} else {
		cfg, configErr = config.Load()
	}

	// Command-line flags override config
	if asciiMode {
		t := true
		cfg.Editor.AsciiMode = &t
	}
	if forceBraille {
		cfg.Minimap.Graphics = "braille"
	}
	if noWatch {
		cfg.Editor.WatchFile = false
	}
	if debug {
		cfg.Log.Debug = true
	}

	display := term.Resolve(cfg)
	ui.UseTrueColor = display.TrueColor
	ui.UseASCII = display.Surface == config.SurfaceASCII

	logger, err := logging.New(cfg.Log.File, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		return 1
	}
	defer logger.Sync()

	doc, err := document.Open(filename, document.OptionsFromConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading file: %v\n", err)
		return 1
	}

	theme := cfg.Theme.GetResolved()
	logger.Info("starting",
		zap.String("file", filename),
		zap.String("encoding", doc.Encoding().Name),
		zap.Int("lines", doc.LineCount()),
		zap.Stringer("surface", display.Surface),
		zap.Bool("truecolor", display.TrueColor))

	v := viewer.New(cfg, doc, viewer.Options{
		Theme:    &theme,
		Keys:     config.LoadKeybindings(),
		Logger:   logger,
		UseKitty: display.Surface == config.SurfaceKitty,
	})

	// If config had parse errors, show them on startup
	var loadErr *config.ConfigLoadError
	if errors.As(configErr, &loadErr) {
		logger.Warn("config", zap.Error(loadErr))
		v.SetMessage("Config: "+loadErr.Error(), true)
	}

	ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), logger))
	defer cancel()
	if cfg.Editor.WatchFile {
		w, err := document.Watch(ctx, filename)
		if err != nil {
			logger.Warn("watch", zap.Error(err))
			v.SetMessage(err.Error(), true)
		} else {
			v.WatchChanges(w)
		}
	}

	// Create and run the Bubbletea program
	p := tea.NewProgram(v, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		return 1
	}
	return 0
}

func isFlag(s string) bool {
	return len(s) > 0 && s[0] == '-'
}

func printHelp() {
	fmt.Println("Textivus Minimap - A file viewer with a code minimap")
	fmt.Println()
	fmt.Println("Usage: textivus-minimap [options] file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help       Show this help message")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println("  --ascii          Use ASCII characters only")
	fmt.Println("  --braille        Draw the minimap with braille, not Kitty graphics")
	fmt.Println("  --no-watch       Do not reload when the file changes")
	fmt.Println("  --debug          Log debug messages (needs [log] file)")
	fmt.Println("  --config=PATH    Read configuration from PATH")
	fmt.Println()
	fmt.Println("Keyboard Shortcuts:")
	fmt.Println("  Up/Down, j/k     Scroll")
	fmt.Println("  PgUp/PgDn        Page")
	fmt.Println("  g/G              Start/end of file")
	fmt.Println("  Ctrl+F, /        Find")
	fmt.Println("  F3, n            Find next")
	fmt.Println("  Esc              Clear find")
	fmt.Println("  Ctrl+C, y        Copy line")
	fmt.Println("  Ctrl+T, m        Toggle minimap")
	fmt.Println("  Ctrl+B, b        Characters / blocks")
	fmt.Println("  Ctrl+S, s        Cycle minimap size")
	fmt.Println("  Ctrl+L           Minimap side")
	fmt.Println("  Ctrl+R           Reload file")
	fmt.Println("  Ctrl+Q, q        Quit")
	fmt.Println()
	fmt.Println("Mouse:")
	fmt.Println("  Click minimap    Jump to line")
	fmt.Println("  Drag slider      Scroll")
	fmt.Println("  Wheel            Scroll")
}
