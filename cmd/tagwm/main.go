package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tagwm/internal/config"
	"github.com/1broseidon/tagwm/internal/daemon"
	"github.com/1broseidon/tagwm/internal/hotkeys"
	"github.com/1broseidon/tagwm/internal/ipc"
	"github.com/1broseidon/tagwm/internal/keyboard"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
	"github.com/1broseidon/tagwm/internal/tui"
	"github.com/1broseidon/tagwm/internal/wm"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: tagwm run")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "run takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: tagwm run")
			os.Exit(2)
		}
		runWM()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "state":
		os.Exit(runState(os.Args[2:]))
	case "view":
		os.Exit(runView(os.Args[2:]))
	case "focus":
		os.Exit(runWindowCommand("focus", os.Args[2:], ipc.NewClient().FocusWindow))
	case "close":
		os.Exit(runWindowCommand("close", os.Args[2:], ipc.NewClient().CloseWindow))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "reload":
		os.Exit(runSimple("reload", "Reload the configuration of the running window manager.", os.Args[2:], ipc.NewClient().Reload))
	case "quit":
		os.Exit(runSimple("quit", "Stop the running window manager. Windows are left open.", os.Args[2:], ipc.NewClient().Quit))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
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
	fmt.Fprintln(w, "Usage: tagwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Start the window manager (foreground)")
	fmt.Fprintln(w, "  status              Show window manager status")
	fmt.Fprintln(w, "  state               Show screens, tags and windows")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  view <tag>          View a tag on a screen")
	fmt.Fprintln(w, "  focus <window>      Focus a window, viewing its tag")
	fmt.Fprintln(w, "  close <window>      Ask a window to close")
	fmt.Fprintln(w, "  layout list         List available layouts")
	fmt.Fprintln(w, "  layout set          Set the layout of a screen's viewed tag")
	fmt.Fprintln(w, "  reload              Reload configuration")
	fmt.Fprintln(w, "  quit                Stop the window manager")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive TUI")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'tagwm <command> --help' for command-specific options.")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func runWM() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := newLogger(cfg.LogLevel)
	logger.Info("configuration loaded", "tags", len(cfg.Tags), "layout", cfg.Layout.Default, "gap", cfg.GapSize)

	backend, err := platform.NewLinuxBackendFromDisplay(logger)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer backend.Close()

	if err := backend.BecomeWM("tagwm"); err != nil {
		log.Fatalf("Failed to become window manager: %v", err)
	}

	bindings, err := hotkeys.Build(cfg)
	if err != nil {
		log.Fatalf("Failed to build keybindings: %v", err)
	}
	kb := keyboard.New()
	kb.AppendKeybindings(bindings...)

	w, err := wm.New(backend, wm.Options{
		Config:   cfg,
		Keyboard: kb,
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("Failed to create window manager: %v", err)
	}

	ipcServer, err := ipc.NewServer(w, logger)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.SweepInterval > 0 {
		sweeper := daemon.NewSweeper(daemon.SweeperConfig{
			Interval: time.Duration(cfg.SweepInterval) * time.Second,
			Logger:   logger,
		}, w)
		go sweeper.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					logger.Info("received SIGHUP, reloading config")
					newCfg, err := config.Load()
					if err != nil {
						logger.Error("config reload failed", "error", err)
						continue
					}
					reloadCtx, reloadCancel := context.WithTimeout(ctx, 5*time.Second)
					if err := w.Reload(reloadCtx, newCfg); err != nil {
						logger.Error("config reload failed", "error", err)
					}
					reloadCancel()
				case os.Interrupt, syscall.SIGTERM:
					logger.Info("shutting down tagwm")
					cancel()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := w.Run(ctx); err != nil {
		logger.Error("window manager exited", "error", err)
		ipcServer.Stop()
		backend.Close()
		os.Exit(1)
	}
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tagwm status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show window manager status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("running:        %v\n", status.Running)
	fmt.Printf("focused_screen: %d\n", status.FocusedScreen)
	fmt.Printf("screen_count:   %d\n", status.ScreenCount)
	fmt.Printf("client_count:   %d\n", status.ClientCount)
	fmt.Printf("viewed_tag:     %s\n", status.ViewedTag)
	fmt.Printf("active_layout:  %s\n", status.ActiveLayout)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runState(args []string) int {
	fs := flag.NewFlagSet("state", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print the raw state as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tagwm state [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show every screen, tag and managed window.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	state, err := ipc.NewClient().GetState()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON {
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	printState(os.Stdout, state, terminalWidth())
	return 0
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

func printState(w io.Writer, state *wm.State, width int) {
	clip := func(s string) string {
		if width > 0 && len(s) > width {
			return s[:width]
		}
		return s
	}
	for _, scr := range state.Screens {
		marker := ""
		if scr.Index == state.FocusedScreen {
			marker = " (focused)"
		}
		fmt.Fprintf(w, "screen %d %s %dx%d+%d+%d%s\n", scr.Index, scr.Name,
			scr.Bounds.Width, scr.Bounds.Height, scr.Bounds.X, scr.Bounds.Y, marker)
		for _, tag := range scr.Tags {
			if !tag.Viewed && len(tag.Clients) == 0 {
				continue
			}
			viewed := ""
			if tag.Viewed {
				viewed = " *"
			}
			fmt.Fprintf(w, "  tag %d %q [%s]%s\n", tag.Index, tag.Name, tag.Layout, viewed)
			for _, c := range tag.Clients {
				var flags []string
				if c.Focused {
					flags = append(flags, "focused")
				}
				if c.Floating {
					flags = append(flags, "floating")
				}
				if c.Fullscreen {
					flags = append(flags, "fullscreen")
				}
				line := fmt.Sprintf("    0x%08x %-16s %dx%d+%d+%d %s %s", c.Window, c.Class,
					c.Geometry.Width, c.Geometry.Height, c.Geometry.X, c.Geometry.Y,
					strings.Join(flags, ","), c.Name)
				fmt.Fprintln(w, clip(strings.TrimRight(line, " ")))
			}
		}
	}
}

func runView(args []string) int {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	screen := fs.Int("screen", -1, "Screen index (default: focused screen)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tagwm view [--screen N] <tag>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "View a tag. Tags are numbered from 1.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	tag, err := strconv.Atoi(fs.Arg(0))
	if err != nil || tag < 1 {
		fmt.Fprintf(os.Stderr, "invalid tag %q\n", fs.Arg(0))
		return 2
	}

	client := ipc.NewClient()
	idx, err := resolveScreen(client, *screen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := client.ViewTag(idx, tag-1); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// resolveScreen maps -1 to the focused screen.
func resolveScreen(client *ipc.Client, screen int) (int, error) {
	if screen >= 0 {
		return screen, nil
	}
	status, err := client.GetStatus()
	if err != nil {
		return 0, err
	}
	return status.FocusedScreen, nil
}

func parseWindowID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	return uint32(id), nil
}

func runWindowCommand(name string, args []string, fn func(uint32) error) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintf(os.Stdout, "Usage: tagwm %s <window>\n", name)
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Window ids are decimal or 0x-prefixed hex, as printed by 'tagwm state'.")
		return 0
	}
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: tagwm %s <window>\n", name)
		return 2
	}
	id, err := parseWindowID(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := fn(id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runSimple(name, desc string, args []string, fn func() error) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintf(os.Stdout, "Usage: tagwm %s\n\n%s\n", name, desc)
		return 0
	}
	if len(args) != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		return 2
	}
	if err := fn(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printLayoutUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tagwm layout list")
	fmt.Fprintln(w, "  tagwm layout set [--screen N] <layout>")
}

func runLayout(args []string) int {
	if len(args) == 0 {
		printLayoutUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "list":
		for _, name := range tiling.Names() {
			fmt.Println(name)
		}
		return 0

	case "set":
		fs := flag.NewFlagSet("set", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		screen := fs.Int("screen", -1, "Screen index (default: focused screen)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			printLayoutUsage(os.Stderr)
			return 2
		}
		name := fs.Arg(0)
		if _, err := tiling.Lookup(name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}

		client := ipc.NewClient()
		idx, err := resolveScreen(client, *screen)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := client.SetLayout(idx, name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "help", "-h", "--help":
		printLayoutUsage(os.Stdout)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown layout subcommand: %s\n", args[0])
		printLayoutUsage(os.Stderr)
		return 2
	}
}

func loadConfigResult(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  tagwm config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  tagwm config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/tagwm/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		res, err := loadConfigResult(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if _, err := hotkeys.Build(res.Config); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/tagwm/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfigResult(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			for _, f := range res.Files {
				fmt.Printf("# loaded: %s\n", f)
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: tagwm tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Live view of screens, tags and windows of the running window manager.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  Tab/Shift+Tab  Switch screen")
		fmt.Fprintln(os.Stderr, "  j/k, ↑/↓       Select window")
		fmt.Fprintln(os.Stderr, "  1-9            View tag")
		fmt.Fprintln(os.Stderr, "  Enter          Focus selected window")
		fmt.Fprintln(os.Stderr, "  x              Close selected window")
		fmt.Fprintln(os.Stderr, "  l              Cycle layout of the viewed tag")
		fmt.Fprintln(os.Stderr, "  r              Reload config")
		fmt.Fprintln(os.Stderr, "  s              Edit settings, save and reload")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C      Quit")
		return 0
	}
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "tui takes no arguments")
		return 2
	}

	if err := tui.Run(ipc.NewClient()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
