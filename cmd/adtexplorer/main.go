// Command adtexplorer is an interactive terminal browser for ADT blobs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/adtkit/internal/logger"
	"github.com/joshuapare/adtkit/pkg/adt"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := false
	watch := true

	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case "--debug", "-d":
			debugMode = true
		case "--no-watch":
			watch = false
		default:
			filteredArgs = append(filteredArgs, arg)
		}
	}

	if debugMode {
		l, f, err := logger.OpenFile(logger.FileOptions{Prefix: "adtexplorer", Level: slog.LevelDebug})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
		} else {
			logger.L = l
			defer f.Close()
		}
	}

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("adtexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	if err := run(filteredArgs[0], watch); err != nil {
		logger.L.Error("exit", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.L.Info("adtexplorer exited normally")
}

func run(path string, watch bool) error {
	logger.L.Info("starting adtexplorer", "path", path, "watch", watch)

	blob, err := adt.Load(path)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		NewModel(path, blob),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if watch {
		if err := watchFile(ctx, path, p.Send); err != nil {
			logger.L.Warn("file watch disabled", "error", err)
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: adtexplorer [options] <adt-file>\n")
	fmt.Fprintf(os.Stderr, "Try 'adtexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("adtexplorer - Interactive TUI for ADT device-tree blobs")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  adtexplorer [options] <adt-file>")
	fmt.Println()
	fmt.Println("  Split-pane view of the node tree and the selected node's properties.")
	fmt.Println("  The view reloads when the file changes on disk, e.g. after adtctl apply.")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Navigate up/down")
	fmt.Println("    →/l         Expand node")
	fmt.Println("    ←/h         Collapse node / Go to parent")
	fmt.Println("    Enter       Toggle node / Show property details")
	fmt.Println("    Tab         Switch between tree and property panes")
	fmt.Println("    /           Filter nodes by name")
	fmt.Println("    :           Go to path")
	fmt.Println("    c, y        Copy node path, copy property value")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to <user cache dir>/adtexplorer/logs/")
	fmt.Println("      --no-watch Do not reload when the file changes")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("For non-interactive operations, use the 'adtctl' command instead.")
}
