package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"prefdiff/internal/capture"
	"prefdiff/internal/command"
	"prefdiff/internal/config"
	"prefdiff/internal/diff"
	"prefdiff/internal/logger"
	"prefdiff/internal/tui"
	"prefdiff/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version information")
	scriptMode := flag.Bool("script", false, "Run without the TUI and print commands to stdout")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so console logging is script-mode only.
	log, err := logger.New(&cfg.Log, *scriptMode)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := capture.NewRunner(cfg.Capture.Tool)
	capturer := capture.NewCapturer(&cfg.Capture, runner, log)

	if *scriptMode {
		if err := runScript(ctx, capturer, os.Stdin, os.Stdout); err != nil {
			log.Error("Script run failed", zap.Error(err))
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	model := tui.NewModel(capturer, cfg.UI, log)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		log.Error("TUI exited with error", zap.Error(err))
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// runScript captures two snapshots around a keypress and prints one
// generated command per change, grouped under domain comment headers.
func runScript(ctx context.Context, capturer *capture.Capturer, in io.Reader, out io.Writer) error {
	_, _ = fmt.Fprintln(os.Stderr, "Capturing first snapshot...")
	before, err := capturer.Capture(ctx)
	if err != nil {
		return fmt.Errorf("first capture: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stderr, "Captured %d domains. Make your changes, then press Enter.\n",
		before.DomainCount())
	scanner := bufio.NewScanner(in)
	scanner.Scan()
	if err := ctx.Err(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(os.Stderr, "Capturing second snapshot...")
	after, err := capturer.Capture(ctx)
	if err != nil {
		return fmt.Errorf("second capture: %w", err)
	}

	result := diff.Detect(before, after)
	if result.TotalChanges == 0 {
		_, _ = fmt.Fprintln(out, "# no changes detected")
		return nil
	}

	for _, dd := range result.Diffs {
		_, _ = fmt.Fprintf(out, "# %s\n", dd.Domain)
		for _, c := range dd.Changes {
			_, _ = fmt.Fprintln(out, command.Generate(c))
		}
	}
	return nil
}
