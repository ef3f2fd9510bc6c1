package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"

	"linkvet/internal/config"
	"linkvet/internal/extract"
	"linkvet/internal/probe"
	"linkvet/internal/report"
	"linkvet/internal/rules"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cfg.Close()

	// Handle interrupt signals for graceful shutdown: in-flight requests are
	// abandoned and partial results discarded.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cfg.Logger.Info("shutting down gracefully...")
		cancel()
	}()

	var out io.Writer = os.Stdout
	var outFile *os.File
	if cfg.OutputFile != "" {
		outFile, err = os.Create(cfg.OutputFile)
		if err != nil {
			cfg.Logger.Error("failed to create output file", "file", cfg.OutputFile, "error", err)
			os.Exit(1)
		}
		out = outFile
	}

	code := run(ctx, cfg, out)

	if outFile != nil {
		outFile.Close()
	}
	os.Exit(code)
}

// run executes one full check and returns the process exit code.
func run(ctx context.Context, cfg *config.Config, out io.Writer) int {
	ruleset, err := rules.Load(cfg.RulesFile)
	if err != nil {
		cfg.Logger.Error("failed to load rules dataset", "error", err)
		return 1
	}

	urls, invalid := extract.SourceURLs(ruleset)
	cfg.Logger.Info("extracted evidence URLs",
		"rules", len(ruleset.Rules),
		"valid", len(urls),
		"invalid", len(invalid),
	)

	reporter := report.New(out, cfg.JSONOutput)
	for _, d := range invalid {
		reporter.Invalid(d)
	}

	client := probe.NewClient(cfg)
	defer client.Close()

	progress, cleanup := statusBar(cfg, len(urls))
	outcomes := client.CheckAll(ctx, urls, progress)
	cleanup()

	if ctx.Err() != nil {
		cfg.Logger.Error("cancelled before all URLs were checked")
		return 1
	}

	for _, o := range outcomes {
		reporter.Outcome(o)
	}
	reporter.Summary()

	cfg.Logger.Info("check completed",
		"checked", reporter.OK()+reporter.Broken(),
		"ok", reporter.OK(),
		"broken", reporter.Broken(),
	)

	return reporter.ExitCode()
}

// statusBar returns a progress callback drawing a persistent status line at
// the bottom of the terminal, plus a cleanup function restoring the scroll
// region. Both are no-ops when stderr is not a terminal.
func statusBar(cfg *config.Config, total int) (func(int, string), func()) {
	if cfg.Silent || total == 0 || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil, func() {}
	}
	_, termHeight, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || termHeight <= 0 {
		return nil, func() {}
	}

	// Set scroll region to exclude the bottom line
	fmt.Fprintf(os.Stderr, "\033[1;%dr", termHeight-1)
	fmt.Fprintf(os.Stderr, "\033[1;1H")
	fmt.Fprintf(os.Stderr, "\033[s\033[%d;1H\033[K[0/%d] Starting...\033[u", termHeight, total)

	// Workers report progress concurrently; serialize the escape sequences.
	var mu sync.Mutex
	progress := func(completed int, probeURL string) {
		mu.Lock()
		defer mu.Unlock()
		displayURL := probeURL
		maxURLLen := 70
		if len(displayURL) > maxURLLen {
			displayURL = displayURL[:maxURLLen-3] + "..."
		}
		fmt.Fprintf(os.Stderr, "\033[s\033[%d;1H\033[K[%d/%d] %s\033[u", termHeight, completed, total, displayURL)
	}

	cleanup := func() {
		fmt.Fprintf(os.Stderr, "\033[r")
		fmt.Fprintf(os.Stderr, "\033[%d;1H\033[K", termHeight)
		fmt.Fprintf(os.Stderr, "\033[%d;1H", termHeight-1)
	}

	return progress, cleanup
}
