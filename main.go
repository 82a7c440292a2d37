package main

import (
	"context"
	"os"
	"strings"

	"github.com/atomicstack/gallery-tui/internal/cmd"
	"github.com/atomicstack/gallery-tui/internal/config"
	"github.com/atomicstack/gallery-tui/internal/logging"
	"github.com/atomicstack/gallery-tui/internal/logging/events"
	"github.com/charmbracelet/fang"
	"golang.org/x/term"
)

const version = "0.3.0"

func main() {
	root := cmd.NewRootCmd(traceStartup)
	err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	)
	events.App.Exit(err)
	if err != nil {
		logging.Error(err)
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"version": version,
		"argv":    cfg.Args,
		"flags":   flags,
		"config":  cfg,
		"backend": cfg.App.BackendURL,
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Term     string           `json:"term,omitempty"`
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails records which standard streams are terminals. The first
// one with a readable size is reported as the detected viewport.
func collectTTYDetails() ttyDetails {
	details := ttyDetails{Term: os.Getenv("TERM")}
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		probe := probeTTY(f)
		if details.Detected == nil && probe.Width > 0 {
			details.Detected = &ttyDetected{Source: probe.Name, Width: probe.Width, Height: probe.Height}
		}
		details.Probes = append(details.Probes, probe)
	}
	return details
}

func probeTTY(f *os.File) ttyProbeResult {
	probe := ttyProbeResult{Name: strings.TrimPrefix(f.Name(), "/dev/")}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return probe
	}
	probe.IsTerminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	probe.Width, probe.Height = width, height
	return probe
}
