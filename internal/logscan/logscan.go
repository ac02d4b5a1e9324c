package logscan

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/IgorBayerl/logscan/internal/filereader"
	"github.com/IgorBayerl/logscan/internal/filesystem"
	"github.com/IgorBayerl/logscan/internal/reporter"
	"github.com/IgorBayerl/logscan/internal/scanconfig"
	"github.com/IgorBayerl/logscan/internal/scanner"
)

// Result summarizes a completed scan.
type Result struct {
	Path     string
	Lines    int
	Matches  int
	Duration time.Duration
}

// Run loads the configured file, scans it and reports each match as soon
// as it is found. Matches already reported stay written if a later step
// fails. When nothing matched, the reporter's no-match message is written.
func Run(cfg scanconfig.IScanConfiguration, fsys filesystem.Filesystem, rep reporter.Reporter) (Result, error) {
	start := time.Now()
	path := cfg.FilePath()
	if abs, err := fsys.Abs(path); err == nil {
		slog.Debug("Resolved log file", "path", path, "abs", abs)
	}

	info, err := fsys.Stat(path)
	if err != nil {
		return Result{}, err
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("%s is a directory", path)
	}

	lines, err := filereader.ReadLinesInFile(fsys, path, cfg.Encoding())
	if err != nil {
		return Result{}, err
	}
	slog.Info("Scanning log", "path", path, "encoding", cfg.Encoding(), "lines", len(lines), "patterns", cfg.Patterns())

	s := scanner.New(scanner.NewMatcher(cfg.Patterns()), cfg.ContextRadius())
	found, err := s.Scan(lines, func(m scanner.Match) error {
		slog.Debug("Match", "line", m.Line, "start", m.Window.Start, "end", m.Window.End)
		return rep.ReportMatch(m, lines)
	})
	result := Result{Path: path, Lines: len(lines), Matches: found}
	if err != nil {
		return result, fmt.Errorf("report: %w", err)
	}

	if found == 0 {
		if err := rep.ReportNoMatch(); err != nil {
			return result, fmt.Errorf("report: %w", err)
		}
	}

	result.Duration = time.Since(start)
	slog.Info("Scan completed", "path", path, "matches", found, "duration", result.Duration)
	return result, nil
}
