package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/IgorBayerl/logscan/internal/filesystem"
	"github.com/IgorBayerl/logscan/internal/logging"
	"github.com/IgorBayerl/logscan/internal/logscan"
	"github.com/IgorBayerl/logscan/internal/reporter"
	"github.com/IgorBayerl/logscan/internal/scanconfig"
	"github.com/IgorBayerl/logscan/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code. Only bad invocations exit non-zero; a
// failed scan is reported on stdout as "Error: ..." and still exits 0.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logCfg := logging.DefaultConfig()
	logCfg.Verbosity = cfg.VerbosityLevel()
	logCfg.LogFile = cfg.LogFile()
	logger, closer, err := logging.Setup(logCfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()
	slog.SetDefault(logger)

	if err := scan(cfg, stdout); err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
	}
	return 0
}

// scan is the single failure boundary around load, scan and report.
func scan(cfg scanconfig.IScanConfiguration, stdout io.Writer) error {
	rep, err := reporter.New(cfg.Format(), stdout)
	if err != nil {
		return err
	}
	_, err = logscan.Run(cfg, filesystem.DefaultFS{}, rep)
	return err
}

// parseConfig layers flags over an optional YAML file over the defaults.
func parseConfig(args []string, stderr io.Writer) (*scanconfig.ScanConfiguration, error) {
	fs := flag.NewFlagSet("logscan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := scanconfig.NewScanConfiguration()
	configPath := fs.String("config", "", "Optional YAML config file; flags override its values")
	filePath := fs.String("file", defaults.FilePath(), "Log file to scan")
	encoding := fs.String("encoding", defaults.Encoding(), "Text encoding of the log (IANA name, or \"auto\" to sniff a BOM)")
	patterns := fs.String("patterns", strings.Join(defaults.Patterns(), ","), "Literal, case-sensitive substrings to match (comma-separated)")
	radius := fs.Int("radius", defaults.ContextRadius(), "Context lines on each side of a match")
	format := fs.String("format", defaults.Format(), "Report format (text, html, json)")
	verbosityStr := fs.String("verbosity", defaults.VerbosityLevel().String(), "Logging verbosity level (Verbose, Info, Warning, Error, Off)")
	logFile := fs.String("logfile", "", "Also write diagnostics to this rotating log file")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: logscan [-file <path>] [-encoding <name>] [-patterns <p1,p2>] [-radius <n>] [-format text|html|json] ...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := defaults
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return nil, err
		}
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.FPath = *filePath
		case "encoding":
			cfg.Enc = *encoding
		case "patterns":
			cfg.PList = utils.SplitList(*patterns, []rune{','})
		case "radius":
			cfg.Radius = *radius
		case "format":
			cfg.RFormat = *format
		case "verbosity":
			v, err := logging.ParseVerbosity(*verbosityStr)
			if err != nil {
				flagErr = err
				return
			}
			cfg.VLevel = v
		case "logfile":
			cfg.LFile = *logFile
		}
	})
	if flagErr != nil {
		return nil, flagErr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
