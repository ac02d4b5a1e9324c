package scanconfig

import (
	"errors"
	"fmt"
	"os"

	"github.com/IgorBayerl/logscan/internal/filereader"
	"github.com/IgorBayerl/logscan/internal/logging"
	"github.com/IgorBayerl/logscan/internal/reporter"
	"github.com/IgorBayerl/logscan/internal/scanner"
	"gopkg.in/yaml.v3"
)

// DefaultFilePath is the log the diagnostic was written for.
const DefaultFilePath = "server3005.log"

// DefaultFormat is the plain console report.
const DefaultFormat = "text"

// IScanConfiguration defines the configuration for a scan.
type IScanConfiguration interface {
	FilePath() string
	Encoding() string
	Patterns() []string
	ContextRadius() int
	Format() string
	VerbosityLevel() logging.VerbosityLevel
	LogFile() string
}

// ScanConfiguration is a concrete implementation of IScanConfiguration.
// The yaml tags are the keys accepted in a -config file.
type ScanConfiguration struct {
	FPath   string                 `yaml:"file"`
	Enc     string                 `yaml:"encoding"`
	PList   []string               `yaml:"patterns"`
	Radius  int                    `yaml:"radius"`
	RFormat string                 `yaml:"format"`
	VLevel  logging.VerbosityLevel `yaml:"verbosity"`
	LFile   string                 `yaml:"logfile"`
}

// Implement IScanConfiguration methods
func (sc *ScanConfiguration) FilePath() string                       { return sc.FPath }
func (sc *ScanConfiguration) Encoding() string                       { return sc.Enc }
func (sc *ScanConfiguration) Patterns() []string                     { return sc.PList }
func (sc *ScanConfiguration) ContextRadius() int                     { return sc.Radius }
func (sc *ScanConfiguration) Format() string                         { return sc.RFormat }
func (sc *ScanConfiguration) VerbosityLevel() logging.VerbosityLevel { return sc.VLevel }
func (sc *ScanConfiguration) LogFile() string                        { return sc.LFile }

// NewScanConfiguration returns a configuration holding the defaults: the
// server3005.log UTF-16LE console capture, both module-not-found messages and
// ten lines of context.
func NewScanConfiguration() *ScanConfiguration {
	patterns := make([]string, len(scanner.DefaultPatterns))
	copy(patterns, scanner.DefaultPatterns)
	return &ScanConfiguration{
		FPath:   DefaultFilePath,
		Enc:     filereader.DefaultEncoding,
		PList:   patterns,
		Radius:  scanner.DefaultContextRadius,
		RFormat: DefaultFormat,
		VLevel:  logging.Warning,
	}
}

// LoadFile overlays the YAML file at path onto sc. Keys missing from the
// file keep their current values.
func (sc *ScanConfiguration) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate reports every problem found, not just the first.
func (sc *ScanConfiguration) Validate() error {
	var errs []error
	if sc.FPath == "" {
		errs = append(errs, errors.New("file path must not be empty"))
	}
	if _, err := filereader.NewDecoder(sc.Enc); err != nil {
		errs = append(errs, err)
	}
	if len(sc.PList) == 0 {
		errs = append(errs, errors.New("at least one pattern is required"))
	}
	for _, p := range sc.PList {
		if p == "" {
			errs = append(errs, errors.New("patterns must not be empty strings"))
			break
		}
	}
	if sc.Radius < 0 {
		errs = append(errs, fmt.Errorf("context radius must not be negative, got %d", sc.Radius))
	}
	if err := reporter.ValidateFormat(sc.RFormat); err != nil {
		errs = append(errs, err)
	}
	if sc.VLevel < logging.Verbose || sc.VLevel > logging.Off {
		errs = append(errs, fmt.Errorf("invalid verbosity level %d", int(sc.VLevel)))
	}
	return errors.Join(errs...)
}
