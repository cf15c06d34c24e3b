// Package config provides configuration management for quantpipe.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Quant: exec, input_arg_position, fold_change_eval, decoy_pattern,
//     min_samples, missing_value_prior, num_threads
//   - Convert: diann_exec, maxquant_exec
//   - Annotation: enabled, endpoint, batch_size, poll_interval_sec,
//     timeout_sec, cache
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Input format/file/file-list, output dir, output toggles, ttest,
//     skip-annotation (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use QUANTPIPE_ prefix with underscores for nesting:
//
//	QUANTPIPE_QUANT_DECOY_PATTERN=DECOY_
//	QUANTPIPE_ANNOTATION_ENDPOINT=https://rest.uniprot.org/idmapping
//	QUANTPIPE_LOG_LEVEL=info
package config

// Format identifies the upstream search-engine export format.
type Format string

const (
	// FormatTriqler marks input already in the canonical Triqler schema.
	FormatTriqler Format = "triqler"
	// FormatDiann marks DIA-NN report exports.
	FormatDiann Format = "diann"
	// FormatMaxquant marks MaxQuant evidence exports.
	FormatMaxquant Format = "maxquant"
)

// InputArgPosition controls where the positional input path is placed in
// the quantification engine's argument list. The accepted placement has
// shifted between engine versions, so it is configuration, not a constant.
type InputArgPosition string

const (
	// InputTrailing appends the input path after all flags.
	InputTrailing InputArgPosition = "trailing"
	// InputLeading places the input path before all flags.
	InputLeading InputArgPosition = "leading"
)

// Config represents the complete quantpipe configuration.
type Config struct {
	// Quant contains quantification-engine invocation settings.
	Quant QuantConfig `mapstructure:"quant" yaml:"quant"`

	// Convert contains the external format-converter commands.
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert"`

	// Annotation contains gene-name annotation settings.
	Annotation AnnotationConfig `mapstructure:"annotation" yaml:"annotation"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Input describes the current run's input. Runtime-only.
	Input InputConfig

	// OutputDir is the directory receiving all result files. Runtime-only.
	OutputDir string

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// QuantConfig contains quantification-engine parameters.
type QuantConfig struct {
	// Exec is the argv prefix that starts the engine, e.g.
	// ["python3", "-m", "triqler"] or ["triqler"].
	Exec []string `mapstructure:"exec" yaml:"exec"`

	// InputArgPosition is "trailing" or "leading"; see InputArgPosition.
	InputArgPosition InputArgPosition `mapstructure:"input_arg_position" yaml:"input_arg_position"`

	// FoldChangeEval is the log2 fold-change evaluation threshold.
	FoldChangeEval float64 `mapstructure:"fold_change_eval" yaml:"fold_change_eval"`

	// DecoyPattern is the prefix marking decoy protein accessions.
	DecoyPattern string `mapstructure:"decoy_pattern" yaml:"decoy_pattern"`

	// MinSamples is the minimum number of peptide quantifications
	// required for a protein to be reported.
	MinSamples int `mapstructure:"min_samples" yaml:"min_samples"`

	// MissingValuePrior is "default" or "DIA". The default mode is not
	// passed to the engine at all.
	MissingValuePrior string `mapstructure:"missing_value_prior" yaml:"missing_value_prior"`

	// NumThreads is the engine's worker count; 0 leaves the choice to
	// the engine and omits the flag.
	NumThreads int `mapstructure:"num_threads" yaml:"num_threads"`

	// UseTTest switches the engine from posterior probabilities to a
	// t-test. Runtime-only.
	UseTTest bool

	// WriteSpectrumQuants requests the spectrum-level quantification
	// artifact. Runtime-only.
	WriteSpectrumQuants bool

	// WriteProteinPosteriors requests the protein posterior export.
	// Runtime-only.
	WriteProteinPosteriors bool

	// WriteGroupPosteriors requests the group posterior export.
	// Runtime-only.
	WriteGroupPosteriors bool

	// WriteFoldChangePosteriors requests the fold-change posterior
	// export. Runtime-only.
	WriteFoldChangePosteriors bool
}

// ConvertConfig contains the argv prefixes of the two external
// format converters. The converters are distinct programs and are
// never interchangeable.
type ConvertConfig struct {
	// DiannExec starts the DIA-NN converter.
	DiannExec []string `mapstructure:"diann_exec" yaml:"diann_exec"`

	// MaxquantExec starts the MaxQuant converter.
	MaxquantExec []string `mapstructure:"maxquant_exec" yaml:"maxquant_exec"`
}

// AnnotationConfig contains gene-name annotation settings.
type AnnotationConfig struct {
	// Enabled turns the annotation stage on or off. When off, result
	// files are left without a gene_name column.
	Enabled *bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the base URL of the UniProt id-mapping service.
	// An empty endpoint disables annotation with a warning.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// BatchSize is the maximum number of accessions submitted in one
	// id-mapping job.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// PollIntervalSec is the delay between id-mapping job status polls.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`

	// TimeoutSec bounds the whole remote lookup, submission to last
	// fetched chunk.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// Cache enables the local accession->gene sqlite cache.
	Cache *bool `mapstructure:"cache" yaml:"cache"`
}

// InputConfig describes the current run's input files. Runtime-only,
// populated from CLI flags.
type InputConfig struct {
	// Format is one of triqler, diann, maxquant.
	Format Format

	// File is the search-engine export (or canonical table for the
	// triqler format).
	File string

	// FileListFile maps runs to experimental conditions. Required for
	// diann and maxquant inputs.
	FileListFile string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	enabled := true
	cache := true
	res := &Config{
		Quant: QuantConfig{
			Exec:              []string{"python3", "-m", "triqler"},
			InputArgPosition:  InputTrailing,
			FoldChangeEval:    1.0,
			DecoyPattern:      "decoy_",
			MinSamples:        2,
			MissingValuePrior: "default",
			NumThreads:        0,
		},
		Convert: ConvertConfig{
			DiannExec:    []string{"python3", "-m", "triqler.convert.diann"},
			MaxquantExec: []string{"python3", "-m", "triqler.convert.maxquant"},
		},
		Annotation: AnnotationConfig{
			Enabled:         &enabled,
			Endpoint:        "https://rest.uniprot.org/idmapping",
			BatchSize:       50_000,
			PollIntervalSec: 3,
			TimeoutSec:      300,
			Cache:           &cache,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}
	return res
}

// AnnotationEnabled reports whether the annotation stage should run.
// The capability is resolved once, before the stage starts: an explicit
// disable or an empty endpoint both switch the stage off.
func (c *Config) AnnotationEnabled() bool {
	if c.Annotation.Enabled != nil && !*c.Annotation.Enabled {
		return false
	}
	return c.Annotation.Endpoint != ""
}

// AnnotationCacheEnabled reports whether the local gene-name cache is on.
func (c *Config) AnnotationCacheEnabled() bool {
	return c.Annotation.Cache == nil || *c.Annotation.Cache
}
