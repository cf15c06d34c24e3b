package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptQuantExec sets the argv prefix that starts the quantification engine.
func OptQuantExec(ss []string) Option {
	return func(c *Config) {
		if isValidExec("Quant Exec", ss) {
			c.Quant.Exec = ss
		}
	}
}

// OptQuantInputArgPosition sets the placement of the positional input
// path in the engine invocation. Valid values: "trailing", "leading".
func OptQuantInputArgPosition(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Quant.InputArgPosition", s) {
			c.Quant.InputArgPosition = InputArgPosition(s)
		}
	}
}

// OptQuantFoldChangeEval sets the log2 fold-change evaluation threshold.
func OptQuantFoldChangeEval(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Fold Change Eval", f) {
			c.Quant.FoldChangeEval = f
		}
	}
}

// OptQuantDecoyPattern sets the decoy accession prefix.
func OptQuantDecoyPattern(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Decoy Pattern", s) {
			c.Quant.DecoyPattern = s
		}
	}
}

// OptQuantMinSamples sets the minimum number of peptide quantifications.
func OptQuantMinSamples(i int) Option {
	return func(c *Config) {
		if isValidInt("Min Samples", i) {
			c.Quant.MinSamples = i
		}
	}
}

// OptQuantMissingValuePrior sets the missing-value prior mode.
// Valid values: "default", "DIA".
func OptQuantMissingValuePrior(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidEnum("Quant.MissingValuePrior", s) {
			c.Quant.MissingValuePrior = s
		}
	}
}

// OptQuantNumThreads sets the engine thread count. Zero is valid and
// means the engine picks its own default.
func OptQuantNumThreads(i int) Option {
	return func(c *Config) {
		if i >= 0 {
			c.Quant.NumThreads = i
		}
	}
}

// OptConvertDiannExec sets the DIA-NN converter command.
func OptConvertDiannExec(ss []string) Option {
	return func(c *Config) {
		if isValidExec("DIA-NN Converter Exec", ss) {
			c.Convert.DiannExec = ss
		}
	}
}

// OptConvertMaxquantExec sets the MaxQuant converter command.
func OptConvertMaxquantExec(ss []string) Option {
	return func(c *Config) {
		if isValidExec("MaxQuant Converter Exec", ss) {
			c.Convert.MaxquantExec = ss
		}
	}
}

// OptAnnotationEnabled switches the annotation stage on or off.
func OptAnnotationEnabled(b bool) Option {
	return func(c *Config) {
		c.Annotation.Enabled = &b
	}
}

// OptAnnotationEndpoint sets the id-mapping service base URL. An empty
// value is accepted and disables annotation.
func OptAnnotationEndpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Annotation.Endpoint = s
	}
}

// OptAnnotationBatchSize sets the maximum accession count per
// id-mapping job.
func OptAnnotationBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Annotation Batch Size", i) {
			c.Annotation.BatchSize = i
		}
	}
}

// OptAnnotationPollIntervalSec sets the delay between job status polls.
func OptAnnotationPollIntervalSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Annotation Poll Interval", i) {
			c.Annotation.PollIntervalSec = i
		}
	}
}

// OptAnnotationTimeoutSec bounds the remote lookup duration.
func OptAnnotationTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Annotation Timeout", i) {
			c.Annotation.TimeoutSec = i
		}
	}
}

// OptAnnotationCache enables or disables the local gene-name cache.
func OptAnnotationCache(b bool) Option {
	return func(c *Config) {
		c.Annotation.Cache = &b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the logging output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptInputFormat sets the input format. Valid values: "triqler",
// "diann", "maxquant".
func OptInputFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Input.Format", s) {
			c.Input.Format = Format(s)
		}
	}
}

// OptInputFile sets the input file path.
func OptInputFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Input File", s) {
			c.Input.File = s
		}
	}
}

// OptInputFileListFile sets the run-to-condition annotation file path.
func OptInputFileListFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Input.FileListFile = s
	}
}

// OptOutputDir sets the output directory.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Dir", s) {
			c.OutputDir = s
		}
	}
}

// OptHomeDir sets the user's home directory.
func OptHomeDir(s string) Option {
	return func(c *Config) {
		if isValidString("Home Dir", s) {
			c.HomeDir = s
		}
	}
}

// OptUseTTest toggles t-test mode.
func OptUseTTest(b bool) Option {
	return func(c *Config) {
		c.Quant.UseTTest = b
	}
}

// OptWriteSpectrumQuants toggles the spectrum-level output artifact.
func OptWriteSpectrumQuants(b bool) Option {
	return func(c *Config) {
		c.Quant.WriteSpectrumQuants = b
	}
}

// OptWriteProteinPosteriors toggles the protein posterior export.
func OptWriteProteinPosteriors(b bool) Option {
	return func(c *Config) {
		c.Quant.WriteProteinPosteriors = b
	}
}

// OptWriteGroupPosteriors toggles the group posterior export.
func OptWriteGroupPosteriors(b bool) Option {
	return func(c *Config) {
		c.Quant.WriteGroupPosteriors = b
	}
}

// OptWriteFoldChangePosteriors toggles the fold-change posterior export.
func OptWriteFoldChangePosteriors(b bool) Option {
	return func(c *Config) {
		c.Quant.WriteFoldChangePosteriors = b
	}
}
