package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Input, OutputDir, output toggles).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	if len(c.Quant.Exec) > 0 {
		res = append(res, OptQuantExec(c.Quant.Exec))
	}
	s = string(c.Quant.InputArgPosition)
	if s != "" {
		res = append(res, OptQuantInputArgPosition(s))
	}
	if c.Quant.FoldChangeEval > 0 {
		res = append(res, OptQuantFoldChangeEval(c.Quant.FoldChangeEval))
	}
	s = c.Quant.DecoyPattern
	if s != "" {
		res = append(res, OptQuantDecoyPattern(s))
	}
	i = c.Quant.MinSamples
	if i > 0 {
		res = append(res, OptQuantMinSamples(i))
	}
	s = c.Quant.MissingValuePrior
	if s != "" {
		res = append(res, OptQuantMissingValuePrior(s))
	}
	i = c.Quant.NumThreads
	if i > 0 {
		res = append(res, OptQuantNumThreads(i))
	}

	if len(c.Convert.DiannExec) > 0 {
		res = append(res, OptConvertDiannExec(c.Convert.DiannExec))
	}
	if len(c.Convert.MaxquantExec) > 0 {
		res = append(res, OptConvertMaxquantExec(c.Convert.MaxquantExec))
	}

	if c.Annotation.Enabled != nil {
		res = append(res, OptAnnotationEnabled(*c.Annotation.Enabled))
	}
	s = c.Annotation.Endpoint
	if s != "" {
		res = append(res, OptAnnotationEndpoint(s))
	}
	i = c.Annotation.BatchSize
	if i > 0 {
		res = append(res, OptAnnotationBatchSize(i))
	}
	i = c.Annotation.PollIntervalSec
	if i > 0 {
		res = append(res, OptAnnotationPollIntervalSec(i))
	}
	i = c.Annotation.TimeoutSec
	if i > 0 {
		res = append(res, OptAnnotationTimeoutSec(i))
	}
	if c.Annotation.Cache != nil {
		res = append(res, OptAnnotationCache(*c.Annotation.Cache))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidFloat(name string, f float64) bool {
	res := f > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive, ignoring %v", name, f)
	}
	return res
}

func isValidExec(name string, ss []string) bool {
	res := len(ss) > 0 && strings.TrimSpace(ss[0]) != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Quant.InputArgPosition": {"trailing": s, "leading": s},
		"Quant.MissingValuePrior": {"default": s,
			"DIA": s},
		"Input.Format":    {"triqler": s, "diann": s, "maxquant": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stdout": s, "stderr": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
