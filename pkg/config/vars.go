package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "quantpipe"
)

// Fixed names of pipeline artifacts inside the output directory.
const (
	// CanonicalFile is the converted engine input table.
	CanonicalFile = "canonical_input.tsv"
	// MappingFile holds the numbered condition labels.
	MappingFile = "condition_mapping.tsv"
	// ProteinsFile is the engine's main protein result table.
	ProteinsFile = "proteins.tsv"
	// ProteinPosteriorsFile is the optional protein posterior export.
	ProteinPosteriorsFile = "protein_posteriors.tsv"
	// GroupPosteriorsFile is the optional group posterior export.
	GroupPosteriorsFile = "group_posteriors.tsv"
	// FoldChangePosteriorsFile is the optional fold-change posterior export.
	FoldChangePosteriorsFile = "fold_change_posteriors.tsv"
	// SpectrumQuantsFile is the relocated spectrum-level artifact.
	SpectrumQuantsFile = "spectrum_quants.tsv"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/quantpipe by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/quantpipe by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/quantpipe/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/quantpipe/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// GeneCachePath returns the full path of the sqlite gene-name cache.
// Returns ~/.cache/quantpipe/genes.db by default.
func GeneCachePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "genes.db")
}
