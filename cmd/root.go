package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/protquant/quantpipe/internal/iofs"
	"github.com/protquant/quantpipe/internal/iologger"
	app "github.com/protquant/quantpipe/pkg"
	"github.com/protquant/quantpipe/pkg/config"
	"github.com/protquant/quantpipe/pkg/lifecycle"
)

var (
	homeDir string
	cfg     *config.Config
)

// getRootCmd builds the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "quantpipe",
		Short:   "Protein quantification pipeline around the Triqler engine",
		Long: `quantpipe drives a protein-quantification workflow:

  1. convert:  normalize DIA-NN or MaxQuant exports into the canonical
               tab-separated input table
  2. map:      derive a numbered condition mapping from that table
  3. quantify: run the external Triqler engine
  4. annotate: merge UniProt gene names into the protein result tables

'quantpipe run' executes all stages in order; the convert, quantify and
annotate subcommands run single stages over existing artifacts.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (QUANTPIPE_*)
  3. ~/.config/quantpipe/config.yaml
  4. Built-in defaults`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for quantpipe")

	rootCmd.AddCommand(getRunCmd())
	rootCmd.AddCommand(getConvertCmd())
	rootCmd.AddCommand(getQuantifyCmd())
	rootCmd.AddCommand(getAnnotateCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured later with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings.
	if err = iologger.Init(
		config.LogDir(homeDir), cfg.Log, true,
	); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). On an external tool
// failure the tool's own exit code is mirrored.
func Execute() {
	err := getRootCmd().Execute()
	if err == nil {
		return
	}

	var exitErr *lifecycle.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		os.Exit(exitErr.Code)
	}
	os.Exit(1)
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables
	// are allowed. These match the fields included in
	// config.ToOptions() - i.e., persistent configuration that can be
	// stored in config.yaml.
	v.SetEnvPrefix("QUANTPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Quantification engine configuration
	v.BindEnv("quant.input_arg_position", "QUANT_INPUT_ARG_POSITION")
	v.BindEnv("quant.fold_change_eval", "QUANT_FOLD_CHANGE_EVAL")
	v.BindEnv("quant.decoy_pattern", "QUANT_DECOY_PATTERN")
	v.BindEnv("quant.min_samples", "QUANT_MIN_SAMPLES")
	v.BindEnv("quant.missing_value_prior", "QUANT_MISSING_VALUE_PRIOR")
	v.BindEnv("quant.num_threads", "QUANT_NUM_THREADS")

	// Annotation configuration
	v.BindEnv("annotation.enabled", "ANNOTATION_ENABLED")
	v.BindEnv("annotation.endpoint", "ANNOTATION_ENDPOINT")
	v.BindEnv("annotation.batch_size", "ANNOTATION_BATCH_SIZE")
	v.BindEnv("annotation.poll_interval_sec", "ANNOTATION_POLL_INTERVAL_SEC")
	v.BindEnv("annotation.timeout_sec", "ANNOTATION_TIMEOUT_SEC")
	v.BindEnv("annotation.cache", "ANNOTATION_CACHE")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	v.AutomaticEnv()
}
