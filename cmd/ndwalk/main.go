package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qri-io/ndarray-go/internal/config"
	"github.com/qri-io/ndarray-go/internal/walkthrough"
)

var (
	// Global flags
	configPath string
	verbose    bool
	outputDir  string
	seed       uint64
	memory     bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ndwalk",
	Short: "ndwalk - the absolute basics of ndarray for beginners",
	Long: `ndwalk prints a guided tour of the ndarray package.

Each section creates arrays, transforms them and prints the results.
The saving sections write a chunked array store and text files to the
output directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("output-dir") {
			cfg.OutputDir = outputDir
		}
		if flags.Changed("seed") {
			cfg.Seed = seed
		}
		if memory {
			cfg.Store.Kind = "memory"
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		zc, err := cfg.ZapConfig(verbose)
		if err != nil {
			return err
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWalkthrough,
}

var runCmd = &cobra.Command{
	Use:   "run [section...]",
	Short: "Run walkthrough sections",
	Long: `Runs the named sections in walkthrough order. With no arguments the
sections listed in the config file run, or every section when none are
listed.`,
	RunE: runWalkthrough,
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List walkthrough sections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range walkthrough.Sections() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", s.Name, s.Title)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ndwalk config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		logger.Info("wrote config", zap.String("path", configPath))
		return nil
	},
}

func runWalkthrough(cmd *cobra.Command, args []string) error {
	d, err := walkthrough.New(cmd.OutOrStdout(), cfg, logger)
	if err != nil {
		return err
	}
	return d.Run(args...)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "ndwalk.yaml", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "Directory saved files are written to")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for the random number sections")
	rootCmd.PersistentFlags().BoolVar(&memory, "memory", false, "Keep saved arrays and files in memory")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(runCmd, sectionsCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
