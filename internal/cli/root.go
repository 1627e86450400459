package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/hdrwrap/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	rootDir string
	verbose bool

	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hdrwrap",
	Short: "Generate C++ wrapper headers from cbindgen C headers",
	Long: `hdrwrap expands a hand-written wrapper header template with fragments
of a generated C header.

The generated header is stripped of its include guard and linkage guard, then
sorted into three buckets that fill the template's markers:
  [[ includes ]]          every #include line
  [[ maximum_data_len ]]  the value of the size-limit constant
  [[ c_api ]]             every declaration line
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .hdrwrap/config.yml under the root)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", "", "project root (default is the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// resolveRoot returns the absolute project root.
func resolveRoot() (string, error) {
	if rootDir != "" {
		return filepath.Abs(rootDir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

// loadConfig loads the tool configuration for root, honoring --config.
func loadConfig(root string) (*config.Config, error) {
	var loader config.Loader
	if cfgFile != "" {
		loader = config.NewFileLoader(root, cfgFile)
	} else {
		loader = config.NewLoader(root)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
