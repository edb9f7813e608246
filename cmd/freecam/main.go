// Command freecam opens a window and flies a free camera through an empty WebGPU scene.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-freecam/engine/config"
)

var (
	cfgFile   string
	logLevel  string
	profiling bool
)

var rootCmd = &cobra.Command{
	Use:   "freecam",
	Short: "Free-flight camera viewer",
	Long: `freecam opens a window with a six-degree-of-freedom fly camera.

Controls (defaults):
  W/S A/D R/F   move forward/back, left/right, up/down
  Q/E           roll counter-clockwise / clockwise
  X             re-level the horizon
  Right mouse   hold to look around
  Wheel         zoom; with Ctrl held, change speed (Shift for coarse steps)
  Shift         boost
  Escape        quit

Configuration is read from --config, ./freecam.yaml or $HOME/.config/freecam/freecam.yaml,
and every key can be overridden with FREECAM_<SECTION>_<KEY>, e.g. FREECAM_CAMERA_FOV=75.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./freecam.yaml or $HOME/.config/freecam/freecam.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides config)")
	rootCmd.Flags().BoolVar(&profiling, "profile", false, "log frame rate and memory statistics every second")

	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig applies the command line overrides on top of the loaded configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if profiling {
		cfg.Engine.Profiling = true
	}
	return cfg, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return run(cfg)
}
