package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hashbench/internal/config"
	"hashbench/internal/memprof"
	"hashbench/internal/telemetry"
)

var exit = os.Exit
var cfgFile string

var (
	memAllocated bool
	memWritten   bool
	saveRun      bool
)

// rootCmd runs the speed trials by default; -m/-w switch to the memory
// profiler.
var rootCmd = &cobra.Command{
	Use:   "hashbench [workload]",
	Short: "Benchmark interchangeable hash-table implementations",
	Long: `hashbench compares hash-table implementations under deterministic
synthetic workloads. With no arguments it runs every workload against every
registered implementation and writes a JSON report to stdout. Naming a single
workload restricts the run to that workload. The -m and -w flags instead grow
one table of each implementation and emit a tab-separated memory profile.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runRoot,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'hashbench --help' for usage.")
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./hashbench.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")

	rootCmd.Flags().BoolVarP(&memAllocated, "bytes-allocated", "m", false, "Profile memory growth, counting all reserved storage")
	rootCmd.Flags().BoolVarP(&memWritten, "bytes-written", "w", false, "Profile memory growth, counting only touched storage")
	rootCmd.Flags().BoolVar(&saveRun, "save", false, "Save the report to the run history")
	rootCmd.Flags().Int("steps", memprof.DefaultSteps, "Insertions to profile in memory mode")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("mem_steps", rootCmd.Flags().Lookup("steps"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// explicit .env loading; a missing file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("hashbench")
	}

	viper.SetEnvPrefix("HASHBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("min_run_seconds", 0.1)
	viper.SetDefault("max_run_seconds", 1.0)
	viper.SetDefault("mem_steps", memprof.DefaultSteps)
	viper.SetDefault("history_db", ".hashbench/history.db")
	viper.SetDefault("verbose", false)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if err := config.ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}

	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
}
