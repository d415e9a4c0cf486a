package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/MuoDoo/riscv/cmd/csr"
	"github.com/fatih/color"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "riscv",
	Short: "Tools to inspect the capabilities of RISC-V harts",
	Long: `riscv decodes RISC-V control and status registers.

Register values can be given as already captured values or synthesized from what the
running kernel reports about the platform.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !viper.GetBool("color") {
			color.NoColor = true
		}

		return initLogging(cmd.ErrOrStderr(), viper.GetString("log-level"), viper.GetString("log-file"))
	},
}

// Log file opened by initLogging, closed once the command finishes
var logFile *os.File

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	closeLogging()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(csr.CsrCmd)
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.riscv.yaml)")
	RootCmd.PersistentFlags().String("log-level", "warn", "Minimum level of the log messages written to stderr (debug, info, warn, error)")
	RootCmd.PersistentFlags().String("log-file", "", "Also write JSON log records to this file")
	RootCmd.PersistentFlags().Bool("color", true, "Colorize text output")

	cobra.CheckErr(viper.BindPFlag("log-level", RootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log-file", RootCmd.PersistentFlags().Lookup("log-file")))
	cobra.CheckErr(viper.BindPFlag("color", RootCmd.PersistentFlags().Lookup("color")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".riscv" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".riscv")
	}

	viper.SetEnvPrefix("riscv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// initLogging installs the default slog logger: text records to w, plus JSON records to
// logPath if not empty
func initLogging(w io.Writer, logLevel string, logPath string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	}

	if logPath != "" {
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}

		closeLogging()
		logFile = file
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
	slog.Debug("logging initialized", "level", level)

	return nil
}

// closeLogging closes the log file, if any. The file handler drops records logged
// afterwards.
func closeLogging() {
	if logFile == nil {
		return
	}

	if err := logFile.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "closing log file:", err)
	}

	logFile = nil
}
