package main

import (
	"fmt"
	"os"

	"github.com/milk9111/spriteanim/config"
	"github.com/spf13/cobra"
)

// cfg is populated by initConfig before any command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "animctl",
	Short:         "Inspect, convert and simulate sprite animation documents",
	Long:          "animctl works on the animation documents written by the editor without opening a window.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .spriteanim.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(listCmd, validateCmd, convertCmd, simulateCmd, gridCmd, detectCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	c, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg = c
}

func verbose(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}
