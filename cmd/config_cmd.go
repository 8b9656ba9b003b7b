package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", configPathOrDefault())
	if config.Exists(flagConfigPath) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = cfg.DBPath()
	}
	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", cfg.DataDir())
	fmt.Printf("    Database:       %s\n", dbPath)
	fmt.Printf("    Log level:      %s\n", cfg.General.LogLevel)
	fmt.Printf("    Dashboard log:  %s\n", cfg.LogPath())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Default theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Invest]")
	fmt.Printf("    Monthly contribution: %g\n", cfg.Invest.MonthlyContribution)
	fmt.Printf("    Annual return:        %g%%\n", cfg.Invest.AnnualReturnPct)
	fmt.Printf("    Years:                %g\n", cfg.Invest.Years)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)

	var overrides []string
	for _, name := range []string{config.EnvDataDir, config.EnvLogLevel, config.EnvTheme, config.EnvAddr, config.EnvMonthly} {
		if v, ok := os.LookupEnv(name); ok {
			overrides = append(overrides, fmt.Sprintf("%s=%s", name, v))
		}
	}
	if len(overrides) > 0 {
		fmt.Println()
		fmt.Println("  [Environment overrides]")
		for _, o := range overrides {
			fmt.Printf("    %s\n", o)
		}
	}
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if config.Exists(flagConfigPath) {
		return errors.New("config file already exists at " + configPathOrDefault())
	}
	if err := config.Save(flagConfigPath, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote defaults to %s\n", configPathOrDefault())
	return nil
}
