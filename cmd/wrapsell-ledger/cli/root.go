package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/pkg"
)

const (
	defaultConfigFileName = "config.yml"
	// configPathEnv overrides the default config location
	configPathEnv = "WRAPSELL_CONFIG"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:          "wrapsell-ledger",
		Short:        "Collateral ledger for tokenized trading cards",
		SilenceUsage: true,
	}
)

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := pkg.Getenv(configPathEnv, getDefaultConfigFile(homePath, defaultConfigFileName))

	rootCmd.AddCommand(StartServerCmd())
	rootCmd.AddCommand(SimulateCmd())
	rootCmd.AddCommand(DeployPoolsCmd())
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))
	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.New(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}
	return cfg, nil
}
