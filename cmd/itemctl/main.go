// Package main is the entry point for the item command line tool
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys shared by flags and environment
const (
	keyRules      = "rules"
	keyStore      = "store"
	keyRedisAddr  = "redis_addr"
	keySQLitePath = "sqlite_path"
	keyLogLevel   = "log_level"
)

// Stores
const (
	storeSQLite = "sqlite"
	storeRedis  = "redis"
)

var rootCmd = &cobra.Command{
	Use:   "itemctl",
	Short: "Use, roll and inspect tabletop RPG items",
	Long: `itemctl loads actors and their items from YAML scenarios into a store,
then prepares, uses and rolls them the way a game table would.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(viper.GetString(keyLogLevel))
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String(keyRules, "", "rules YAML file merged over the defaults")
	flags.String(keyStore, storeSQLite, "document store: sqlite or redis")
	flags.String(keyRedisAddr, "localhost:6379", "redis address")
	flags.String(keySQLitePath, "itemctl.db", "sqlite database file")
	flags.String(keyLogLevel, "info", "log level: debug, info, warn or error")

	for _, key := range []string{keyRules, keyStore, keyRedisAddr, keySQLitePath, keyLogLevel} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}
}

// initConfig lets ITEMCTL_* environment variables stand in for flags
func initConfig() {
	viper.SetEnvPrefix("itemctl")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}
