package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"db-fieldgen/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "fieldgen",
	Short: "Generate ORM field descriptors from a live database schema",
	Long: `
  _____ ___ _____ _     ____   ____ _____ _   _
 |  ___|_ _| ____| |   |  _ \ / ___| ____| \ | |
 | |_   | ||  _| | |   | | | | |  _|  _| |  \| |
 |  _|  | || |___| |___| |_| | |_| | |___| |\  |
 |_|   |___|_____|_____|____/ \____|_____|_| \_|

FIELDGEN - reads tables, columns and foreign keys and prints field descriptors
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New(&logger.Config{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
			Output: os.Stderr,
		})
		if used := viper.ConfigFileUsed(); used != "" {
			log.Debugf("using config file: %s", used)
		}
		cmd.SetContext(log.WithContext(cmd.Context()))
		return nil
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./fieldgen.yaml)")
	flags.String("dsn", "", "Database Source Name (DSN), overrides the databases list")
	flags.String("driver", "", "database/sql driver name (detected from the DSN when empty)")
	flags.String("schema", "", "schema to introspect (dialect default when empty)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console, json")

	viper.BindPFlag("database.dsn", flags.Lookup("dsn"))
	viper.BindPFlag("database.driver", flags.Lookup("driver"))
	viper.BindPFlag("database.schema", flags.Lookup("schema"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("fieldgen")
		viper.SetConfigType("yaml")
	}

	// FIELDGEN_DATABASE_DSN, FIELDGEN_LOG_LEVEL, ...
	viper.SetEnvPrefix("fieldgen")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; flags and env may carry everything.
	_ = viper.ReadInConfig()
}
