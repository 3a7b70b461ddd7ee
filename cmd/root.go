package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"capsule/internal/api"
	"capsule/internal/config"
	"capsule/internal/slogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

// newRootCmd builds the root command and declares the global flags shared by
// every subcommand.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capsule",
		Short: "A command-line client for the Capsule platform",
		Long: `Capsule is a command-line client for the Capsule application platform.

It provisions applications through the platform API and connects the
current git repository to the platform's git hosting, so a freshly
created application is one "git push capsule" away from its first
deploy.`,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().String("api-url", api.DefaultBaseURL, "Base URL of the Capsule API")
	cmd.PersistentFlags().Duration("timeout", api.DefaultTimeout, "Timeout for API requests")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "json", "Log format (json, text)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Bind global flags so explicit flag values win over file and environment
	bindFlags(v)

	// Set config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".capsule"))
		}
	}

	// Environment variables
	v.SetEnvPrefix("CAPSULE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read configuration
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
		// Config file not found; use defaults and environment
	}

	// Load configuration
	loaded, err := config.New(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	slogger.Configure(slogger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
}

// bindFlags connects the global flags to their configuration keys on the
// given viper instance. Binding happens here rather than at flag declaration
// time because each initConfig run reads into a fresh instance.
func bindFlags(v *viper.Viper) {
	flags := rootCmd.PersistentFlags()

	if err := v.BindPFlag("api.url", flags.Lookup("api-url")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding api-url flag: %v\n", err)
	}
	if err := v.BindPFlag("api.timeout", flags.Lookup("timeout")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding timeout flag: %v\n", err)
	}
	if err := v.BindPFlag("log.level", flags.Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
	}
	if err := v.BindPFlag("log.format", flags.Lookup("log-format")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-format flag: %v\n", err)
	}
}

func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.url", api.DefaultBaseURL)
	v.SetDefault("api.timeout", api.DefaultTimeout)

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}
