package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"manifest-resolver/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "MANIFEST_RESOLVER"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
	Profile    string
	Target     string
	MaxDepth   int
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "manifest-resolver",
		Short:         "Resolve package.json exports, imports and browser fields",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().StringVar(&cfg.Profile, "profile", "", "Resolver profile path")
	cmd.PersistentFlags().StringVar(&cfg.Target, "target", "", "Target environment (overrides the profile)")
	cmd.PersistentFlags().IntVar(&cfg.MaxDepth, "max-depth", 0, "Maximum exports nesting depth (overrides the profile)")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("profile", cmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("target", cmd.PersistentFlags().Lookup("target"))
	_ = viper.BindPFlag("max_depth", cmd.PersistentFlags().Lookup("max-depth"))

	cmd.AddCommand(newExportsCommand())
	cmd.AddCommand(newImportsCommand())
	cmd.AddCommand(newBrowserCommand())
	cmd.AddCommand(newInspectCommand())
	cmd.AddCommand(newValidateCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("manifest-resolver")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/manifest-resolver")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func newAppService() app.Service {
	return app.NewService()
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	message := errorMessage(err)
	switch code {
	case errbuilder.CodeInvalidArgument:
		if strings.HasPrefix(message, "failed to parse") {
			return 4
		}
		return 2
	case errbuilder.CodeNotFound:
		if strings.HasPrefix(message, "package subpath is not exported") ||
			strings.HasPrefix(message, "package import specifier is not defined") {
			return 3
		}
		return 5
	case errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
