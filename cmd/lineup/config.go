package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	server        string
	timeout       time.Duration
	submitTimeout time.Duration
	verbose       bool
}

func (c *Config) validate() error {
	if c.server == "" {
		return errors.New("--server must not be empty")
	}
	if c.timeout < 0 || c.submitTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative: %v, %v", c.timeout, c.submitTimeout)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LINEUP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "lineup",
		Short:         "Guess a team's starting lineup from the terminal.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return play(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.server, "server", "s", "http://localhost:8080", "lineup server to play against (env: LINEUP_SERVER)")
	fs.DurationVar(&cfg.timeout, "timeout", 30*time.Second, "per-request HTTP timeout (env: LINEUP_TIMEOUT)")
	fs.DurationVar(&cfg.submitTimeout, "submit-timeout", 15*time.Second, "time allowed for grading a submission (env: LINEUP_SUBMIT_TIMEOUT)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log submission failures (env: LINEUP_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("lineup v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
