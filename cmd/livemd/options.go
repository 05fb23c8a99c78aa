package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "livemd"

// options are the resolved settings of one run. Flags win over the
// environment, which wins over livemd.yaml.
type options struct {
	configFile     string
	lineNumbers    bool
	renderMarkdown bool
	historyLimit   int
	readOnly       bool
	maxCellWidth   int
	logLevel       string
	logFormat      string
	logFile        string
}

func defaultOptions() options {
	return options{
		lineNumbers:    true,
		renderMarkdown: true,
		historyLimit:   1000,
		logLevel:       "info",
		logFormat:      "text",
	}
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configFile, "config", "", "path to a config file (default ./livemd.yaml)")
	fs.BoolVar(&o.lineNumbers, "line-numbers", o.lineNumbers, "show line numbers")
	fs.BoolVar(&o.renderMarkdown, "render-markdown", o.renderMarkdown, "render tables and Markdown marks")
	fs.IntVar(&o.historyLimit, "history-limit", o.historyLimit, "number of undo steps to keep")
	fs.BoolVar(&o.readOnly, "read-only", o.readOnly, "open the document without editing")
	fs.IntVar(&o.maxCellWidth, "max-cell-width", o.maxCellWidth, "truncate unfocused table cells to this width (0 disables)")
	fs.StringVar(&o.logLevel, "log-level", o.logLevel, "log level: debug, info, warn or error")
	fs.StringVar(&o.logFormat, "log-format", o.logFormat, "log format: text or json")
	fs.StringVar(&o.logFile, "log-file", o.logFile, "write logs to this file instead of discarding them")
}

// loadConfig fills every flag the user did not set from the config file and
// LIVEMD_* environment variables. Config keys use underscores.
func loadConfig(cmd *cobra.Command, configFile string) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("livemd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	var errs []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Changed {
			return
		}
		name := strings.ReplaceAll(f.Name, "-", "_")
		if !v.IsSet(name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(name))); err != nil {
			errs = append(errs, err.Error())
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("apply config: %s", strings.Join(errs, "; "))
	}
	return nil
}
