package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cxd309/swim-engine/internal/config"
	"github.com/cxd309/swim-engine/internal/engine"
)

type rootOptions struct {
	configPath string
	logLevel   string
	pretty     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "swim-engine [input.json]",
		Short:         "Run a swim training simulation",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "JSON file overriding the input's settings")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the output JSON")
	return cmd
}

func run(stdin io.Reader, stdout, stderr io.Writer, args []string, opts *rootOptions) error {
	var (
		data []byte
		err  error
	)
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	logger, err := newLogger(stderr, opts.logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	engineOpts := []engine.Option{engine.WithLogger(logger)}
	if opts.configPath != "" {
		cfg, err := config.LoadSimulationConfig(opts.configPath)
		if err != nil {
			return err
		}
		engineOpts = append(engineOpts, engine.WithConfig(cfg))
	}

	result, err := engine.RunJSON(string(data), engineOpts...)
	if err != nil {
		return err
	}

	if opts.pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(result), "", "  "); err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}
		result = buf.String()
	}
	_, err = fmt.Fprintln(stdout, result)
	return err
}

// newLogger builds a console logger on w so stdout carries only the run log.
func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
