package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/d21d3q/godmm/internal/config"
	"github.com/d21d3q/godmm/internal/logging"
	"github.com/d21d3q/godmm/pkg/godmm"
)

type app struct {
	configPath string
	protocol   string
	output     string
	logLevel   string

	cfg    *config.Config
	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "godmm-analyze [hex]...",
		Short:         "Decode DTM0660 multimeter frames",
		Long:          "godmm-analyze decodes 15-byte DTM0660 multimeter frames using the godmm library.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.runInteractive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			}
			for _, arg := range args {
				if err := a.runAnalyze(cmd.Context(), cmd.OutOrStdout(), arg); err != nil {
					return err
				}
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./godmm.yaml or $HOME/.config/godmm/godmm.yaml)")
	flags.StringVar(&a.protocol, "protocol", "", "frame protocol (default from config, dtm0660)")
	flags.StringVarP(&a.output, "output", "o", "", "output format: json, yaml or text")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(a.newCheckCmd(), a.newFileCmd(), newProtocolsCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.protocol != "" {
		cfg.Protocol = a.protocol
	}
	if a.output != "" {
		cfg.Output = a.output
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	logger, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) options() godmm.AnalyzeOptions {
	return godmm.AnalyzeOptions{Protocol: a.cfg.Protocol, Logger: a.logger}
}

func (a *app) runInteractive(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	a.logger.Info("godmm analyze mode. Paste a hex frame and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := a.runAnalyze(ctx, out, line); err != nil {
			a.logger.WithError(err).Error("failed to decode frame")
		}
	}
	return scanner.Err()
}

func (a *app) runAnalyze(ctx context.Context, out io.Writer, hex string) error {
	result, err := godmm.AnalyzeHexWithOptions(ctx, hex, a.options())
	if err != nil {
		return err
	}
	return a.print(out, result)
}

func (a *app) print(out io.Writer, result godmm.Result) error {
	switch a.cfg.Output {
	case config.OutputYAML:
		doc, err := result.YAML()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, "---\n"+doc)
		return err
	case config.OutputText:
		_, err := fmt.Fprintln(out, textLine(result))
		return err
	default:
		_, err := fmt.Fprintln(out, result.String())
		return err
	}
}

func textLine(result godmm.Result) string {
	line := result.Measurement.String()
	var lit []string
	for name, on := range result.Annunciators {
		if on {
			lit = append(lit, name)
		}
	}
	if len(lit) == 0 {
		return line
	}
	sort.Strings(lit)
	return line + " {" + strings.Join(lit, ",") + "}"
}

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <hex>...",
		Short: "Report whether frames are aligned and carry consistent flags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, arg := range args {
				ok := godmm.ValidHex(cmd.Context(), arg, a.options())
				status := "valid"
				if !ok {
					status = "invalid"
					invalid++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", status, arg)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d frames invalid", invalid, len(args))
			}
			return nil
		},
	}
}

func (a *app) newFileCmd() *cobra.Command {
	var skipInvalid bool
	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Decode a file with one hex frame per line (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open frames: %w", err)
				}
				defer f.Close()
				in = f
			}
			return a.runFile(cmd.Context(), in, cmd.OutOrStdout(), skipInvalid)
		},
	}
	cmd.Flags().BoolVar(&skipInvalid, "skip-invalid", true, "log undecodable lines and continue")
	return cmd
}

func (a *app) runFile(ctx context.Context, in io.Reader, out io.Writer, skipInvalid bool) error {
	scanner := bufio.NewScanner(in)
	lineNo, decoded, failed := 0, 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := a.runAnalyze(ctx, out, line); err != nil {
			if !skipInvalid {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			failed++
			a.logger.WithError(err).WithField("line", lineNo).Warn("skipping frame")
			continue
		}
		decoded++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read frames: %w", err)
	}
	a.logger.WithFields(logrus.Fields{"decoded": decoded, "failed": failed}).Info("batch complete")
	return nil
}

func newProtocolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "protocols",
		Short: "List supported frame protocols",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range godmm.Protocols() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
