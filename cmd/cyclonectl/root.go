package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/storm-data-cyclone-service/internal/adapter/jtwc"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/adapter/markup"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/config"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/domain"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/observability"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/tracker"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagFeedURL string
	flagTimeout time.Duration
	flagOutput  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:          "cyclonectl",
	Short:        "Inspect active tropical cyclones from the JTWC feed",
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		switch flagOutput {
		case "json", "yaml":
			return nil
		default:
			return fmt.Errorf("invalid --output %q: must be json or yaml", flagOutput)
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every active cyclone with its track",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		listing, err := newService().List(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), flagOutput, listing)
	},
}

var getCmd = &cobra.Command{
	Use:   "get [code]",
	Short: "Show one cyclone by code, or all cyclones when no code is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newService()
		if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
			listing, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), flagOutput, listing)
		}
		rec, err := svc.Get(cmd.Context(), strings.ToUpper(strings.TrimSpace(args[0])))
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), flagOutput, rec)
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Parse a downloaded bulletin and print its track",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		track, err := domain.ParseBulletin(domain.NewGrammar(), text)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), flagOutput, track)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFeedURL, "feed-url", sharedcfg.EnvOrDefault("FEED_URL", config.DefaultFeedURL), "JTWC RSS feed URL")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 15*time.Second, "per-request HTTP timeout")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "json", "output format (json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log fetch progress to stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(parseCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newService() *tracker.Service {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	metrics := observability.NewMetricsForTesting()

	client := jtwc.NewClient(flagFeedURL, flagTimeout, metrics, logger)
	return tracker.NewService(client, client, markup.NewHTMLLinks(), clockwork.NewRealClock(), logger, metrics, 4)
}

func readInput(stdin io.Reader, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read bulletin %s: %w", name, err)
	}
	return string(data), nil
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
