package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tagplot/adapters/loader"
	"tagplot/app"
	"tagplot/domain/series"
	"tagplot/internal"
	"tagplot/internal/config"
	"tagplot/ports"
	"tagplot/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	// Environment overrides are folded into the flag defaults, so flags
	// given on the command line always win.
	_ = godotenv.Load()
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:   "tagplot",
		Short: "Create a dashboard from a tabular time-series file (csv, parquet etc.)",
		Long: "tagplot loads a per-ticker time-series table, lets you pick a column, and " +
			"serves a line chart with moving averages, a histogram, and summary statistics.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.Filename, "filename", "f", cfg.Filename, "Location of the data file")
	cmd.Flags().StringVar(&cfg.Filetype, "filetype", cfg.Filetype, "Type of the data file (csv, tsv, excel, parquet, json)")
	cmd.Flags().StringArrayVar(&cfg.ReadKwargs, "read-kwargs", cfg.ReadKwargs, "Additional reader options as key=value tokens")
	cmd.Flags().StringVar(&cfg.FeatureAliases, "feature-aliases", cfg.FeatureAliases, "Path to a JSON object mapping column names to descriptions")
	cmd.Flags().BoolVar(&cfg.Describe, "describe", cfg.Describe, "Include the descriptive-statistics panel")
	cmd.Flags().IntVarP(&cfg.Port, "port", "p", cfg.Port, "Port to launch the dashboard on")
	cmd.Flags().Float64Var(&cfg.SampleRate, "sample_rate", cfg.SampleRate, "Fraction of rows randomly retained, in (0.0, 1.0]")
	cmd.Flags().IntVarP(&cfg.WebsocketOrigin, "websocket-origin", "w", cfg.WebsocketOrigin, "Websocket origin port to allow (useful for running remotely)")
	cmd.Flags().StringVar(&cfg.Notes, "notes", cfg.Notes, "Optional markdown file rendered into the notes panel")

	return cmd
}

func run(cfg config.Config) error {
	log := internal.DefaultLogger

	if err := cfg.Validate(); err != nil {
		return err
	}

	readKwargs, err := loader.ParseKwargs(cfg.ReadKwargs)
	if err != nil {
		return err
	}

	var (
		reader     ports.FrameReader = loader.Reader{}
		frame      *series.Frame
		rawAliases map[string]interface{}
	)
	var group errgroup.Group
	group.Go(func() error {
		var err error
		frame, err = reader.Read(cfg.Filename, cfg.Filetype, readKwargs)
		return err
	})
	group.Go(func() error {
		var err error
		rawAliases, err = loadAliases(cfg.FeatureAliases)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}
	log.Info("loaded %s: %d rows, %d numeric columns", cfg.Filename, frame.NumRows(), frame.NumColumns())

	panel, err := app.NewPanel(frame, rawAliases,
		app.WithDescribe(cfg.Describe),
		app.WithSampleRate(cfg.SampleRate),
	)
	if err != nil {
		return err
	}

	uiApp, err := ui.NewApp(panel, ui.Config{
		WebsocketOrigin: cfg.WebsocketOrigin,
		NotesPath:       cfg.Notes,
	})
	if err != nil {
		return err
	}

	host, err := ui.Deploy(uiApp.Router(), cfg.Port)
	if err != nil {
		return err
	}
	log.Info("dashboard %s hosted on port %d", host.ID, host.Port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("%s", host.Stop())
	return nil
}

// loadAliases reads the optional feature-aliases JSON file. No path means no
// raw mapping, which the sanitizer turns into the identity mapping.
func loadAliases(path string) (map[string]interface{}, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feature aliases %s: %w", path, err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing feature aliases %s: %w", path, err)
	}
	return raw, nil
}
