package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/angas/elexon-forecast/config"
	"github.com/angas/elexon-forecast/elexon"
	"github.com/angas/elexon-forecast/forecast"
	"github.com/angas/elexon-forecast/halfhour"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		start      string
		end        string
		business   string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:     "forecast",
		Short:   "Print the aligned Elexon solar and wind forecasts",
		Long:    "Fetches every process type for the given dates and prints one row per half hour. Missing values are shown as -.",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cnfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := halfhour.SetGuiTimezone(cnfg.Gui.Timezone); err != nil {
				return err
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.Kitchen}))

			businessTypes, err := parseBusiness(business)
			if err != nil {
				return err
			}

			today := halfhour.Today()
			startDate, err := dateOrDefault(start, today.AddDate(0, 0, -1))
			if err != nil {
				return err
			}
			endDate, err := dateOrDefault(end, today.AddDate(0, 0, 1))
			if err != nil {
				return err
			}

			palette, err := forecast.PaletteFromConfig(cnfg.Gui.Colors)
			if err != nil {
				return err
			}

			src := elexon.New(logger.With("module", "elexon"), cnfg.Elexon.BaseURL, cnfg.Elexon.ApiKey, cnfg.Elexon.Timeout)
			svc := forecast.NewService(logger.With("module", "forecast"), src, forecast.Options{
				Location: halfhour.GuiLocation(),
				Timeout:  cnfg.Elexon.Timeout,
				Workers:  cnfg.Elexon.Workers,
				Palette:  palette,
			}, nil)

			res, err := svc.RequestForecast(cmd.Context(), startDate, endDate)
			if err != nil {
				return err
			}

			for _, d := range res.Diagnostics {
				fmt.Fprintln(cmd.ErrOrStderr(), d)
			}
			for _, bt := range businessTypes {
				if err := printTable(cmd.OutOrStdout(), bt, res); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file (default: built-in defaults)")
	cmd.Flags().StringVar(&start, "start", "", "start date, YYYY-MM-DD (default: yesterday)")
	cmd.Flags().StringVar(&end, "end", "", "end date, YYYY-MM-DD (default: tomorrow)")
	cmd.Flags().StringVar(&business, "business", "all", "business type: solar, wind or all")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	return cmd
}

func loadConfig(path string) (*config.AppConfig, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

func dateOrDefault(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	return halfhour.ParseDate(s, halfhour.GuiLocation())
}

func parseBusiness(s string) ([]forecast.BusinessType, error) {
	switch s {
	case "all", "":
		return forecast.BusinessTypes(), nil
	case "solar":
		return []forecast.BusinessType{forecast.Solar}, nil
	case "wind":
		return []forecast.BusinessType{forecast.Wind}, nil
	default:
		return nil, fmt.Errorf("unknown business type %q", s)
	}
}
