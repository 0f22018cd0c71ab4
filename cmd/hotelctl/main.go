package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/application/usecase"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/search"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/infrastructure/adapter"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/infrastructure/config"
	"github.com/victoragudo/hotel-management-system/hotel-search/pkg/logger"
)

var (
	version    = "dev"
	jsonOutput bool
	configDir  string
	logLevel   string
	timeout    time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hotelctl",
		Short: "Query the hotel search index from the command line",
		Long: `hotelctl runs the same searches as the hotel search API directly
against the configured Elasticsearch cluster.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory containing config.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOutput {
				printJSON(map[string]string{"version": version})
			} else {
				fmt.Printf("hotelctl %s\n", version)
			}
		},
	})

	rootCmd.AddCommand(newSearchCmd(), newFiltersCmd(), newHealthCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type filterFlags struct {
	filter   search.Filter
	minPrice int
	maxPrice int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.filter.Key, "key", "k", "", "Keyword matched against all text fields")
	flags.StringVar(&f.filter.City, "city", "", "City")
	flags.StringVar(&f.filter.StarName, "star", "", "Star name, exact")
	flags.StringVar(&f.filter.Brand, "brand", "", "Brand, exact")
	flags.IntVar(&f.minPrice, "min-price", 0, "Minimum price, only applied together with --max-price")
	flags.IntVar(&f.maxPrice, "max-price", 0, "Maximum price, only applied together with --min-price")
}

func (f *filterFlags) build(cmd *cobra.Command) search.Filter {
	filter := f.filter
	if cmd.Flags().Changed("min-price") {
		filter.MinPrice = &f.minPrice
	}
	if cmd.Flags().Changed("max-price") {
		filter.MaxPrice = &f.maxPrice
	}
	return filter
}

func newSearchCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search hotels",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, log, err := connect()
			if err != nil {
				return err
			}
			defer engine.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			result, err := usecase.NewSearchHotelsUseCase(engine, log).Execute(ctx, flags.build(cmd))
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(result)
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCITY\tBRAND\tSTAR\tPRICE\tSCORE\tAD\tDISTANCE")
			for _, h := range result.Hotels {
				distance := "-"
				if h.Distance != nil {
					distance = fmt.Sprintf("%.2f km", *h.Distance)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%t\t%s\n",
					h.ID, h.Name, h.City, h.Brand, h.StarName, h.Price, h.Score, h.IsAD, distance)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\n%d of %d hotels", len(result.Hotels), result.Total)
			if result.Skipped > 0 {
				fmt.Printf(" (%d undecodable hits skipped)", result.Skipped)
			}
			fmt.Println()
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.filter.Location, "location", "", `Sort by distance from "lat,lon"`)
	cmd.Flags().StringVar(&flags.filter.SortBy, "sort-by", search.SortByDefault, "default, score or price")
	cmd.Flags().IntVar(&flags.filter.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&flags.filter.Size, "size", search.DefaultPageSize, "Page size")

	return cmd
}

func newFiltersCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List the brands, cities and star names of matching hotels",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, log, err := connect()
			if err != nil {
				return err
			}
			defer engine.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			facets, err := usecase.NewGetHotelFiltersUseCase(engine, log).Execute(ctx, flags.build(cmd))
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(facets)
				return nil
			}

			for _, facet := range search.FacetOrder {
				fmt.Printf("%s (%d): %s\n", facet, len(facets[facet]), strings.Join(facets[facet], ", "))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the search engine cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := connect()
			if err != nil {
				return err
			}
			defer engine.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			err = engine.HealthCheck(ctx)
			if jsonOutput {
				result := map[string]interface{}{"ok": err == nil}
				if err != nil {
					result["error"] = err.Error()
				}
				printJSON(result)
			} else if err == nil {
				fmt.Println("search engine: up")
			}
			return err
		},
	}
}

func connect() (*adapter.ElasticsearchAdapter, *slog.Logger, error) {
	log := logger.SetupLogger(logLevel)

	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, err
	}

	engine, err := adapter.NewElasticsearchAdapterFromConfig(cfg.Elasticsearch, log)
	if err != nil {
		return nil, nil, err
	}
	return engine, log, nil
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}
