package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/HerbHall/kartstats/internal/recommend"
	"github.com/HerbHall/kartstats/pkg/models"
)

func runRecommend(args []string) {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	terrain := fs.String("terrain", "", "only print this terrain (road, terrain, water)")
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	terrains := models.Terrains()
	if *terrain != "" {
		t, err := models.ParseTerrain(*terrain)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
		terrains = []models.Terrain{t}
	}

	ctx := context.Background()
	a, err := bootstrap(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	if err := a.hydrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dataset unavailable: %v\n", err)
		os.Exit(1)
	}

	res := a.state.Recommendations()
	if *asJSON {
		err = writeRecommendationsJSON(os.Stdout, res, terrains)
	} else {
		err = writeRecommendations(os.Stdout, res, terrains)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
}

func writeRecommendationsJSON(out io.Writer, res recommend.Result, terrains []models.Terrain) error {
	sel := make(map[models.Terrain][]recommend.Entry, len(terrains))
	for _, t := range terrains {
		sel[t] = res.For(t)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(sel)
}

// writeRecommendations prints one table per terrain.
func writeRecommendations(out io.Writer, res recommend.Result, terrains []models.Terrain) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, t := range terrains {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		sum := res.Summary[t]
		fmt.Fprintf(tw, "%s (pairs %d, mean %.3f, max %.3f)\n", t, sum.Pairs, sum.Mean, sum.Max)
		fmt.Fprintln(tw, "RANK\tCHARACTER\tVEHICLE\tSCORE\tSPD\tHDL\tACC\tWGT")
		for _, e := range res.For(t) {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.3f\t%d\t%d\t%d\t%d\n",
				e.Rank, e.Character.LocalName, e.Vehicle.LocalName, e.Score,
				e.TotalSpeed, e.TotalHandling, e.TotalAcceleration, e.TotalWeight)
		}
	}
	return tw.Flush()
}
