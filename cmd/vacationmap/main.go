// Command vacationmap renders the travel log headlessly and prints what the
// map would show for a given filter selection.
//
// Usage:
//
//	go run ./cmd/vacationmap -base http://localhost:5000 -years 2023,2024
//
// The base URL can also come from VACATIONMAP_BASE_URL, read from the
// environment or a .env file in the working directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/andreiashu/vacationmap"
	"github.com/andreiashu/vacationmap/internal/logging"
)

func main() {
	_ = godotenv.Load(".env")

	base := flag.String("base", os.Getenv("VACATIONMAP_BASE_URL"), "backend base URL")
	folders := flag.String("folders", "", "comma-separated vacation folders to select")
	years := flag.String("years", "", "comma-separated years to toggle on")
	all := flag.Bool("all", false, "toggle every year on")
	activities := flag.String("activities", "", "comma-separated activity filter (default: all)")
	participants := flag.String("participants", "", "comma-separated participant filter (default: all)")
	simplify := flag.Float64("simplify", 0, "route simplification tolerance in degrees (0: off)")
	facetsOnly := flag.Bool("facets", false, "print the filter options and legend, then exit")
	level := flag.String("log-level", "", "debug, info, warn or error (default: $LOG_LEVEL or info)")
	logFile := flag.String("log-file", "", "write logs to a rotated file instead of stderr")
	timeout := flag.Duration("timeout", 0, "per-request timeout (0: none)")
	flag.Parse()

	if err := run(os.Stdout, options{
		base:         *base,
		folders:      splitList(*folders),
		years:        splitList(*years),
		all:          *all,
		activities:   splitList(*activities),
		participants: splitList(*participants),
		simplify:     *simplify,
		facetsOnly:   *facetsOnly,
		level:        *level,
		logFile:      *logFile,
		timeout:      *timeout,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	base         string
	folders      []string
	years        []string
	all          bool
	activities   []string
	participants []string
	simplify     float64
	facetsOnly   bool
	level        string
	logFile      string
	timeout      time.Duration
}

func run(w io.Writer, o options) error {
	if o.base == "" {
		return fmt.Errorf("no backend URL: pass -base or set VACATIONMAP_BASE_URL")
	}
	log, err := logging.New(o.level, "", o.logFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []vacationmap.Option{
		vacationmap.WithBaseURL(o.base),
		vacationmap.WithHTTPClient(&http.Client{Timeout: o.timeout}),
		vacationmap.WithLogger(log),
		vacationmap.WithSimplifyTolerance(o.simplify),
	}

	vs, err := vacationmap.NewClient(opts...).Vacations(ctx)
	if err != nil {
		return fmt.Errorf("loading vacations: %w", err)
	}
	if err := vacationmap.Validate(vs); err != nil {
		log.Warn("vacation data has problems", "err", err)
	}
	log.Info("vacations loaded", "count", len(vs))

	facets := vacationmap.BuildFacets(vs)
	if o.facetsOnly {
		printFacets(w, facets)
		return nil
	}

	st := vacationmap.NewFilterState(facets)
	if err := applySelection(st, o); err != nil {
		return err
	}

	m := vacationmap.NewMemoryMap(1280, 800)
	r, err := vacationmap.NewRenderer(m, opts...)
	if err != nil {
		return err
	}
	res := r.Render(ctx, vacationmap.Filter(vs, st.Snapshot())).Wait()
	printPass(w, m, res)
	return nil
}

// applySelection mirrors the sidebar right after load: every activity and
// participant checked, then the requested toggles.
func applySelection(st *vacationmap.FilterState, o options) error {
	if len(o.activities) == 0 {
		st.SelectAllActivities()
	}
	for _, a := range o.activities {
		st.SetActivity(a, true)
	}
	if len(o.participants) == 0 {
		st.SelectAllParticipants()
	}
	for _, p := range o.participants {
		st.SetParticipant(p, true)
	}
	if o.all {
		st.ToggleAll()
	}
	for _, y := range o.years {
		year, err := strconv.Atoi(y)
		if err != nil {
			return fmt.Errorf("invalid year %q: %w", y, err)
		}
		st.ToggleYear(year)
	}
	for _, f := range o.folders {
		st.SetFolder(f, true)
	}
	return nil
}

func printFacets(w io.Writer, f vacationmap.Facets) {
	fmt.Fprintln(w, "Years:")
	for _, g := range f.Years {
		fmt.Fprintf(w, "  %d\n", g.Year)
		for _, v := range g.Vacations {
			fmt.Fprintf(w, "    %-24s %s\n", v.Folder, v.Destination)
		}
	}
	fmt.Fprintf(w, "Activities: %s\n", strings.Join(f.Activities, ", "))
	fmt.Fprintf(w, "Participants: %s\n", strings.Join(f.Participants, ", "))
	fmt.Fprintln(w, "Legend:")
	for _, e := range vacationmap.Legend() {
		fmt.Fprintf(w, "  %-12s %s\n", e.Activity, e.Color)
	}
}

func printPass(w io.Writer, m *vacationmap.MemoryMap, res vacationmap.PassResult) {
	fmt.Fprintf(w, "Pass %d: %d markers, %d routes, %d failed\n",
		res.Generation, res.Markers, res.Routes, res.Failed)
	for _, o := range m.Overlays() {
		fmt.Fprintf(w, "  %-6s %-7s %-20s %s\n", o.Kind, o.Style.Color, o.Folder, o.Source)
	}
	if !res.Fitted {
		fmt.Fprintln(w, "Viewport unchanged")
		return
	}
	lo, hi := res.Region.Lo(), res.Region.Hi()
	fmt.Fprintf(w, "Viewport: [%.5f, %.5f] - [%.5f, %.5f] zoom %d\n",
		lo.Lat.Degrees(), lo.Lng.Degrees(), hi.Lat.Degrees(), hi.Lng.Degrees(), m.Zoom())
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
