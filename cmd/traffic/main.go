// traffic loads position reports, cuts them into flights, and summarizes / exports them.
//
//   traffic -in data.json.gz -threshold 10m -resample 10s -geojson out.json
//   traffic -in gs://bucket/2024/07/ -poly '-122.5,37.4;-122.2,37.4;-122.2,37.7' -pdf out.pdf
package main

import(
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/skypies/util/date"
	"github.com/skypies/util/histogram"

	"github.com/skypies/traffic"
	"github.com/skypies/traffic/fetch"
	"github.com/skypies/traffic/fpdf"
)

var(
	ctx = context.Background()
	fFlags Config
	fConfigFile string
)

func init() {
	flag.StringVar(&fFlags.In, "in", "", "input: a file, http(s) URL, gs://bucket/object or gs://bucket/prefix/")
	flag.StringVar(&fFlags.Threshold, "threshold", traffic.DefaultSplitThreshold.String(),
		"split flights at gaps longer than this")
	flag.StringVar(&fFlags.Resample, "resample", "", "resample each flight at this interval (e.g. 10s)")
	flag.Float64Var(&fFlags.Simplify, "simplify", 0, "Douglas-Peucker tolerance, in metres")
	flag.StringVar(&fFlags.Poly, "poly", "", "only flights intersecting this polygon (long,lat;long,lat;...)")
	flag.StringVar(&fFlags.GeoJSON, "geojson", "", "write a GeoJSON FeatureCollection here")
	flag.StringVar(&fFlags.PDF, "pdf", "", "write a PDF of the flights here")
	flag.BoolVar(&fFlags.InPdt, "pdt", false, "show timestamps in PDT")
	flag.IntVar(&fFlags.Verbosity, "v", 0, "verbosity level")
	flag.StringVar(&fFlags.LogFile, "log", "", "log to this file (rotated), instead of stderr")
	flag.StringVar(&fFlags.LogLevel, "loglevel", "info", "debug, info, warn or error")
	flag.IntVar(&fFlags.Workers, "workers", 0, "parallel workers; 0 means one per CPU")
	flag.StringVar(&fConfigFile, "config", "", "JSON config file; explicit flags override it")
}

func load(c Config, lg *slog.Logger) (*traffic.Traffic, error) {
	if strings.Contains(c.In, "://") {
		lg.Info("fetching", "url", c.In)
		return traffic.TrafficFromURL(ctx, fetch.NewFetcher(), c.In)
	}
	lg.Info("reading", "file", c.In)
	return traffic.LoadFile(c.In, traffic.NewTraffic)
}

// process is run on each segment, in parallel. A nil flight (and no error) means skip it.
func process(c Config, poly traffic.Polygon, interval time.Duration) func(context.Context, *traffic.Flight) (*traffic.Flight, error) {
	return func(ctx context.Context, f *traffic.Flight) (*traffic.Flight, error) {
		if len(poly) > 0 && !f.Intersects(poly) { return nil, nil }

		var err error
		if interval > 0 && f.Len() > 1 && f.Duration() > 0 {
			if f,err = f.Resample(interval); err != nil { return nil, err }
		}
		if c.Simplify > 0 {
			simplified,err := f.Simplify(c.Simplify, nil)
			if err == nil {
				f = simplified
			} else if !errors.Is(err, traffic.ErrInvalidInput) {
				return nil, err
			}
		}
		return f, nil
	}
}

func timeString(c Config, t time.Time) string {
	if c.InPdt { t = date.InPdt(t) }
	return t.Format("2006/01/02 15:04:05 MST")
}

func summarize(c Config, flights []*traffic.Flight) string {
	h := histogram.NewSet(10000)
	dur := histogram.Histogram{ValMin:0, ValMax:240, NumBuckets:24} // minutes

	str := ""
	for i,f := range flights {
		h.RecordValue("points", int64(f.Len()))
		dur.Add(histogram.ScalarVal(f.Duration().Minutes()))
		str += fmt.Sprintf("[%3d] %-18.18s %-8.8s %s +%-10s %5dpts\n", i, f.IdSpec(), f.Callsign(),
			timeString(c, f.Start()), f.Duration().Round(time.Second), f.Len())
		if c.Verbosity > 1 {
			for _,r := range f.Reports() { str += fmt.Sprintf("       %s\n", r) }
		}
	}
	str += fmt.Sprintf("\n%d flights\nDurations (minutes): %s\nStats:-\n%s", len(flights), dur, h)
	return str
}

func writeGeoJSON(path string, flights []*traffic.Flight) error {
	fc := geojson.NewFeatureCollection()
	for _,f := range flights {
		if feat := f.Feature(traffic.DefaultRollup); feat != nil {
			fc.AddFeature(feat)
		}
	}
	b,err := fc.MarshalJSON()
	if err != nil { return err }
	return os.WriteFile(path, b, 0644)
}

func writePDF(path string, flights []*traffic.Flight) error {
	out,err := os.Create(path)
	if err != nil { return err }
	defer out.Close()
	return fpdf.WriteFlights(out, flights)
}

func main() {
	flag.Parse()
	c,err := mergeConfig(flag.CommandLine, fFlags, fConfigFile)
	if err != nil { log.Fatal(err) }
	if c.In == "" && len(flag.Args()) > 0 { c.In = flag.Arg(0) }
	if c.In == "" { log.Fatal("usage: traffic -in <file|url> [flags]") }

	lg,closer,err := newLogger(c.LogFile, c.LogLevel)
	if err != nil { log.Fatal(err) }
	defer closer.Close()

	threshold,err := c.ThresholdDuration()
	if err != nil { log.Fatal(err) }
	interval,err := c.ResampleDuration()
	if err != nil { log.Fatal(err) }

	var poly traffic.Polygon
	if c.Poly != "" {
		if poly,err = traffic.ParsePolygon(c.Poly); err != nil { log.Fatal(err) }
	}

	tStart := time.Now()
	tr,err := load(c, lg)
	if err != nil { log.Fatal(err) }
	lg.Info("loaded", "reports", tr.Len(), "aircraft", len(tr.Aircraft()), "elapsed", time.Since(tStart))

	results,err := traffic.Map(ctx, tr, threshold, c.Workers, process(c, poly, interval))
	if err != nil { log.Fatal(err) }

	flights := []*traffic.Flight{}
	for _,f := range results {
		if f != nil { flights = append(flights, f) }
	}
	lg.Info("processed", "flights", len(flights), "segments", len(results), "elapsed", time.Since(tStart))

	fmt.Print(summarize(c, flights))

	if c.GeoJSON != "" {
		if err := writeGeoJSON(c.GeoJSON, flights); err != nil { log.Fatal(err) }
		lg.Info("wrote geojson", "file", c.GeoJSON)
	}
	if c.PDF != "" {
		if err := writePDF(c.PDF, flights); err != nil { log.Fatal(err) }
		lg.Info("wrote pdf", "file", c.PDF)
	}
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
