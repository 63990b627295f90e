package main

import(
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"
)

// Config holds every setting of the tool. A JSON file (-config) can supply any of them; flags
// given explicitly on the command line win over the file.
type Config struct {
	In         string  `json:"in"`
	Threshold  string  `json:"threshold"` // a time.Duration, e.g. "10m"
	Resample   string  `json:"resample"`  // blank means don't
	Simplify   float64 `json:"simplify"`  // metres; zero means don't
	Poly       string  `json:"poly"`      // long,lat;long,lat;...
	GeoJSON    string  `json:"geojson"`
	PDF        string  `json:"pdf"`
	InPdt      bool    `json:"pdt"`
	Verbosity  int     `json:"v"`
	LogFile    string  `json:"log"`
	LogLevel   string  `json:"loglevel"`
	Workers    int     `json:"workers"`
}

func (c Config)ThresholdDuration() (time.Duration, error) { return parseDuration(c.Threshold) }
func (c Config)ResampleDuration() (time.Duration, error)  { return parseDuration(c.Resample) }

func parseDuration(s string) (time.Duration, error) {
	if s == "" { return 0, nil }
	d,err := time.ParseDuration(s)
	if err != nil { return 0, fmt.Errorf("bad duration %q: %v", s, err) }
	return d, nil
}

// loadConfigFile overlays the file's settings onto c; fields the file doesn't mention are left
// alone.
func loadConfigFile(path string, c *Config) error {
	b,err := os.ReadFile(path)
	if err != nil { return err }
	if err := json.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config %s: %v", path, err)
	}
	return nil
}

// mergeConfig builds the final config: flag defaults, then the file, then any flags that were
// set explicitly.
func mergeConfig(fs *flag.FlagSet, flags Config, path string) (Config, error) {
	if path == "" { return flags, nil }

	c := flags
	if err := loadConfigFile(path, &c); err != nil { return Config{}, err }

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":        c.In = flags.In
		case "threshold": c.Threshold = flags.Threshold
		case "resample":  c.Resample = flags.Resample
		case "simplify":  c.Simplify = flags.Simplify
		case "poly":      c.Poly = flags.Poly
		case "geojson":   c.GeoJSON = flags.GeoJSON
		case "pdf":       c.PDF = flags.PDF
		case "pdt":       c.InPdt = flags.InPdt
		case "v":         c.Verbosity = flags.Verbosity
		case "log":       c.LogFile = flags.LogFile
		case "loglevel":  c.LogLevel = flags.LogLevel
		case "workers":   c.Workers = flags.Workers
		}
	})
	return c, nil
}
