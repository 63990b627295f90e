package traffic

import(
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/skypies/adsb"
)

// Format is our guess at what a payload is, from its first few bytes.
type Format string
const(
	FormatUnknown Format = ""
	FormatGzip    Format = "gzip"
	FormatZstd    Format = "zstd"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatParquet Format = "parquet"
)

// How many layers of compression we'll peel off
const maxCompressionDepth = 2

func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte{0x1f, 0x8b}):
		return FormatGzip
	case bytes.HasPrefix(data, []byte{0x28, 0xb5, 0x2f, 0xfd}):
		return FormatZstd
	case bytes.HasPrefix(data, []byte("PAR1")):
		return FormatParquet
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	if len(data) > 0 && ((data[0] >= 0x90 && data[0] <= 0x9f) || data[0] == 0xdc || data[0] == 0xdd) {
		return FormatMsgpack
	}
	return FormatUnknown
}

// {{{ decodeRows

type row map[string]interface{}

func decodeRows(data []byte, depth int) ([]row, error) {
	switch f := DetectFormat(data); f {
	case FormatGzip, FormatZstd:
		if depth >= maxCompressionDepth {
			return nil, &UnsupportedFormatError{Format:string(f), Reason:"too many layers of compression"}
		}
		plain,err := decompress(f, data)
		if err != nil { return nil, err }
		return decodeRows(plain, depth+1)

	case FormatJSON:
		return decodeJSONRows(data)

	case FormatMsgpack:
		maps := []map[string]interface{}{}
		if err := msgpack.Unmarshal(data, &maps); err != nil {
			return nil, invalidInput("Load", "msgpack: %v", err)
		}
		rows := make([]row, len(maps))
		for i,m := range maps { rows[i] = m }
		return rows, nil

	case FormatParquet:
		return nil, &UnsupportedFormatError{Format:string(f), Reason:"parquet is not decoded"}
	}

	n := len(data)
	if n > 8 { n = 8 }
	return nil, &UnsupportedFormatError{Reason:fmt.Sprintf("unrecognized leading bytes % x", data[:n])}
}

func decompress(f Format, data []byte) ([]byte, error) {
	switch f {
	case FormatGzip:
		gz,err := gzip.NewReader(bytes.NewReader(data))
		if err != nil { return nil, invalidInput("Load", "gzip: %v", err) }
		defer gz.Close()
		plain,err := io.ReadAll(gz)
		if err != nil { return nil, invalidInput("Load", "gzip: %v", err) }
		return plain, nil

	case FormatZstd:
		zr,err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil { return nil, err }
		defer zr.Close()
		plain,err := zr.DecodeAll(data, nil)
		if err != nil { return nil, invalidInput("Load", "zstd: %v", err) }
		return plain, nil
	}
	return nil, &UnsupportedFormatError{Format:string(f), Reason:"not a compression format"}
}

// JSON is either an array of row objects, or an object of equal length columns.
func decodeJSONRows(data []byte) ([]row, error) {
	var top interface{}
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, invalidInput("Load", "json: %v", err)
	}

	switch x := top.(type) {
	case []interface{}:
		rows := make([]row, len(x))
		for i,v := range x {
			m,ok := v.(map[string]interface{})
			if !ok {
				return nil, invalidInput("Load", "row %d: expected an object, got %T", i, v)
			}
			rows[i] = m
		}
		return rows, nil

	case map[string]interface{}:
		n := -1
		for k,v := range x {
			col,ok := v.([]interface{})
			if !ok {
				return nil, invalidInput("Load", "column %q: expected an array, got %T", k, v)
			}
			if n >= 0 && len(col) != n {
				return nil, invalidInput("Load", "column %q has %d values, others have %d", k, len(col), n)
			}
			n = len(col)
		}
		if n < 0 { n = 0 }
		rows := make([]row, n)
		for i := range rows {
			rows[i] = row{}
			for k,v := range x { rows[i][k] = v.([]interface{})[i] }
		}
		return rows, nil
	}

	return nil, invalidInput("Load", "json: top level is %T", top)
}

// }}}
// {{{ rowToReport

func rowToReport(i int, r row) (PositionReport, error) {
	ts,exists := r[ColTimestamp]
	if !exists || ts == nil {
		return PositionReport{}, invalidInput("Load", "row %d: no timestamp", i)
	}
	t,err := MakeInstant(ts, Strict)
	if err != nil {
		return PositionReport{}, invalidInput("Load", "row %d: %v", i, err)
	}

	rep := PositionReport{Timestamp:t, Latlong:NoPosition()}

	numeric := func(col string) (float64, error) {
		v := r[col]
		if v == nil { return math.NaN(), nil }
		f,ok := toFloat64(v)
		if !ok {
			return 0, invalidInput("Load", "row %d: %s is %T, not a number", i, col, v)
		}
		return f, nil
	}
	str := func(col string) (string, error) {
		v := r[col]
		if v == nil { return "", nil }
		s,ok := v.(string)
		if !ok {
			return "", invalidInput("Load", "row %d: %s is %T, not a string", i, col, v)
		}
		return strings.TrimSpace(s), nil
	}

	if rep.Lat,err = numeric(ColLatitude); err != nil { return rep, err }
	if rep.Long,err = numeric(ColLongitude); err != nil { return rep, err }
	if rep.Altitude,err = numeric(ColAltitude); err != nil { return rep, err }
	var icao string
	if icao,err = str(ColIcao24); err != nil { return rep, err }
	rep.IcaoId = adsb.IcaoId(icao)
	if rep.Callsign,err = str(ColCallsign); err != nil { return rep, err }

	for k,v := range r {
		switch k {
		case ColTimestamp, ColLatitude, ColLongitude, ColAltitude, ColIcao24, ColCallsign:
			continue
		}
		if rep.Extra == nil { rep.Extra = map[string]interface{}{} }
		if f,ok := toFloat64(v); ok {
			v = f
		}
		rep.Extra[k] = v
	}
	return rep, nil
}

// TableFromRows converts decoded records (one map per report) into a table.
func TableFromRows(rows []map[string]interface{}) (Table, error) {
	t := make(Table, 0, len(rows))
	for i,r := range rows {
		rep,err := rowToReport(i, r)
		if err != nil { return nil, err }
		t = append(t, rep)
	}
	return t, nil
}

// TableFromBytes sniffs and decodes a payload.
func TableFromBytes(data []byte) (Table, error) {
	rows,err := decodeRows(data, 0)
	if err != nil { return nil, err }
	maps := make([]map[string]interface{}, len(rows))
	for i,r := range rows { maps[i] = r }
	return TableFromRows(maps)
}

// }}}
// {{{ Load, LoadFile, LoadURL

// Load decodes a payload and hands the table to build; the builder decides what kind of thing
// (Flight, Traffic, ...) comes out.
func Load[T any](data []byte, build func(Table) T) (T, error) {
	t,err := TableFromBytes(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return build(t), nil
}

func LoadFile[T any](path string, build func(Table) T) (T, error) {
	data,err := os.ReadFile(path)
	if err != nil {
		var zero T
		return zero, err
	}
	return Load(data, build)
}

// A Source gets payloads by URL; fetch.Fetcher is one. A URL may stand for many payloads
// (e.g. a storage prefix).
type Source interface {
	FetchAll(ctx context.Context, url string) ([][]byte, error)
}

// LoadURL decodes every payload behind the URL, and builds from their concatenation.
func LoadURL[T any](ctx context.Context, src Source, url string, build func(Table) T) (T, error) {
	var zero T
	payloads,err := src.FetchAll(ctx, url)
	if err != nil { return zero, err }

	all := Table{}
	for i,data := range payloads {
		t,err := TableFromBytes(data)
		if err != nil { return zero, fmt.Errorf("%s [payload %d]: %w", url, i, err) }
		all = append(all, t...)
	}
	return build(all), nil
}

// }}}

func FlightFromRows(rows []map[string]interface{}) (*Flight, error) {
	t,err := TableFromRows(rows)
	if err != nil { return nil, err }
	return &Flight{reports: t}, nil
}
func TrafficFromRows(rows []map[string]interface{}) (*Traffic, error) {
	t,err := TableFromRows(rows)
	if err != nil { return nil, err }
	return &Traffic{reports: t}, nil
}

func FlightFromBytes(data []byte) (*Flight, error)   { return Load(data, NewFlight) }
func TrafficFromBytes(data []byte) (*Traffic, error) { return Load(data, NewTraffic) }

func TrafficFromURL(ctx context.Context, src Source, url string) (*Traffic, error) {
	return LoadURL(ctx, src, url, NewTraffic)
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
