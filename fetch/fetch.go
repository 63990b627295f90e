// Package fetch gets raw bytes from wherever they live: http(s) URLs, Google Cloud Storage
// (gs://bucket/object) or the local filesystem. Results are cached by URL.
package fetch

import(
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const(
	DefaultCacheSize = 64
	DefaultCacheTTL  = time.Hour
)

type Fetcher struct {
	HTTPClient *http.Client

	// Extra options for the storage client; e.g. option.WithoutAuthentication() for public
	// buckets, or option.WithEndpoint for a test server.
	StorageOptions []option.ClientOption

	cache *expirable.LRU[string, []byte]
}

func NewFetcher(opts ...option.ClientOption) *Fetcher {
	return &Fetcher{
		HTTPClient: http.DefaultClient,
		StorageOptions: opts,
		cache: expirable.NewLRU[string, []byte](DefaultCacheSize, nil, DefaultCacheTTL),
	}
}

// A gs:// URL, split up
type gcsPath struct {
	Bucket, Object string
}

func parseGCS(url string) (gcsPath, error) {
	rest := strings.TrimPrefix(url, "gs://")
	bits := strings.SplitN(rest, "/", 2)
	if len(bits) != 2 || bits[0] == "" {
		return gcsPath{}, fmt.Errorf("fetch: '%s' did not match gs://<bucket>/<object>", url)
	}
	return gcsPath{Bucket:bits[0], Object:bits[1]}, nil
}

// Fetch returns the bytes at one URL. The caller owns them; the cache keeps its own copy.
func (f *Fetcher)Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if b,exists := f.cache.Get(url); exists { return bytes.Clone(b), nil }
	}

	var b []byte
	var err error
	switch {
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		b,err = f.fetchHTTP(ctx, url)
	case strings.HasPrefix(url, "gs://"):
		b,err = f.fetchGCS(ctx, url)
	default:
		b,err = os.ReadFile(strings.TrimPrefix(url, "file://"))
	}
	if err != nil { return nil, err }

	if f.cache != nil { f.cache.Add(url, bytes.Clone(b)) }
	return b, nil
}

// FetchAll is Fetch, except that a gs:// URL ending in a slash is taken to be a prefix, and we
// fetch every object under it (in listing order).
func (f *Fetcher)FetchAll(ctx context.Context, url string) ([][]byte, error) {
	if !strings.HasPrefix(url, "gs://") || !strings.HasSuffix(url, "/") {
		b,err := f.Fetch(ctx, url)
		if err != nil { return nil, err }
		return [][]byte{b}, nil
	}

	names,err := f.ListGCS(ctx, url)
	if err != nil { return nil, err }

	ret := [][]byte{}
	for _,name := range names {
		b,err := f.Fetch(ctx, name)
		if err != nil { return nil, err }
		ret = append(ret, b)
	}
	return ret, nil
}

func (f *Fetcher)fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req,err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil { return nil, err }

	client := f.HTTPClient
	if client == nil { client = http.DefaultClient }
	resp,err := client.Do(req)
	if err != nil { return nil, fmt.Errorf("fetch %s: %w", url, err) }
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (f *Fetcher)fetchGCS(ctx context.Context, url string) ([]byte, error) {
	p,err := parseGCS(url)
	if err != nil { return nil, err }

	client, err := storage.NewClient(ctx, f.StorageOptions...)
	if err != nil { return nil, err }
	defer client.Close()

	rdr,err := client.Bucket(p.Bucket).Object(p.Object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCS-Open %s|%s: %w", p.Bucket, p.Object, err)
	}
	defer rdr.Close()

	return io.ReadAll(rdr)
}

// ListGCS returns a gs:// URL for every object under the prefix.
func (f *Fetcher)ListGCS(ctx context.Context, prefixURL string) ([]string, error) {
	p,err := parseGCS(prefixURL)
	if err != nil { return nil, err }

	client, err := storage.NewClient(ctx, f.StorageOptions...)
	if err != nil { return nil, err }
	defer client.Close()

	q := &storage.Query{ Prefix: p.Object }
	names := []string{}
	it := client.Bucket(p.Bucket).Objects(ctx, q)
	for {
		oa, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("GCS-Readdir [gs://%s]%s': %w", p.Bucket, q.Prefix, err)
		}
		if strings.HasSuffix(oa.Name, "/") { continue } // directory placeholder
		names = append(names, fmt.Sprintf("gs://%s/%s", p.Bucket, oa.Name))
	}
	return names, nil
}
