package ephem

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/logging"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// DefaultStep is the default spacing of tabulated states.
	DefaultStep = time.Hour

	// TableCacheTTL is how long a fetched table is reused.
	TableCacheTTL = 30 * time.Minute

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 30 * time.Second
)

// HorizonsClient fetches barycentric state vectors from JPL Horizons.
type HorizonsClient struct {
	client  *http.Client
	baseURL string
	log     *logging.Logger

	mu    sync.RWMutex
	cache map[tableKey]*cachedTable
}

type tableKey struct {
	body        Body
	start, stop string
	step        string
}

type cachedTable struct {
	table     *Table
	fetchedAt time.Time
}

// NewHorizonsClient creates a Horizons API client. An empty baseURL selects
// HorizonsAPIURL; a nil logger discards.
func NewHorizonsClient(baseURL string, log *logging.Logger) *HorizonsClient {
	if baseURL == "" {
		baseURL = HorizonsAPIURL
	}
	if log == nil {
		log = logging.Discard()
	}
	return &HorizonsClient{
		client:  &http.Client{Timeout: RequestTimeout},
		baseURL: baseURL,
		log:     log.With("component", "horizons"),
		cache:   make(map[tableKey]*cachedTable),
	}
}

// FetchSource fetches tables for the Sun, the Earth and the given bodies
// concurrently and combines them into a Source covering [start, stop].
func (c *HorizonsClient) FetchSource(ctx context.Context, start, stop time.Time, step time.Duration, bodies ...Body) (*Tabulated, error) {
	want := []Body{Sun, EarthBody}
	for _, b := range bodies {
		if b != Sun && b != EarthBody {
			want = append(want, b)
		}
	}

	tables := make([]*Table, len(want))
	g, ctx := errgroup.WithContext(ctx)
	for i, b := range want {
		i, b := i, b
		g.Go(func() error {
			t, err := c.FetchTable(ctx, b, start, stop, step)
			if err != nil {
				return fmt.Errorf("%v: %w", b, err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return NewTabulated(tables...), nil
}

// FetchTable returns the barycentric states of a body between start and stop
// (TDB) at the given step. Results are cached for TableCacheTTL.
func (c *HorizonsClient) FetchTable(ctx context.Context, b Body, start, stop time.Time, step time.Duration) (*Table, error) {
	key := tableKey{
		body:  b,
		start: formatHorizonsTime(start),
		stop:  formatHorizonsTime(stop),
		step:  formatStepSize(step),
	}

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok && time.Since(cached.fetchedAt) < TableCacheTTL {
		return cached.table, nil
	}

	recs, err := c.queryVectors(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no vectors returned for %v", b)
	}
	t := NewTable(b, recs)
	c.log.Debug("fetched vectors", "body", b.String(), "rows", len(recs))

	c.mu.Lock()
	c.cache[key] = &cachedTable{table: t, fetchedAt: time.Now()}
	c.mu.Unlock()

	return t, nil
}

// InvalidateCache drops all cached tables.
func (c *HorizonsClient) InvalidateCache() {
	c.mu.Lock()
	c.cache = make(map[tableKey]*cachedTable)
	c.mu.Unlock()
}

// queryVectors makes a request to the Horizons API.
func (c *HorizonsClient) queryVectors(ctx context.Context, key tableKey) ([]Record, error) {
	// Values must be quoted with single quotes.
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%d'", int(key.body)))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "VECTORS")
	params.Set("CENTER", "'@0'") // Solar-system barycentre
	params.Set("REF_PLANE", "FRAME")
	params.Set("REF_SYSTEM", "ICRF")
	params.Set("VEC_TABLE", "'2'") // Position and velocity
	params.Set("VEC_LABELS", "YES")
	params.Set("VEC_CORR", "NONE")
	params.Set("OUT_UNITS", "'AU-D'")
	params.Set("START_TIME", fmt.Sprintf("'%s'", key.start))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", key.stop))
	params.Set("STEP_SIZE", fmt.Sprintf("'%s'", key.step))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return parseVectorResponse(body)
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// parseVectorResponse parses the Horizons JSON response for vector data.
func parseVectorResponse(body []byte) ([]Record, error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("horizons: %s", strings.TrimSpace(resp.Error))
	}
	return parseVectorTable(resp.Result)
}

// parseVectorTable extracts states from the text between the $$SOE and
// $$EOE markers. Each state looks like:
//
//	2460651.500000000 = A.D. 2024-Dec-05 00:00:00.0000 TDB
//	 X =-1.234567890123456E-01 Y = 8.765432109876543E-01 Z = 3.800000000000000E-01
//	 VX=-1.700000000000000E-02 VY=-2.000000000000000E-03 VZ=-8.700000000000000E-04
func parseVectorTable(result string) ([]Record, error) {
	soeIdx := strings.Index(result, "$$SOE")
	eoeIdx := strings.Index(result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return nil, fmt.Errorf("could not find vector data markers")
	}

	var recs []Record
	var cur Record
	var have int // bit 0 epoch, 1 position, 2 velocity

	flush := func() {
		if have == 7 {
			recs = append(recs, cur)
		}
		cur, have = Record{}, 0
	}

	for _, line := range strings.Split(result[soeIdx+5:eoeIdx], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, "A.D.") || strings.Contains(line, "B.C.") {
			flush()
			jd, err := strconv.ParseFloat(strings.Fields(line)[0], 64)
			if err != nil {
				continue
			}
			cur.JD = jd
			have |= 1
			continue
		}

		vals := parseLabeled(line)
		if x, ok := vals["X"]; ok {
			cur.PV.P = astro.Vec3{X: x, Y: vals["Y"], Z: vals["Z"]}
			have |= 2
		}
		if vx, ok := vals["VX"]; ok {
			cur.PV.V = astro.Vec3{X: vx, Y: vals["VY"], Z: vals["VZ"]}
			have |= 4
		}
	}
	flush()

	if len(recs) == 0 {
		return nil, fmt.Errorf("could not parse vector data")
	}
	return recs, nil
}

// parseLabeled parses "KEY = value" pairs, tolerating missing spaces around
// the equals sign.
func parseLabeled(line string) map[string]float64 {
	fields := strings.Fields(strings.ReplaceAll(line, "=", " = "))
	out := make(map[string]float64, 3)
	for i := 1; i+1 < len(fields); i++ {
		if fields[i] != "=" {
			continue
		}
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err == nil {
			out[fields[i-1]] = v
		}
	}
	return out
}

// formatHorizonsTime formats a time for Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// formatStepSize formats a duration as a Horizons step size.
func formatStepSize(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 1 {
		minutes = 1
	}
	if minutes >= 60 && minutes%60 == 0 {
		return fmt.Sprintf("%d h", minutes/60)
	}
	return fmt.Sprintf("%d m", minutes)
}
