package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rustyeddy/swing/market"
	"github.com/rustyeddy/swing/options"
)

// fileProviders reads already-fetched market data from the data
// directory:
//
//	bars/<TICKER>.json    - OHLCV history, oldest first
//	chains/<TICKER>.json  - option chain per expiration
//	context.json          - benchmark change and volatility index
//	quotes.json           - spot prices and option mids
//
// A separate fetch pipeline keeps these files current; the CLI only
// consumes them.
type fileProviders struct {
	dir string
}

func newFileProviders(dir string) *fileProviders {
	return &fileProviders{dir: dir}
}

func (fp *fileProviders) Series(ticker string, bars int) (market.Series, error) {
	path := filepath.Join(fp.dir, "bars", strings.ToUpper(ticker)+".json")
	var series market.Series
	if err := readJSONFile(path, &series); err != nil {
		return nil, err
	}
	return series.Tail(bars), nil
}

type contextFile struct {
	BenchmarkChangePct float64 `json:"benchmark_change_pct"`
	VolatilityIndex    float64 `json:"volatility_index"`
}

func (fp *fileProviders) Context() (market.Context, error) {
	var cf contextFile
	if err := readJSONFile(filepath.Join(fp.dir, "context.json"), &cf); err != nil {
		return market.Context{}, err
	}
	return market.Classify(cf.BenchmarkChangePct, cf.VolatilityIndex), nil
}

type chainFile struct {
	Expirations []chainExpiration `json:"expirations"`
}

type chainExpiration struct {
	Date  string              `json:"date"` // 2006-01-02
	Calls []options.Candidate `json:"calls"`
	Puts  []options.Candidate `json:"puts"`
}

func (fp *fileProviders) chainFile(ticker string) (*chainFile, error) {
	path := filepath.Join(fp.dir, "chains", strings.ToUpper(ticker)+".json")
	var cf chainFile
	if err := readJSONFile(path, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

func (fp *fileProviders) Expirations(ticker string) ([]time.Time, error) {
	cf, err := fp.chainFile(ticker)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(cf.Expirations))
	for _, e := range cf.Expirations {
		t, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			return nil, fmt.Errorf("bad expiration %q for %s: %w", e.Date, ticker, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (fp *fileProviders) Chain(ticker string, expiration time.Time) ([]options.Candidate, []options.Candidate, error) {
	cf, err := fp.chainFile(ticker)
	if err != nil {
		return nil, nil, err
	}
	want := expiration.Format("2006-01-02")
	for _, e := range cf.Expirations {
		if e.Date == want {
			return e.Calls, e.Puts, nil
		}
	}
	return nil, nil, fmt.Errorf("no chain for %s exp %s", ticker, want)
}

type quotesFile struct {
	Spots   map[string]float64 `json:"spots"`   // ticker -> price
	Options map[string]float64 `json:"options"` // "TICKER|2006-01-02|170|call" -> mid
}

func (fp *fileProviders) quotes() (*quotesFile, error) {
	var qf quotesFile
	if err := readJSONFile(filepath.Join(fp.dir, "quotes.json"), &qf); err != nil {
		return nil, err
	}
	return &qf, nil
}

func (fp *fileProviders) OptionMid(ticker string, expiration time.Time, strike float64, optType string) (float64, error) {
	qf, err := fp.quotes()
	if err != nil {
		return 0, err
	}
	key := fmt.Sprintf("%s|%s|%g|%s", strings.ToUpper(ticker), expiration.Format("2006-01-02"), strike, optType)
	mid, ok := qf.Options[key]
	if !ok {
		return 0, fmt.Errorf("no quote for %s", key)
	}
	return mid, nil
}

func (fp *fileProviders) SpotPrice(ticker string) (float64, error) {
	qf, err := fp.quotes()
	if err != nil {
		return 0, err
	}
	spot, ok := qf.Spots[strings.ToUpper(ticker)]
	if !ok {
		return 0, fmt.Errorf("no spot price for %s", ticker)
	}
	return spot, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
