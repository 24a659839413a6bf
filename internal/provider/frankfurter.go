package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"forex-signalsv1/internal/model"
)

const defaultBaseURL = "https://api.frankfurter.app"

// Frankfurter fetches daily reference rates from the Frankfurter API.
// Rates are daily closes only, so every bar carries the same OHLC value
// and zero volume.
type Frankfurter struct {
	baseURL string
	client  *http.Client
}

// NewFrankfurter creates a Frankfurter provider. baseURL overrides the
// public API endpoint; pass "" for the default.
func NewFrankfurter(baseURL string) *Frankfurter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Frankfurter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type ratesResponse struct {
	Rates map[string]map[string]float64 `json:"rates"`
}

// Series fetches the rate history covering periods bars of the given
// timeframe, ending now. Returns the most recent periods bars available.
func (f *Frankfurter) Series(ctx context.Context, pair, timeframe string, periods int) (model.PriceSeries, error) {
	if len(pair) < 6 {
		return nil, fmt.Errorf("frankfurter: invalid pair %q", pair)
	}
	base, quote := pair[:3], pair[len(pair)-3:]

	minutes := Timeframes["1h"]
	if m, ok := Timeframes[timeframe]; ok {
		minutes = m
	}
	end := time.Now().UTC()
	start := end.Add(-time.Duration(minutes*periods) * time.Minute)

	url := fmt.Sprintf("%s/%s..%s?from=%s&to=%s",
		f.baseURL, start.Format("2006-01-02"), end.Format("2006-01-02"), base, quote)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("frankfurter: create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("frankfurter: fetch %s: %w", pair, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("frankfurter: unexpected status %d for %s", resp.StatusCode, pair)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("frankfurter: decode: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("frankfurter: no rates for %s", pair)
	}

	dates := make([]string, 0, len(body.Rates))
	for d := range body.Rates {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	series := make(model.PriceSeries, 0, len(dates))
	for _, d := range dates {
		rate, ok := body.Rates[d][quote]
		if !ok {
			continue
		}
		ts, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		series = append(series, model.Bar{
			TS:    ts.UTC(),
			Open:  rate,
			High:  rate,
			Low:   rate,
			Close: rate,
		})
	}

	if len(series) > periods {
		series = series[len(series)-periods:]
	}
	return series, nil
}
