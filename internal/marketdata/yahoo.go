package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"pmcc-analyzer/internal/errors"
	"pmcc-analyzer/internal/models"
	"pmcc-analyzer/pkg/utils"
)

const defaultYahooBaseURL = "https://query2.finance.yahoo.com"

// YahooClient fetches spot prices and option chains from the Yahoo
// Finance options endpoint.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
	retryCfg   utils.RetryConfig
	userAgent  string
}

// YahooOption configures a YahooClient.
type YahooOption func(*YahooClient)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(base string) YahooOption {
	return func(c *YahooClient) { c.baseURL = base }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) YahooOption {
	return func(c *YahooClient) { c.httpClient = hc }
}

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(cfg utils.RetryConfig) YahooOption {
	return func(c *YahooClient) { c.retryCfg = cfg }
}

// NewYahooClient creates a Yahoo Finance market-data client.
func NewYahooClient(opts ...YahooOption) *YahooClient {
	c := &YahooClient{
		baseURL:    defaultYahooBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		retryCfg:   utils.DefaultRetryConfig(),
		userAgent:  "pmcc-analyzer/0.1",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// optionsResponse mirrors the /v7/finance/options payload. Quote fields
// that Yahoo omits for illiquid contracts are pointers so absence survives
// decoding.
type optionsResponse struct {
	OptionChain struct {
		Result []struct {
			Quote struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"quote"`
			ExpirationDates []int64 `json:"expirationDates"`
			Options         []struct {
				Calls []contractRow `json:"calls"`
			} `json:"options"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"optionChain"`
}

type contractRow struct {
	Strike            float64  `json:"strike"`
	Bid               *float64 `json:"bid"`
	Ask               *float64 `json:"ask"`
	LastPrice         *float64 `json:"lastPrice"`
	ImpliedVolatility *float64 `json:"impliedVolatility"`
}

// GetSpotAndExpiries fetches the current price and the sorted expiry list
// for a symbol.
func (c *YahooClient) GetSpotAndExpiries(ctx context.Context, symbol string) (*SpotInfo, error) {
	resp, err := c.fetchOptions(ctx, symbol, nil)
	if err != nil {
		return nil, err
	}

	result := resp.OptionChain.Result[0]
	if result.Quote.RegularMarketPrice <= 0 {
		return nil, errors.NewDataError("spot", symbol, "no market price in response", nil)
	}
	if len(result.ExpirationDates) == 0 {
		return nil, errors.NewDataError("expiries", symbol, "symbol has no listed options", nil)
	}

	expiries := make([]time.Time, 0, len(result.ExpirationDates))
	for _, ts := range result.ExpirationDates {
		expiries = append(expiries, time.Unix(ts, 0).UTC())
	}
	sort.Slice(expiries, func(i, j int) bool { return expiries[i].Before(expiries[j]) })

	return &SpotInfo{
		Symbol:    symbol,
		Price:     result.Quote.RegularMarketPrice,
		Expiries:  expiries,
		FetchedAt: time.Now(),
	}, nil
}

// GetCallChain fetches the call side of the chain for one expiry, sorted
// by ascending strike.
func (c *YahooClient) GetCallChain(ctx context.Context, symbol string, expiry time.Time) ([]models.OptionQuote, error) {
	ts := expiry.Unix()
	resp, err := c.fetchOptions(ctx, symbol, &ts)
	if err != nil {
		return nil, err
	}

	result := resp.OptionChain.Result[0]
	if len(result.Options) == 0 {
		return nil, errors.NewDataError("chain", symbol, fmt.Sprintf("no chain for expiry %s", expiry.Format("2006-01-02")), nil)
	}

	calls := result.Options[0].Calls
	quotes := make([]models.OptionQuote, 0, len(calls))
	for _, row := range calls {
		if row.Strike <= 0 {
			continue
		}
		q := models.OptionQuote{Strike: row.Strike}
		if row.Bid != nil {
			q.Bid = models.FieldOf(*row.Bid)
		}
		if row.Ask != nil {
			q.Ask = models.FieldOf(*row.Ask)
		}
		if row.LastPrice != nil {
			q.LastPrice = models.FieldOf(*row.LastPrice)
		}
		if row.ImpliedVolatility != nil && *row.ImpliedVolatility > 0 {
			q.ImpliedVolatility = *row.ImpliedVolatility
		}
		quotes = append(quotes, q)
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Strike < quotes[j].Strike })

	return quotes, nil
}

// fetchOptions performs the request with retry and decodes the envelope.
func (c *YahooClient) fetchOptions(ctx context.Context, symbol string, expiry *int64) (*optionsResponse, error) {
	endpoint := fmt.Sprintf("%s/v7/finance/options/%s", c.baseURL, url.PathEscape(symbol))
	if expiry != nil {
		endpoint = fmt.Sprintf("%s?date=%d", endpoint, *expiry)
	}

	return utils.RetryWithResult(ctx, c.retryCfg, func() (*optionsResponse, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, errors.NewDataError("request", symbol, "building request", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, errors.NewDataError("request", symbol, "options request failed", err)
		}
		defer httpResp.Body.Close()

		if httpResp.StatusCode != http.StatusOK {
			return nil, errors.NewDataError("request", symbol,
				fmt.Sprintf("unexpected status %d", httpResp.StatusCode), nil)
		}

		var decoded optionsResponse
		if err := json.NewDecoder(httpResp.Body).Decode(&decoded); err != nil {
			return nil, errors.NewDataError("decode", symbol, "decoding options payload", err)
		}
		if decoded.OptionChain.Error != nil {
			return nil, errors.NewDataError("api", symbol, decoded.OptionChain.Error.Description, nil)
		}
		if len(decoded.OptionChain.Result) == 0 {
			return nil, errors.NewDataError("api", symbol, "empty result set", nil)
		}
		return &decoded, nil
	})
}
