package agmarknet

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/agrosight/agrosight/internal/domain"
	"github.com/agrosight/agrosight/internal/logger"
	"github.com/agrosight/agrosight/internal/metrics"
)

// priceRecord is one raw row as the feed reports it.
type priceRecord struct {
	Commodity       string   `json:"commodity"`
	Market          string   `json:"market"`
	ArrivalDate     string   `json:"arrival_date"`
	MinPrice        *float64 `json:"min_price"`
	MaxPrice        *float64 `json:"max_price"`
	ModalPrice      *float64 `json:"modal_price"`
	ArrivalQuintals *float64 `json:"arrival_quintals"`
}

type currentPriceResponse struct {
	Record *priceRecord `json:"record"`
}

type historyResponse struct {
	Records []priceRecord `json:"records"`
}

// Client talks to the mandi price feed. Successful current-price lookups are
// cached so a feed outage degrades to slightly stale quotes instead of none.
type Client struct {
	http  *resty.Client
	cache *expirable.LRU[string, domain.CurrentPrice]
}

// NewClient creates a price feed client.
func NewClient(baseURL string, timeout time.Duration, retries, cacheSize int, cacheTTL time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retries)

	return &Client{
		http:  httpClient,
		cache: expirable.NewLRU[string, domain.CurrentPrice](cacheSize, nil, cacheTTL),
	}
}

// CurrentPrice returns the latest quote for a commodity, serving from the
// cache when the live feed is unreachable. domain.ErrPriceUnavailable means
// neither source had data.
func (c *Client) CurrentPrice(ctx context.Context, commodity string) (*domain.CurrentPrice, error) {
	log := logger.FromContext(ctx)
	key := cacheKey(commodity)

	var result currentPriceResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam(paramCommodity, commodity).
		SetResult(&result).
		Get(currentPricePath)

	if err == nil && resp.IsSuccess() && result.Record != nil && result.Record.ModalPrice != nil {
		metrics.PriceFetches.WithLabelValues(commodity, metrics.OutcomeSuccess).Inc()
		price := recordToCurrentPrice(commodity, *result.Record)
		c.cache.Add(key, price)
		return &price, nil
	}

	metrics.PriceFetches.WithLabelValues(commodity, metrics.OutcomeFailure).Inc()
	if err != nil {
		log.Warn("Live price fetch failed", "commodity", commodity, "error", err)
	} else {
		log.Warn("Live price fetch returned no usable quote", "commodity", commodity, "status", resp.StatusCode())
	}

	if cached, ok := c.cache.Get(key); ok {
		metrics.PriceCacheHits.Inc()
		cached.Source = SourceCache
		return &cached, nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrPriceUnavailable, commodity)
}

// HistoricalPrices returns raw price rows for the trailing window. Rows with
// unparseable dates are skipped rather than failing the batch.
func (c *Client) HistoricalPrices(ctx context.Context, commodity string, days int) ([]domain.PricePoint, error) {
	log := logger.FromContext(ctx)

	var result historyResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam(paramCommodity, commodity).
		SetQueryParam(paramDays, strconv.Itoa(days)).
		SetResult(&result).
		Get(historicalPricePath)

	if err != nil {
		metrics.PriceFetches.WithLabelValues(commodity, metrics.OutcomeFailure).Inc()
		return nil, fmt.Errorf("failed to fetch price history: %w", err)
	}
	if !resp.IsSuccess() {
		metrics.PriceFetches.WithLabelValues(commodity, metrics.OutcomeFailure).Inc()
		return nil, fmt.Errorf("%w: feed returned status %d", domain.ErrPriceUnavailable, resp.StatusCode())
	}
	metrics.PriceFetches.WithLabelValues(commodity, metrics.OutcomeSuccess).Inc()

	points := make([]domain.PricePoint, 0, len(result.Records))
	for _, rec := range result.Records {
		date, parseErr := time.Parse(arrivalDateLayout, rec.ArrivalDate)
		if parseErr != nil {
			log.Warn("Skipping price row with bad date", "commodity", commodity, "date", rec.ArrivalDate)
			continue
		}
		points = append(points, domain.PricePoint{
			Date:            date,
			ModalPrice:      rec.ModalPrice,
			MinPrice:        rec.MinPrice,
			MaxPrice:        rec.MaxPrice,
			ArrivalQuintals: rec.ArrivalQuintals,
			MandiName:       rec.Market,
		})
	}
	return points, nil
}

func recordToCurrentPrice(commodity string, rec priceRecord) domain.CurrentPrice {
	price := domain.CurrentPrice{
		Commodity:  commodity,
		ModalPrice: *rec.ModalPrice,
		Source:     SourceLive,
		AsOf:       time.Now(),
	}
	price.MinPrice = price.ModalPrice
	price.MaxPrice = price.ModalPrice
	if rec.MinPrice != nil {
		price.MinPrice = *rec.MinPrice
	}
	if rec.MaxPrice != nil {
		price.MaxPrice = *rec.MaxPrice
	}
	if rec.ArrivalDate != "" {
		if asOf, err := time.Parse(arrivalDateLayout, rec.ArrivalDate); err == nil {
			price.AsOf = asOf
		}
	}
	return price
}

func cacheKey(commodity string) string {
	return strings.ToUpper(strings.TrimSpace(commodity))
}
