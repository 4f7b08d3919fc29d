package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"github.com/username/holiday-planner/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	nagerBaseURL       = "https://date.nager.at"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
	defaultMaxRetries  = 3

	// MaxYearSpan is the number of calendar years one query may touch
	MaxYearSpan = 10
	// Nager.Date serves holidays for these years only
	minNagerYear = 1975
	maxNagerYear = 2075
	// expired entries are pruned once the cache holds this many years
	maxCachedYears = 256
)

// ErrRangeTooLong is returned for ranges spanning more than MaxYearSpan years
var ErrRangeTooLong = errors.New("date range spans too many years")

// audienceTypes maps audience codes to Nager.Date holiday types
var audienceTypes = map[string][]string{
	"general":        {"Public"},
	"government":     {"Public", "Authorities"},
	"students":       {"Public", "School"},
	"educational":    {"Public", "School"},
	"banking":        {"Public", "Bank"},
	"private_sector": {"Public"},
}

// NagerCalendar implements Facts using the public Nager.Date API
type NagerCalendar struct {
	client     *resty.Client
	logger     *zap.Logger
	cache      map[string]*cachedYear
	cacheMu    sync.RWMutex
	cacheTTL   time.Duration
	maxRetries uint64
	localNames bool
	regions    []string
	newBackOff func() backoff.BackOff
}

type cachedYear struct {
	data      []nagerHoliday
	fetchedAt time.Time
}

type nagerHoliday struct {
	Holiday
	types    []string
	global   bool
	counties []string
}

// NewNagerCalendar creates a new NagerCalendar instance.
// localNames selects the holiday name in the country's language instead of English.
func NewNagerCalendar(baseURL string, cacheTTL time.Duration, maxRetries int, localNames bool, logger *zap.Logger) *NagerCalendar {
	if baseURL == "" {
		baseURL = nagerBaseURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}

	return &NagerCalendar{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(defaultHTTPTimeout).
			SetHeader("Accept", "application/json"),
		logger:     logger,
		cache:      make(map[string]*cachedYear),
		cacheTTL:   cacheTTL,
		maxRetries: uint64(maxRetries),
		localNames: localNames,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}
}

// SetRegions selects subdivisions (ISO 3166-2 codes such as "DE-BY") whose
// regional holidays are returned as well. Without regions only nationwide
// holidays are returned.
func (c *NagerCalendar) SetRegions(regions []string) {
	c.regions = nil
	for _, r := range regions {
		if r = strings.ToUpper(strings.TrimSpace(r)); r != "" {
			c.regions = append(c.regions, r)
		}
	}
}

// observed reports whether the holiday applies nationwide or in a selected region
func (c *NagerCalendar) observed(h nagerHoliday) bool {
	if h.global {
		return true
	}
	for _, county := range h.counties {
		for _, r := range c.regions {
			if strings.EqualFold(county, r) {
				return true
			}
		}
	}
	return false
}

// HolidaysInRange returns the public holidays of the country within r
func (c *NagerCalendar) HolidaysInRange(ctx context.Context, countryCode string, r dateutil.Range) ([]Holiday, error) {
	return c.collect(ctx, countryCode, r, func(nagerHoliday) bool { return true })
}

// HolidaysForAudience returns the holidays within r whose Nager.Date types
// apply to the audience. Unknown audiences only get public holidays.
func (c *NagerCalendar) HolidaysForAudience(ctx context.Context, countryCode string, r dateutil.Range, audienceCode string) ([]Holiday, error) {
	wanted, ok := audienceTypes[strings.ToLower(audienceCode)]
	if !ok {
		wanted = audienceTypes["general"]
	}

	return c.collect(ctx, countryCode, r, func(h nagerHoliday) bool {
		for _, t := range h.types {
			for _, w := range wanted {
				if t == w {
					return true
				}
			}
		}
		return false
	})
}

func (c *NagerCalendar) collect(ctx context.Context, countryCode string, r dateutil.Range, keep func(nagerHoliday) bool) ([]Holiday, error) {
	holidays := []Holiday{}
	if !r.Valid() {
		return holidays, nil
	}
	if span := r.End.Year() - r.Start.Year() + 1; span > MaxYearSpan {
		return nil, fmt.Errorf("%w: %d years, at most %d", ErrRangeTooLong, span, MaxYearSpan)
	}

	from := max(r.Start.Year(), minNagerYear)
	to := min(r.End.Year(), maxNagerYear)
	for year := from; year <= to; year++ {
		yearData, err := c.getYear(ctx, countryCode, year)
		if err != nil {
			return nil, err
		}

		for _, h := range yearData {
			if r.Contains(h.Date) && c.observed(h) && keep(h) {
				holidays = append(holidays, h.Holiday)
			}
		}
	}

	SortByDate(holidays)
	return holidays, nil
}

// getYear returns the holidays of one year, from cache when fresh
func (c *NagerCalendar) getYear(ctx context.Context, countryCode string, year int) ([]nagerHoliday, error) {
	country := normalizeCountry(countryCode)
	cacheKey := fmt.Sprintf("%s-%d", country, year)

	c.cacheMu.RLock()
	if cached, ok := c.cache[cacheKey]; ok {
		if time.Since(cached.fetchedAt) < c.cacheTTL {
			c.cacheMu.RUnlock()
			c.logger.Debug("Using cached holidays", zap.String("key", cacheKey))
			return cached.data, nil
		}
	}
	c.cacheMu.RUnlock()

	var body []byte
	operation := func() error {
		var err error
		body, err = c.fetchYear(ctx, country, year)
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("Holiday API request failed, retrying",
			zap.String("country", country),
			zap.Int("year", year),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return nil, err
	}

	data, err := c.parseYear(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse holiday response: %w", err)
	}

	c.cacheMu.Lock()
	if len(c.cache) >= maxCachedYears {
		c.pruneExpired()
	}
	c.cache[cacheKey] = &cachedYear{
		data:      data,
		fetchedAt: time.Now(),
	}
	c.cacheMu.Unlock()

	c.logger.Info("Holidays fetched from API",
		zap.String("country", country),
		zap.Int("year", year),
		zap.Int("count", len(data)))

	return data, nil
}

// fetchYear downloads /api/v3/PublicHolidays/{year}/{countryCode}.
// Client errors are permanent, everything else is retried.
func (c *NagerCalendar) fetchYear(ctx context.Context, country string, year int) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"year":        strconv.Itoa(year),
			"countryCode": country,
		}).
		Get("/api/v3/PublicHolidays/{year}/{countryCode}")
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, backoff.Permanent(err)
		}
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	switch status := resp.StatusCode(); {
	case status == http.StatusOK:
		return resp.Body(), nil
	case status == http.StatusNotFound:
		return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrCountryNotFound, country))
	case status >= 400 && status < 500:
		return nil, backoff.Permanent(fmt.Errorf("holiday API returned status %d", status))
	default:
		return nil, fmt.Errorf("holiday API returned status %d", status)
	}
}

// parseYear parses the Nager.Date holiday array
func (c *NagerCalendar) parseYear(body []byte) ([]nagerHoliday, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid JSON")
	}

	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, errors.New("expected a JSON array")
	}

	data := []nagerHoliday{}
	result.ForEach(func(_, item gjson.Result) bool {
		dateStr := item.Get("date").String()
		date, err := time.Parse(dateutil.KeyLayout, dateStr)
		if err != nil {
			c.logger.Warn("Failed to parse date", zap.String("date", dateStr), zap.Error(err))
			return true
		}

		name := item.Get("name").String()
		if local := item.Get("localName").String(); c.localNames && local != "" {
			name = local
		}

		var types []string
		for _, t := range item.Get("types").Array() {
			types = append(types, t.String())
		}

		// entries without the flag are nationwide
		global := true
		if g := item.Get("global"); g.Exists() {
			global = g.Bool()
		}
		var counties []string
		for _, county := range item.Get("counties").Array() {
			counties = append(counties, county.String())
		}

		data = append(data, nagerHoliday{
			Holiday: Holiday{
				Date: date,
				Name: name,
				Type: nagerHolidayType(types),
			},
			types:    types,
			global:   global,
			counties: counties,
		})
		return true
	})

	return data, nil
}

// nagerHolidayType maps Nager.Date types to a HolidayType
func nagerHolidayType(types []string) HolidayType {
	for _, t := range types {
		if t == "Public" {
			return TypeOfficial
		}
	}
	for _, t := range types {
		if t == "Observance" {
			return TypeCultural
		}
	}
	return TypeOther
}

// pruneExpired drops stale years, or everything when none is stale.
// The caller holds cacheMu.
func (c *NagerCalendar) pruneExpired() {
	before := len(c.cache)
	for key, cached := range c.cache {
		if time.Since(cached.fetchedAt) >= c.cacheTTL {
			delete(c.cache, key)
		}
	}
	if len(c.cache) >= maxCachedYears {
		c.cache = make(map[string]*cachedYear)
	}
	c.logger.Debug("Calendar cache pruned",
		zap.Int("before", before),
		zap.Int("after", len(c.cache)))
}

// ClearCache clears the cache
func (c *NagerCalendar) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cache = make(map[string]*cachedYear)
	c.logger.Info("Calendar cache cleared")
}
