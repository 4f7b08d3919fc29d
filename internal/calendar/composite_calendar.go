package calendar

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/username/holiday-planner/pkg/dateutil"
	"go.uber.org/zap"
)

// CompositeCalendar implements Facts with fallback strategy
// Primary: NagerCalendar (API)
// Fallback: FileCalendar (local file)
type CompositeCalendar struct {
	primary  Facts
	fallback Facts
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary, fallback Facts, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// HolidaysInRange returns the holidays within r
func (cc *CompositeCalendar) HolidaysInRange(ctx context.Context, countryCode string, r dateutil.Range) ([]Holiday, error) {
	holidays, err := cc.primary.HolidaysInRange(ctx, countryCode, r)
	if err == nil {
		return holidays, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	cc.logger.Warn("Primary calendar failed, falling back to file",
		zap.String("country", countryCode),
		zap.Stringer("range", r),
		zap.Error(err))

	return cc.fallback.HolidaysInRange(ctx, countryCode, r)
}

// HolidaysForAudience returns the holidays within r that apply to the audience
func (cc *CompositeCalendar) HolidaysForAudience(ctx context.Context, countryCode string, r dateutil.Range, audienceCode string) ([]Holiday, error) {
	holidays, err := cc.primary.HolidaysForAudience(ctx, countryCode, r, audienceCode)
	if err == nil {
		return holidays, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	cc.logger.Warn("Primary calendar failed, falling back to file",
		zap.String("country", countryCode),
		zap.String("audience", audienceCode),
		zap.Error(err))

	return cc.fallback.HolidaysForAudience(ctx, countryCode, r, audienceCode)
}

// LoadFallback loads the fallback calendar (if FileCalendar).
// A missing file is not fatal: the primary may still serve every request.
func (cc *CompositeCalendar) LoadFallback() error {
	fc, ok := cc.fallback.(*FileCalendar)
	if !ok {
		return nil
	}

	if err := fc.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cc.logger.Warn("Fallback calendar file not found", zap.String("file", fc.filePath))
			return nil
		}
		return fmt.Errorf("failed to load fallback calendar: %w", err)
	}

	cc.logger.Info("Fallback calendar loaded successfully")
	return nil
}
