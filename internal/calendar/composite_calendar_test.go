package calendar

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/holiday-planner/pkg/dateutil"
	"go.uber.org/zap"
)

type stubFacts struct {
	holidays []Holiday
	err      error
	calls    int
}

func (s *stubFacts) HolidaysInRange(_ context.Context, _ string, _ dateutil.Range) ([]Holiday, error) {
	s.calls++
	return s.holidays, s.err
}

func (s *stubFacts) HolidaysForAudience(_ context.Context, _ string, _ dateutil.Range, _ string) ([]Holiday, error) {
	s.calls++
	return s.holidays, s.err
}

func TestCompositeCalendar_PrimarySucceeds(t *testing.T) {
	primary := &stubFacts{holidays: []Holiday{{Name: "Primary"}}}
	fallback := &stubFacts{holidays: []Holiday{{Name: "Fallback"}}}
	cc := NewCompositeCalendar(primary, fallback, zap.NewNop())

	holidays, err := cc.HolidaysInRange(context.Background(), "TR", dateutil.YearRange(2025))
	require.NoError(t, err)
	assert.Equal(t, "Primary", holidays[0].Name)
	assert.Equal(t, 0, fallback.calls)
}

func TestCompositeCalendar_FallsBack(t *testing.T) {
	primary := &stubFacts{err: errors.New("api down")}
	fallback := &stubFacts{holidays: []Holiday{{Name: "Fallback"}}}
	cc := NewCompositeCalendar(primary, fallback, zap.NewNop())
	ctx := context.Background()

	holidays, err := cc.HolidaysInRange(ctx, "TR", dateutil.YearRange(2025))
	require.NoError(t, err)
	assert.Equal(t, "Fallback", holidays[0].Name)

	holidays, err = cc.HolidaysForAudience(ctx, "TR", dateutil.YearRange(2025), "students")
	require.NoError(t, err)
	assert.Equal(t, "Fallback", holidays[0].Name)
	assert.Equal(t, 2, fallback.calls)
}

func TestCompositeCalendar_CanceledContext(t *testing.T) {
	primary := &stubFacts{err: context.Canceled}
	fallback := &stubFacts{}
	cc := NewCompositeCalendar(primary, fallback, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cc.HolidaysInRange(ctx, "TR", dateutil.YearRange(2025))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, fallback.calls)
}

func TestCompositeCalendar_LoadFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holidays.txt")
	require.NoError(t, os.WriteFile(path, []byte("2025-05-01 TR OFFICIAL - Labour Day\n"), 0o644))

	fc := NewFileCalendar(path, zap.NewNop())
	cc := NewCompositeCalendar(&stubFacts{err: errors.New("api down")}, fc, zap.NewNop())
	require.NoError(t, cc.LoadFallback())

	holidays, err := cc.HolidaysInRange(context.Background(), "TR", dateutil.YearRange(2025))
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Labour Day", holidays[0].Name)
}

func TestCompositeCalendar_LoadFallbackMissingFile(t *testing.T) {
	fc := NewFileCalendar(filepath.Join(t.TempDir(), "missing.txt"), zap.NewNop())
	cc := NewCompositeCalendar(&stubFacts{}, fc, zap.NewNop())

	assert.NoError(t, cc.LoadFallback())
}
