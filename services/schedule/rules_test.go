package schedule

import (
	"testing"
	"time"

	"hairbook/models"
	"hairbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShop() *models.Shop {
	week := make([]models.Weekday, models.DaysPerWeek)
	week[time.Sunday] = models.Weekday{Open: true, Hours: []string{"10:00", "11:00"}}
	week[time.Monday] = models.Weekday{Open: true, Hours: []string{"9:00", "14:30"}}
	week[time.Tuesday] = models.Weekday{Open: false, Hours: []string{"9:00"}}
	return &models.Shop{ID: "shop-1", Week: week}
}

func TestFormatTimeOfDay(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hour, minute int
		want         string
	}{
		{9, 0, "9:00"},
		{14, 30, "14:30"},
		{9, 5, "9:5"},
		{0, 0, "0:00"},
		{23, 59, "23:59"},
	}
	for _, tc := range tests {
		ts := time.Date(2025, 6, 1, tc.hour, tc.minute, 0, 0, time.UTC)
		assert.Equal(t, tc.want, FormatTimeOfDay(ts))
	}
}

func TestValidHour(t *testing.T) {
	t.Parallel()
	for _, h := range []string{"9:00", "14:30", "0:00", "9:5"} {
		assert.True(t, ValidHour(h), h)
	}
	for _, h := range []string{"09:00", "9:05", "24:00", "9", "ab:cd", "9:60", ""} {
		assert.False(t, ValidHour(h), h)
	}
}

func TestValidateWeek(t *testing.T) {
	t.Parallel()
	require.NoError(t, ValidateWeek(testShop().Week))

	err := ValidateWeek(make([]models.Weekday, 6))
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	week := testShop().Week
	week[time.Friday] = models.Weekday{Open: true, Hours: []string{"09:00"}}
	assert.True(t, utils.IsKind(ValidateWeek(week), utils.KindValidation))

	week = testShop().Week
	week[time.Friday] = models.Weekday{Open: true, Hours: []string{"9:00", "9:00"}}
	assert.True(t, utils.IsKind(ValidateWeek(week), utils.KindValidation))
}

func TestParseDate(t *testing.T) {
	t.Parallel()
	ts, err := ParseDate("01-06-2025 10:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), ts)
	assert.Equal(t, "01-06-2025 10:00", FormatDate(ts))

	for _, bad := range []string{"2025-06-01 10:00", "01-06-2025", "01-06-2025 9:00", "32-01-2025 10:00", ""} {
		_, err := ParseDate(bad, time.UTC)
		assert.True(t, utils.IsKind(err, utils.KindValidation), bad)
	}
}

func TestAt(t *testing.T) {
	t.Parallel()
	day, err := ParseDay("02-06-2025", time.UTC)
	require.NoError(t, err)
	ts, err := At(day, "14:30")
	require.NoError(t, err)
	assert.Equal(t, "02-06-2025 14:30", FormatDate(ts))

	_, err = At(day, "14:5x")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	t.Parallel()
	shop := testShop()
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		instant time.Time
		want    error
	}{
		{"open sunday listed hour", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), nil},
		{"monday half hour", time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC), nil},
		{"closed tuesday even with hours", time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC), ErrClosedDay},
		{"saturday missing schedule", time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC), ErrClosedDay},
		{"unlisted hour", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), ErrHourNotOffered},
		{"past instant", time.Date(2025, 5, 18, 10, 0, 0, 0, time.UTC), ErrInPast},
		{"closed past day reports closed first", time.Date(2025, 5, 13, 9, 0, 0, 0, time.UTC), ErrClosedDay},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(shop, tc.instant, now)
			if tc.want == nil {
				assert.NoError(t, err)
				assert.True(t, IsBookable(shop, tc.instant, now))
				return
			}
			assert.ErrorIs(t, err, tc.want)
			assert.False(t, IsBookable(shop, tc.instant, now))
		})
	}
}

func TestCheck_NowIsBookable(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	assert.NoError(t, Check(testShop(), now, now))
	assert.ErrorIs(t, Check(testShop(), now, now.Add(time.Second)), ErrInPast)
}

func TestCheck_KindsMapToStatuses(t *testing.T) {
	t.Parallel()
	assert.Equal(t, utils.KindForbidden, utils.KindOf(ErrClosedDay))
	assert.Equal(t, utils.KindForbidden, utils.KindOf(ErrHourNotOffered))
	assert.Equal(t, utils.KindValidation, utils.KindOf(ErrInPast))
}
