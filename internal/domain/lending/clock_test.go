package lending_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Loan-api/internal/domain/lending"
)

func TestFirstDayOfMonthAfter(t *testing.T) {
	assert.Equal(t, date(2025, time.March, 1), lending.FirstDayOfMonthAfter(date(2025, time.February, 3), 1))
	assert.Equal(t, date(2026, time.February, 1), lending.FirstDayOfMonthAfter(date(2025, time.February, 28), 12))
	assert.Equal(t, date(2027, time.January, 1), lending.FirstDayOfMonthAfter(date(2025, time.January, 31), 24))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, int64(-26), lending.DaysBetween(date(2025, time.March, 1), date(2025, time.February, 3)))
	assert.Equal(t, int64(10), lending.DaysBetween(date(2025, time.March, 1), date(2025, time.March, 11)))
	assert.Equal(t, int64(0), lending.DaysBetween(date(2025, time.March, 1), time.Date(2025, time.March, 1, 23, 59, 0, 0, time.UTC)))
}

func TestFixedClock(t *testing.T) {
	c := lending.FixedClock{At: time.Date(2025, time.February, 3, 18, 45, 0, 0, time.UTC)}
	assert.Equal(t, date(2025, time.February, 3), c.Today())
	assert.Equal(t, 18, c.Now().Hour())
}
