package storee_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/storee/storee"
)

func TestDateSpec_Resolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		spec storee.DateSpec
		want time.Time
	}{
		{
			"exact date",
			storee.DateSpec{Value: "2010-06-12", Type: storee.DateExact},
			time.Date(2010, 6, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			"exact RFC3339",
			storee.DateSpec{Value: "2010-06-12T15:04:05Z", Type: storee.DateExact},
			time.Date(2010, 6, 12, 15, 4, 5, 0, time.UTC),
		},
		{
			"month defaults to day 1",
			storee.DateSpec{Value: "2024-05", Type: storee.DateMonth},
			time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"year defaults to January 1",
			storee.DateSpec{Value: "2024", Type: storee.DateYear},
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"malformed exact falls back to now",
			storee.DateSpec{Value: "not-a-date", Type: storee.DateExact},
			now,
		},
		{
			"malformed month falls back to now",
			storee.DateSpec{Value: "sometime", Type: storee.DateMonth},
			now,
		},
		{
			"age is a description, not a date",
			storee.DateSpec{Value: "when I was seven", Type: storee.DateAge},
			now,
		},
		{
			"period is a description, not a date",
			storee.DateSpec{Value: "during college", Type: storee.DatePeriod},
			now,
		},
		{
			"empty value",
			storee.DateSpec{},
			now,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.spec.Resolve(now))
		})
	}
}
