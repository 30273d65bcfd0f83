package exhibitions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 4, 5, 0, time.Local)
}

func TestDateKey_NoPadding(t *testing.T) {
	assert.Equal(t, "2024-3-7", DateKey(day(2024, time.March, 7)))
	assert.Equal(t, "2024-12-31", DateKey(day(2024, time.December, 31)))
}

func TestDateHash(t *testing.T) {
	assert.Equal(t, int32(0), DateHash(""))
	assert.Equal(t, int32('a'), DateHash("a"))
	assert.Equal(t, int32(-1922421040), DateHash("2024-3-7"))
	assert.Equal(t, int32(-612388227), DateHash("2024-12-31"))
}

func TestDailyIndex_InRange(t *testing.T) {
	start := day(2020, time.January, 1)
	for i := 0; i < 3*366; i++ {
		for _, n := range []int{1, 2, 3, 7} {
			idx := DailyIndex(start.AddDate(0, 0, i), n)
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, n)
		}
	}
}

func TestSelectDaily_Scenario(t *testing.T) {
	candidates := []Exhibition{{ID: "E1"}, {ID: "E2"}, {ID: "E3"}}

	// "2024-3-7" hashes to -1922421040; 1922421040 % 3 == 1
	got, ok := SelectDaily(candidates, day(2024, time.March, 7))
	require.True(t, ok)
	assert.Equal(t, "E2", got.ID)
}

func TestSelectDaily_Empty(t *testing.T) {
	_, ok := SelectDaily(nil, day(2024, time.March, 7))
	assert.False(t, ok)
}

func TestSelectDaily_Deterministic(t *testing.T) {
	candidates := []Exhibition{{ID: "E1"}, {ID: "E2"}, {ID: "E3"}, {ID: "E4"}}
	d := day(2025, time.June, 1)
	first, _ := SelectDaily(candidates, d)
	for i := 0; i < 10; i++ {
		again, _ := SelectDaily(candidates, d.Add(time.Duration(i)*time.Minute))
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestSelectDaily_ChangesAcrossDays(t *testing.T) {
	candidates := []Exhibition{{ID: "E1"}, {ID: "E2"}}
	seen := map[string]bool{}
	start := day(2024, time.January, 1)
	for i := 0; i < 60; i++ {
		got, _ := SelectDaily(candidates, start.AddDate(0, 0, i))
		seen[got.ID] = true
	}
	assert.Len(t, seen, 2)

	// adjacent days differ at least once
	a, _ := SelectDaily(candidates, day(2024, time.March, 7))
	b, _ := SelectDaily(candidates, day(2024, time.March, 8))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRef(t *testing.T) {
	p := PlatformRef(Exhibition{ID: "E1", Title: "Light", Status: StatusActive})
	assert.Equal(t, OwnerPlatform, p.Owner)
	assert.Equal(t, "E1", p.ID())
	assert.Equal(t, "Light", p.Title())
	assert.Nil(t, p.Partner)

	q := PartnerRef(PartnerExhibition{ID: "P1", Title: "Ink", Status: StatusDraft})
	assert.Equal(t, OwnerPartner, q.Owner)
	assert.Equal(t, "P1", q.ID())
	assert.Equal(t, StatusDraft, q.Status())
	assert.Nil(t, q.Platform)
}
