package combination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/kartstats/internal/combination"
	"github.com/HerbHall/kartstats/internal/testutil"
	"github.com/HerbHall/kartstats/pkg/models"
)

func TestNew_CombinedStatsAddBonus(t *testing.T) {
	c := testutil.NewCharacter("Mario", testutil.WithStat(models.AxisSpeedRoad, 4))
	v := testutil.NewVehicle("Kart", testutil.WithStat(models.AxisWeight, 1))
	now := testutil.NewClock().Now()

	got := combination.New(c, v, combination.DefaultBonus, now)

	for _, axis := range models.Axes() {
		want := c.Stats.Get(axis) + v.Stats.Get(axis) + 3
		assert.Equal(t, want, got.CombinedStats.Get(axis), "axis %s", axis)
	}
	assert.Equal(t, now.UnixMilli(), got.CreatedAt)
	assert.Contains(t, got.ID, "Mario-Kart-")
}

func TestNew_SamePairSameInstantGetsDistinctIDs(t *testing.T) {
	c := testutil.NewCharacter("Peach")
	v := testutil.NewVehicle("Bike")
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	a := combination.New(c, v, combination.DefaultBonus, now)
	b := combination.New(c, v, combination.DefaultBonus, now)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestRemoveThenReAdd_YieldsNewID(t *testing.T) {
	clock := testutil.NewClock()
	c := testutil.NewCharacter("Yoshi")
	v := testutil.NewVehicle("Wagon")

	first := combination.New(c, v, combination.DefaultBonus, clock.Now())
	list := combination.Append(nil, first)

	list, removed := combination.Remove(list, first.ID)
	require.True(t, removed)
	require.Empty(t, list)

	clock.Advance(time.Millisecond)
	second := combination.New(c, v, combination.DefaultBonus, clock.Now())
	list = combination.Append(list, second)

	require.Len(t, list, 1)
	assert.NotEqual(t, first.ID, list[0].ID)
}

func TestAppend_PreservesOrderAndInput(t *testing.T) {
	now := testutil.NewClock().Now()
	a := combination.New(testutil.NewCharacter("A"), testutil.NewVehicle("X"), 3, now)
	b := combination.New(testutil.NewCharacter("B"), testutil.NewVehicle("Y"), 3, now)

	base := combination.Append(nil, a)
	next := combination.Append(base, b)

	assert.Len(t, base, 1)
	require.Len(t, next, 2)
	assert.Equal(t, a.ID, next[0].ID)
	assert.Equal(t, b.ID, next[1].ID)
}

func TestRemove_UnknownID(t *testing.T) {
	now := testutil.NewClock().Now()
	list := combination.Append(nil, combination.New(testutil.NewCharacter("A"), testutil.NewVehicle("X"), 3, now))

	out, removed := combination.Remove(list, "missing")
	assert.False(t, removed)
	assert.Len(t, out, 1)
}

func TestClear(t *testing.T) {
	got := combination.Clear()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
