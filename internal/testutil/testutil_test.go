package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/HerbHall/kartstats/pkg/models"
)

func TestLogger_NotNil(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewStore_Usable(t *testing.T) {
	db := NewStore(t)
	if db == nil {
		t.Fatal("expected non-nil store")
	}
	if err := db.DB().PingContext(context.Background()); err != nil {
		t.Fatalf("PingContext: %v", err)
	}
}

func TestClock_Advance(t *testing.T) {
	c := NewClock()
	start := c.Now()
	c.Advance(5 * time.Minute)
	if got := c.Now().Sub(start); got != 5*time.Minute {
		t.Errorf("Advance: elapsed = %v, want 5m", got)
	}
}

func TestClock_Set(t *testing.T) {
	c := NewClock()
	target := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)
	c.Set(target)
	if !c.Now().Equal(target) {
		t.Errorf("Set: got %v, want %v", c.Now(), target)
	}
}

func TestClock_AfterFuncFiresOnDeadline(t *testing.T) {
	c := NewClock()
	var fired []string
	c.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "late") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "early") })

	c.Advance(99 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("fired before deadline: %v", fired)
	}

	c.Advance(250 * time.Millisecond)
	if len(fired) != 2 || fired[0] != "early" || fired[1] != "late" {
		t.Errorf("fired = %v, want [early late]", fired)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
}

func TestClock_StopPreventsFire(t *testing.T) {
	c := NewClock()
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("Stop() = false on pending timer")
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}
	c.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestNewEntity_Defaults(t *testing.T) {
	e := NewEntity()
	if e.LocalName == "" {
		t.Error("expected non-empty LocalName")
	}
	if e.Kind != models.KindCharacter {
		t.Errorf("Kind = %q, want character", e.Kind)
	}
	if e.Stats.Get(models.AxisWeight) != 3 {
		t.Errorf("Weight = %d, want 3", e.Stats.Weight)
	}
}

func TestNewVehicle_WithOptions(t *testing.T) {
	v := NewVehicle("Pipe Frame",
		WithReference("Standard Kart"),
		WithStat(models.AxisSpeedRoad, 9),
	)
	if v.Kind != models.KindVehicle {
		t.Errorf("Kind = %q, want vehicle", v.Kind)
	}
	if v.LocalName != "Pipe Frame" || v.ReferenceName != "Standard Kart" {
		t.Errorf("names = %q/%q", v.LocalName, v.ReferenceName)
	}
	if v.Stats.Speed.Road != 9 {
		t.Errorf("Speed.Road = %d, want 9", v.Stats.Speed.Road)
	}
}
