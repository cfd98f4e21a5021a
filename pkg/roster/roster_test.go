package roster

import (
	"testing"

	"github.com/HerbHall/kartstats/pkg/models"
)

func TestDefault_Roster(t *testing.T) {
	r, err := New().Roster()
	if err != nil {
		t.Fatalf("Roster() error: %v", err)
	}
	if len(r.Characters) == 0 || len(r.Vehicles) == 0 {
		t.Fatalf("embedded roster is empty: %d characters, %d vehicles", len(r.Characters), len(r.Vehicles))
	}
	for _, c := range r.Characters {
		if c.Kind != models.KindCharacter {
			t.Errorf("%s: kind = %q, want character", c.LocalName, c.Kind)
		}
		if c.LocalName == "" || c.ReferenceName == "" {
			t.Errorf("character missing a name: %+v", c)
		}
	}
	for _, v := range r.Vehicles {
		if v.Kind != models.KindVehicle {
			t.Errorf("%s: kind = %q, want vehicle", v.LocalName, v.Kind)
		}
	}
}

func TestDefault_RosterReturnsCopy(t *testing.T) {
	d := New()
	first, err := d.Roster()
	if err != nil {
		t.Fatal(err)
	}
	first.Characters[0].LocalName = "mutated"

	second, err := d.Roster()
	if err != nil {
		t.Fatal(err)
	}
	if second.Characters[0].LocalName == "mutated" {
		t.Error("Roster() exposed internal slice")
	}
}

func TestDefault_DisplayMatchesSubAxes(t *testing.T) {
	r, err := New().Roster()
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range r.All() {
		if e.Stats.Speed.Display != e.Stats.Speed.MaxSubAxis() {
			t.Errorf("%s: speed display %d, max sub-axis %d", e.ReferenceName, e.Stats.Speed.Display, e.Stats.Speed.MaxSubAxis())
		}
		if e.Stats.Handling.Display != e.Stats.Handling.MaxSubAxis() {
			t.Errorf("%s: handling display %d, max sub-axis %d", e.ReferenceName, e.Stats.Handling.Display, e.Stats.Handling.MaxSubAxis())
		}
	}
}

func TestParse(t *testing.T) {
	doc := []byte(`
characters:
  - localName: A
    referenceName: Alpha
    stats:
      speed: {display: 5, road: 5}
vehicles:
  - localName: K
`)
	r, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := r.Characters[0].Stats.Speed.Road; got != 5 {
		t.Errorf("road speed = %d, want 5", got)
	}
	if r.Vehicles[0].Kind != models.KindVehicle {
		t.Errorf("vehicle kind = %q", r.Vehicles[0].Kind)
	}

	if _, err := Parse([]byte("characters: [unterminated")); err == nil {
		t.Fatal("Parse accepted malformed yaml")
	}
}
