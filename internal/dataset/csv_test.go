package dataset

import (
	"strings"
	"testing"

	"github.com/HerbHall/kartstats/pkg/models"
)

// sheetRow builds one spreadsheet row with an optional character block and
// an optional vehicle block.
func sheetRow(char, vehicle []string) string {
	cells := make([]string, 30)
	copy(cells[characterColumn:], char)
	copy(cells[vehicleColumn:], vehicle)
	for i, c := range cells {
		if strings.ContainsAny(c, ",\"") {
			cells[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
		}
	}
	return strings.Join(cells, ",")
}

func block(name, ref string, stats ...string) []string {
	return append([]string{name, ref}, stats...)
}

func TestParseCSV_Layout(t *testing.T) {
	stats := []string{"5", "5", "4", "3", "", "2", "6", "3", "3", "2", "1"}
	doc := strings.Join([]string{
		"header one",
		"header two",
		sheetRow(block("瑪利歐", "Mario", stats...), block("標準車", "Standard Kart", stats...)),
		sheetRow(block("路易吉", "Luigi", "x", "4.7"), nil),
		sheetRow(block("車輛", "Vehicle", stats...), block("管道車", "Pipe Frame", stats...)),
		sheetRow(block("重要說明：", "note"), block("ignored", "ignored")),
		sheetRow(block("Foo¹", "Foo"), nil),
		sheetRow(nil, block("orphan", "Orphan")),
		"",
	}, "\n")

	r, err := ParseCSV([]byte(doc))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}

	if len(r.Characters) != 2 {
		t.Fatalf("characters = %d, want 2: %+v", len(r.Characters), r.Characters)
	}
	mario := r.Characters[0]
	if mario.LocalName != "瑪利歐" || mario.ReferenceName != "Mario" || mario.Kind != models.KindCharacter {
		t.Errorf("mario = %+v", mario)
	}
	want := models.StatVector{
		Speed:        models.TerrainStats{Display: 5, Road: 5, Terrain: 4, Water: 3},
		Acceleration: 2,
		Weight:       6,
		Handling:     models.TerrainStats{Display: 3, Road: 3, Terrain: 2, Water: 1},
	}
	if mario.Stats != want {
		t.Errorf("mario stats = %+v, want %+v", mario.Stats, want)
	}

	luigi := r.Characters[1]
	if luigi.Stats.Speed.Display != 0 || luigi.Stats.Speed.Road != 4 {
		t.Errorf("luigi speed = %+v, want display 0 road 4", luigi.Stats.Speed)
	}

	if len(r.Vehicles) != 2 {
		t.Fatalf("vehicles = %d, want 2: %+v", len(r.Vehicles), r.Vehicles)
	}
	if r.Vehicles[1].ReferenceName != "Pipe Frame" || r.Vehicles[1].Stats != want {
		t.Errorf("pipe frame = %+v", r.Vehicles[1])
	}
}

func TestParseCSV_QuotedCells(t *testing.T) {
	doc := "h\nh\n" + sheetRow(block("Dry Bones", "Dry Bones, Sr.", "1", "1", "1", "1"), nil) + "\n"
	r, err := ParseCSV([]byte(doc))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(r.Characters) != 1 || r.Characters[0].ReferenceName != "Dry Bones, Sr." {
		t.Errorf("characters = %+v", r.Characters)
	}
}

func TestAtoi(t *testing.T) {
	tests := map[string]int{"": 0, "7": 7, "4.5": 4, "-2": -2, "abc": 0, "12x": 12, "+3": 3}
	for in, want := range tests {
		if got := atoi(in); got != want {
			t.Errorf("atoi(%q) = %d, want %d", in, got, want)
		}
	}
}
