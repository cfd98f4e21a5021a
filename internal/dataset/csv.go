package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/HerbHall/kartstats/pkg/models"
)

// Spreadsheet layout. Characters and vehicles share rows: a character block
// starts at column 1 and a vehicle block at column 17. Within a block the
// name comes first, then the reference name, four speed values, a spacer,
// acceleration, weight and four handling values.
const (
	headerRows        = 2
	characterColumn   = 1
	vehicleColumn     = 17
	vehicleMarkerCell = "車輛"
)

// blockOffsets maps stat axes to their column offset within a block.
var blockOffsets = []struct {
	axis   models.Axis
	offset int
}{
	{models.AxisSpeedDisplay, 2},
	{models.AxisSpeedRoad, 3},
	{models.AxisSpeedTerrain, 4},
	{models.AxisSpeedWater, 5},
	{models.AxisAcceleration, 7},
	{models.AxisWeight, 8},
	{models.AxisHandlingDisplay, 9},
	{models.AxisHandlingRoad, 10},
	{models.AxisHandlingTerrain, 11},
	{models.AxisHandlingWater, 12},
}

// annotationMarkers identify explanatory rows in the name column.
var annotationMarkers = []string{"能力值解析", "重要說明", "能力值顯示不一致", "¹", "²", "³"}

// ParseCSV decodes the spreadsheet export. The first two rows are headers.
// Rows without a name, and annotation rows, are skipped. Cells that do not
// parse as integers count as 0.
func ParseCSV(data []byte) (models.Roster, error) {
	rd := csv.NewReader(bytes.NewReader(data))
	rd.FieldsPerRecord = -1
	rd.LazyQuotes = true
	rd.TrimLeadingSpace = true

	rows, err := rd.ReadAll()
	if err != nil {
		return models.Roster{}, fmt.Errorf("read csv: %w", err)
	}

	r := models.Roster{Characters: []models.Entity{}, Vehicles: []models.Entity{}}
	for i := headerRows; i < len(rows); i++ {
		row := rows[i]
		name := cell(row, characterColumn)
		if name == "" || isAnnotation(name) {
			continue
		}
		if name != vehicleMarkerCell && cell(row, characterColumn+1) != "" {
			r.Characters = append(r.Characters, parseBlock(row, characterColumn, models.KindCharacter))
		}
		if cell(row, vehicleColumn) != "" && cell(row, vehicleColumn+1) != "" {
			r.Vehicles = append(r.Vehicles, parseBlock(row, vehicleColumn, models.KindVehicle))
		}
	}
	return r, nil
}

func parseBlock(row []string, start int, kind models.Kind) models.Entity {
	e := models.Entity{
		Kind:          kind,
		LocalName:     cell(row, start),
		ReferenceName: cell(row, start+1),
	}
	for _, b := range blockOffsets {
		e.Stats = e.Stats.Set(b.axis, atoi(cell(row, start+b.offset)))
	}
	return e
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// atoi parses a leading integer the way spreadsheet exports tend to need:
// "4.5" yields 4 and anything unparsable yields 0.
func atoi(s string) int {
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func isAnnotation(name string) bool {
	for _, m := range annotationMarkers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}
