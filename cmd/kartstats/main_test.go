package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/HerbHall/kartstats/internal/config"
	"github.com/HerbHall/kartstats/internal/recommend"
	"github.com/HerbHall/kartstats/internal/search"
	"github.com/HerbHall/kartstats/internal/state"
	"github.com/HerbHall/kartstats/internal/testutil"
	"github.com/HerbHall/kartstats/pkg/models"
)

func TestNewLogger(t *testing.T) {
	l, err := newLogger(config.LogSettings{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = newLogger(config.LogSettings{Development: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger(config.LogSettings{Level: "loud"})
	assert.Error(t, err)
}

func TestBuildSources_Order(t *testing.T) {
	tests := []struct {
		name string
		ds   config.DatasetSettings
		want []string
	}{
		{"all", config.DatasetSettings{Structured: "a.json", Tabular: "b.csv", Embedded: true}, []string{"structured", "tabular", "embedded"}},
		{"embedded only", config.DatasetSettings{Embedded: true}, []string{"embedded"}},
		{"none", config.DatasetSettings{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, s := range buildSources(tt.ds, zap.NewNop()) {
				got = append(got, s.Name())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func writeConfig(t *testing.T, dir string, extra string) string {
	t.Helper()
	path := filepath.Join(dir, "kartstats.yaml")
	body := "log:\n  level: error\nstore:\n  enabled: true\n  path: " + filepath.Join(dir, "kartstats.db") + "\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestBootstrap_PersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "")
	ctx := context.Background()

	a, err := bootstrap(ctx, cfgPath)
	require.NoError(t, err)
	require.NoError(t, a.hydrate(ctx))
	assert.False(t, a.state.SessionOnly())

	r := a.state.Roster()
	require.NotEmpty(t, r.Characters)
	require.NotEmpty(t, r.Vehicles)
	c, err := a.state.AddCombination(ctx, r.Characters[0].LocalName, r.Vehicles[0].LocalName)
	require.NoError(t, err)
	a.close()

	b, err := bootstrap(ctx, cfgPath)
	require.NoError(t, err)
	defer b.close()
	require.NoError(t, b.hydrate(ctx))
	saved := b.state.Combinations()
	require.Len(t, saved, 1)
	assert.Equal(t, c.ID, saved[0].ID)
}

func TestBootstrap_NoSourcesHydratesEmpty(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "dataset:\n  embedded: false\n")
	ctx := context.Background()

	a, err := bootstrap(ctx, cfgPath)
	require.NoError(t, err)
	defer a.close()

	assert.Error(t, a.hydrate(ctx))
	assert.True(t, a.state.Roster().Empty())
}

func searchRoster() models.Roster {
	return models.Roster{
		Characters: []models.Entity{
			testutil.NewCharacter("瑪利歐", testutil.WithReference("Mario")),
			testutil.NewCharacter("瑪利歐寶寶", testutil.WithReference("Baby Mario")),
		},
		Vehicles: []models.Entity{testutil.NewVehicle("標準車", testutil.WithReference("Standard Kart"))},
	}
}

func TestStreamSearch_OnlyLastQueryEvaluated(t *testing.T) {
	st := state.New(state.WithLogger(testutil.Logger()))
	st.Hydrate(context.Background(), searchRoster())

	in := strings.NewReader("m\nma\nmario\n")
	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := streamSearch(ctx, in, &out, st, search.NewDebouncer(50*time.Millisecond, nil))
	require.NoError(t, err)

	assert.Contains(t, out.String(), `"mario": 2 result(s)`)
	assert.NotContains(t, out.String(), `"ma":`)
	hist := st.History()
	require.Len(t, hist, 1)
	assert.Equal(t, "mario", hist[0].Query)
}

func TestStreamSearch_BlankLineShowsHistory(t *testing.T) {
	st := state.New(state.WithLogger(testutil.Logger()))
	st.Hydrate(context.Background(), searchRoster())
	st.RecordSearch("kart", 1)

	var out bytes.Buffer
	err := streamSearch(context.Background(), strings.NewReader("   \n"), &out, st, search.NewDebouncer(time.Millisecond, nil))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "recent searches:")
	assert.Contains(t, out.String(), "kart (1)")
}

func TestStreamSearch_EmptyInput(t *testing.T) {
	st := state.New()
	var out bytes.Buffer
	require.NoError(t, streamSearch(context.Background(), strings.NewReader(""), &out, st, nil))
	assert.Empty(t, out.String())
}

func TestWriteRecommendations(t *testing.T) {
	r := searchRoster()
	res := recommend.ComputeRecommendations(r.Characters, r.Vehicles)

	var out bytes.Buffer
	require.NoError(t, writeRecommendations(&out, res, []models.Terrain{models.TerrainWater}))
	text := out.String()
	assert.True(t, strings.HasPrefix(text, "water (pairs 2"))
	assert.Contains(t, text, "RANK")
	assert.Contains(t, text, "瑪利歐")
	assert.NotContains(t, text, "road")

	out.Reset()
	require.NoError(t, writeRecommendationsJSON(&out, res, []models.Terrain{models.TerrainRoad}))
	var byTerrain map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out.Bytes(), &byTerrain))
	assert.Len(t, byTerrain, 1)
	assert.Contains(t, byTerrain, "road")
}
