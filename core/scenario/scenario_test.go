package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinScenarios(t *testing.T) {
	for _, name := range []string{"demo", "peak_mission"} {
		sc, err := Builtin(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, sc.Name)
		assert.NoError(t, sc.Validate())
	}

	_, err := Builtin("does_not_exist")
	assert.Error(t, err)
}

func TestValidateRejectsBadScenarios(t *testing.T) {
	sc := Demo()
	sc.Tasks = nil
	assert.Error(t, sc.Validate())

	sc = Demo()
	sc.HorizonH = 0
	assert.Error(t, sc.Validate())

	sc = Demo()
	sc.Tasks[0].DeadlineH = 0.1
	sc.Tasks[0].DurationH = 0.5
	assert.Error(t, sc.Validate())
}

func TestLoadScenarioFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "night_run.yaml")
	content := []byte(`name: night_run
horizon_h: 12
sunrise_h: 7
sunset_h: 18.5
robot:
  battery_kwh: 1.5
  soc_init: 0.6
  soc_min: 0.1
  charge_power_kw: 0.8
  charge_eff: 0.9
  wh_per_meter: 0.5
tasks:
  - name: patrol
    distance_m: 300
    release_h: 1
    deadline_h: 6
    duration_h: 0.5
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "night_run", sc.Name)
	assert.Equal(t, 12.0, sc.HorizonH)
	assert.Equal(t, 1.5, sc.Robot.BatteryKWh)
	// The microgrid section was omitted and falls back to the defaults.
	assert.Equal(t, Demo().Microgrid, sc.Microgrid)
	require.Len(t, sc.Tasks, 1)
	assert.Equal(t, "patrol", sc.Tasks[0].Name)
	assert.Equal(t, 1.0, sc.Tasks[0].ReleaseH)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	sc, err := Resolve("peak_mission")
	require.NoError(t, err)
	assert.Equal(t, "peak_mission", sc.Name)

	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, yamlScenario(t), 0o644))
	sc, err = Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", sc.Name)

	_, err = Resolve("custom")
	assert.Error(t, err)
}

func yamlScenario(t *testing.T) []byte {
	t.Helper()
	return []byte(`name: custom
horizon_h: 24
sunrise_h: 7
sunset_h: 18.5
tasks:
  - name: sweep
    distance_m: 200
    deadline_h: 4
    duration_h: 0.25
`)
}
