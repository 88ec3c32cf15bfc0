package thermal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAttribute(t *testing.T, root string, device string, name string, content string) string {
	dir := filepath.Join(root, device)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func createSysClassThermal(t *testing.T) string {
	root := t.TempDir()
	writeAttribute(t, root, "thermal_zone0", "temp", "45230\n")
	writeAttribute(t, root, "thermal_zone0", "type", "cpu0-thermal\n")
	writeAttribute(t, root, "thermal_zone10", "temp", "51000\n")
	writeAttribute(t, root, "thermal_zone10", "type", "gpu-thermal\n")
	writeAttribute(t, root, "thermal_zone2", "temp", "garbage\n")
	writeAttribute(t, root, "cooling_device2", "cur_state", "1\n")
	writeAttribute(t, root, "cooling_device2", "max_state", "3\n")
	writeAttribute(t, root, "cooling_device2", "type", "pwm-fan\n")
	return root
}

func TestGlobPaths(t *testing.T) {
	// GIVEN
	root := createSysClassThermal(t)

	// WHEN
	result, err := GlobPaths(filepath.Join(root, "thermal_zone*", "temp"))

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "thermal_zone0", "temp"),
		filepath.Join(root, "thermal_zone10", "temp"),
		filepath.Join(root, "thermal_zone2", "temp"),
	}, result)
}

func TestGlobPaths_NoMatch(t *testing.T) {
	// WHEN
	result, err := GlobPaths(filepath.Join(t.TempDir(), "thermal_zone*", "temp"))

	// THEN
	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestGlobPaths_BadPattern(t *testing.T) {
	// WHEN
	_, err := GlobPaths("[")

	// THEN
	assert.Error(t, err)
}

func TestSensorPaths_Deduplicates(t *testing.T) {
	// GIVEN
	root := createSysClassThermal(t)
	zone0 := filepath.Join(root, "thermal_zone0", "temp")
	extra := filepath.Join(root, "extra", "temp")

	// WHEN
	result, err := SensorPaths(filepath.Join(root, "thermal_zone0", "temp"), []string{extra, zone0, extra})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []string{zone0, extra}, result)
}

func TestSensorPaths_DeduplicatesSymlinks(t *testing.T) {
	// GIVEN
	root := createSysClassThermal(t)
	devices := t.TempDir()
	link := filepath.Join(devices, "thermal_zone0")
	require.NoError(t, os.Symlink(filepath.Join(root, "thermal_zone0"), link))
	zone0 := filepath.Join(root, "thermal_zone0", "temp")

	// WHEN
	result, err := SensorPaths("", []string{zone0, filepath.Join(link, "temp")})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []string{zone0}, result)
}

func TestSensorPaths_KeepsMissingPaths(t *testing.T) {
	// GIVEN
	missing := filepath.Join(t.TempDir(), "missing", "temp")

	// WHEN
	result, err := SensorPaths("", []string{missing, missing})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []string{missing}, result)
}

func TestSensorPaths_NoGlob(t *testing.T) {
	// WHEN
	result, err := SensorPaths("", nil)

	// THEN
	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestZones(t *testing.T) {
	// GIVEN
	root := createSysClassThermal(t)

	// WHEN
	result, err := Zones(root)

	// THEN
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, Zone{
		Name:      "thermal_zone0",
		Type:      "cpu0-thermal",
		InputPath: filepath.Join(root, "thermal_zone0", "temp"),
		Value:     45230,
	}, result[0])
	assert.Equal(t, "thermal_zone2", result[1].Name)
	assert.Equal(t, -1, result[1].Value)
	assert.Equal(t, "", result[1].Type)
	assert.Equal(t, "thermal_zone10", result[2].Name)
}

func TestCoolingDevices(t *testing.T) {
	// GIVEN
	root := createSysClassThermal(t)

	// WHEN
	result, err := CoolingDevices(root)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []CoolingDevice{
		{
			Name:       "cooling_device2",
			Type:       "pwm-fan",
			OutputPath: filepath.Join(root, "cooling_device2", "cur_state"),
			CurState:   1,
			MaxState:   3,
		},
	}, result)
}

func TestGetLabel_FallsBackToDeviceName(t *testing.T) {
	// GIVEN
	root := t.TempDir()
	device := filepath.Join(root, "hwmon3")
	writeAttribute(t, root, "hwmon3", "temp1_input", "40000\n")

	// WHEN
	result := getLabel(device, "temp1_input")

	// THEN
	assert.Equal(t, "hwmon3", result)
}

func TestGetLabel(t *testing.T) {
	// GIVEN
	root := t.TempDir()
	device := filepath.Join(root, "hwmon3")
	writeAttribute(t, root, "hwmon3", "temp1_label", "Package id 0\n")

	// WHEN
	result := getLabel(device, "temp1_input")

	// THEN
	assert.Equal(t, "Package id 0", result)
}
