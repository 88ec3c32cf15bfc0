package thermal

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/markusressel/xu4fan/internal/util"
	"golang.org/x/exp/slices"
)

const SysClassThermal = "/sys/class/thermal"

// Zone is a kernel thermal zone, e.g. /sys/class/thermal/thermal_zone0
type Zone struct {
	Name      string
	Type      string
	InputPath string
	// Value is the raw reading in milli-degrees, -1 if it could not be read
	Value int
}

// CoolingDevice is a kernel cooling device, e.g. /sys/class/thermal/cooling_device2
type CoolingDevice struct {
	Name       string
	Type       string
	OutputPath string
	CurState   int
	MaxState   int
}

// GlobPaths returns all files matching pattern in lexical order.
// No match is not an error.
func GlobPaths(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// SensorPaths combines the matches of glob with the explicit paths,
// dropping duplicates while keeping the first occurrence. Two paths are
// duplicates if they resolve to the same file, sysfs exposes every zone
// below /sys/class/thermal and /sys/devices.
func SensorPaths(glob string, paths []string) ([]string, error) {
	var candidates []string
	if len(glob) > 0 {
		matches, err := GlobPaths(glob)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, matches...)
	}

	for _, path := range paths {
		expanded, err := util.ExpandPath(path)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, expanded)
	}

	var result []string
	var seen []string
	for _, path := range candidates {
		key := resolvePath(path)
		if slices.Contains(seen, key) {
			continue
		}
		seen = append(seen, key)
		result = append(result, path)
	}
	return result, nil
}

// resolvePath follows symlinks, paths that cannot be resolved are kept as is
// so that opening them reports the error later on.
func resolvePath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return resolved
}

// Zones lists all thermal zones below root.
func Zones(root string) ([]Zone, error) {
	dirs, err := GlobPaths(filepath.Join(root, "thermal_zone*"))
	if err != nil {
		return nil, err
	}

	var result []Zone
	for _, dir := range dirs {
		input := filepath.Join(dir, "temp")
		if _, err := os.Stat(input); err != nil {
			continue
		}
		value, err := util.ReadIntFromFile(input)
		if err != nil {
			value = -1
		}
		result = append(result, Zone{
			Name:      filepath.Base(dir),
			Type:      readType(dir),
			InputPath: input,
			Value:     value,
		})
	}
	sortByIndex(result, func(z Zone) string { return z.Name })
	return result, nil
}

// CoolingDevices lists all cooling devices below root.
func CoolingDevices(root string) ([]CoolingDevice, error) {
	dirs, err := GlobPaths(filepath.Join(root, "cooling_device*"))
	if err != nil {
		return nil, err
	}

	var result []CoolingDevice
	for _, dir := range dirs {
		output := filepath.Join(dir, "cur_state")
		if _, err := os.Stat(output); err != nil {
			continue
		}
		curState, err := util.ReadIntFromFile(output)
		if err != nil {
			curState = -1
		}
		maxState, err := util.ReadIntFromFile(filepath.Join(dir, "max_state"))
		if err != nil {
			maxState = -1
		}
		result = append(result, CoolingDevice{
			Name:       filepath.Base(dir),
			Type:       readType(dir),
			OutputPath: output,
			CurState:   curState,
			MaxState:   maxState,
		})
	}
	sortByIndex(result, func(d CoolingDevice) string { return d.Name })
	return result, nil
}

func readType(dir string) string {
	value, err := util.ReadStringFromFile(filepath.Join(dir, "type"))
	if err != nil {
		return ""
	}
	return value
}

// sortByIndex orders "thermal_zone2" before "thermal_zone10"
func sortByIndex[T any](items []T, name func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := name(items[i]), name(items[j])
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return strings.Compare(a, b) < 0
	})
}
