//go:build property

package watcher

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestDebouncerProperties validates the batching guarantees of the debouncer
func TestDebouncerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(9876)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: a flush carries one event per path, sorted, last write wins
	properties.Property("flush deduplicates by path", prop.ForAll(
		func(pathIndexes []int) bool {
			if len(pathIndexes) == 0 {
				return true
			}

			d := newDebouncer(time.Hour)
			defer d.stop()

			last := make(map[string]int64)
			for i, idx := range pathIndexes {
				path := fmt.Sprintf("/site/config-%d.yml", idx)
				d.addEvent(ChangeEvent{Type: EventTypeModified, Path: path, Size: int64(i)})
				last[path] = int64(i)
			}
			d.flush()

			var batch []ChangeEvent
			select {
			case batch = <-d.output:
			default:
				return false
			}

			if len(batch) != len(last) {
				return false
			}

			if !slices.IsSortedFunc(batch, func(a, b ChangeEvent) int {
				if a.Path < b.Path {
					return -1
				}
				if a.Path > b.Path {
					return 1
				}
				return 0
			}) {
				return false
			}

			for _, event := range batch {
				if last[event.Path] != event.Size {
					return false
				}
			}

			return len(d.pending) == 0
		},
		gen.SliceOf(gen.IntRange(0, 5)),
	))

	// Property: filters accept a path only when it is YAML and not a backup
	properties.Property("config filters agree with extension", prop.ForAll(
		func(name string, ext string) bool {
			path := "/site/" + name + ext
			accepted := YAMLFilter(path) && NoBackupFilter(path)
			return accepted == (ext == ".yml" || ext == ".yaml")
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.OneConstOf(".yml", ".yaml", ".yml~", ".swp", ".json", ".bak"),
	))

	properties.TestingRun(t)
}
