// Package structdiff reports leaf-level differences between two
// JSON-shaped values.
package structdiff

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

// Diff walks a and b, which should be the result of json.Unmarshal into
// any, and returns one entry per diverging leaf. Object keys are visited
// in sorted order. Arrays are compared by index; an element missing on
// one side is reported against nil.
func Diff(a, b any) []domain.DiffEntry {
	return diff(a, b, "")
}

// Values converts arbitrary values to their JSON form and diffs them.
func Values(a, b any) ([]domain.DiffEntry, error) {
	na, err := normalize(a)
	if err != nil {
		return nil, fmt.Errorf("normalize left value: %w", err)
	}
	nb, err := normalize(b)
	if err != nil {
		return nil, fmt.Errorf("normalize right value: %w", err)
	}
	return Diff(na, nb), nil
}

func diff(a, b any, path string) []domain.DiffEntry {
	aMap, aIsMap := a.(map[string]any)
	bMap, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]any)
	bArr, bIsArr := b.([]any)
	if aIsArr && bIsArr {
		return diffArrays(aArr, bArr, path)
	}

	if reflect.DeepEqual(a, b) {
		return nil
	}
	return []domain.DiffEntry{{Path: path, A: a, B: b}}
}

func diffObjects(a, b map[string]any, path string) []domain.DiffEntry {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var out []domain.DiffEntry
	for _, k := range keys {
		out = append(out, diff(a[k], b[k], childPath(path, k))...)
	}
	return out
}

func diffArrays(a, b []any, path string) []domain.DiffEntry {
	n := max(len(a), len(b))

	var out []domain.DiffEntry
	for i := 0; i < n; i++ {
		var av, bv any
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out = append(out, diff(av, bv, path+"["+strconv.Itoa(i)+"]")...)
	}
	return out
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
