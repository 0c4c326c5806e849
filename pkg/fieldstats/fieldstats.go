// Package fieldstats reports how often each field path occurs across the
// samples of a group, and whether the inferred schema kept it.
//
// Inference silently drops fields it cannot type (numbers, empty arrays,
// nested arrays). The coverage table makes those gaps visible.
package fieldstats

import (
	"regexp"
	"slices"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/schemagen-mcp/pkg/sample"
	"github.com/usestring/schemagen-mcp/pkg/schemagen"
)

// FieldStat describes one field path of a group.
type FieldStat struct {
	Path       string   `json:"path"`                  // dotted path, "[]" marks array elements (e.g. "tags[].name")
	Kinds      []string `json:"kinds"`                 // non-null value kinds observed, sorted
	Present    int      `json:"present"`               // samples holding a non-null value at this path
	Frequency  float64  `json:"frequency"`             // Present / group sample count
	Required   bool     `json:"required"`              // non-null in every sample
	Nullable   bool     `json:"nullable"`              // null in at least one sample
	Inferred   bool     `json:"inferred"`              // the schema has a field for this path
	Format     string   `json:"format,omitempty"`      // uuid, iso8601, url, email or enum
	EnumValues []string `json:"enum_values,omitempty"` // distinct values when Format is "enum"
}

// GroupStats is the coverage table of one group.
type GroupStats struct {
	Group   string      `json:"group"`
	Samples int         `json:"samples"`
	Fields  []FieldStat `json:"fields"`
	// DroppedSamples counts samples holding at least one non-null value the
	// schema has no field for.
	DroppedSamples int `json:"dropped_samples"`
	// Example is a trimmed copy of the sample with the most top-level keys.
	Example any `json:"example,omitempty"`
}

const (
	maxDepth              = 16
	minSamplesForFormat   = 5
	maxEnumDistinctValues = 10
)

var formats = []struct {
	name string
	re   *regexp.Regexp
}{
	{"uuid", regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)},
	{"iso8601", regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?`)},
	{"url", regexp.MustCompile(`^https?://`)},
	{"email", regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)},
}

// Compute builds the coverage table of every group in corpus, in corpus
// order. schema may be nil, in which case no path counts as inferred.
func Compute(corpus *sample.Corpus, schema *schemagen.Schema) []GroupStats {
	out := make([]GroupStats, 0, corpus.Len())
	for _, name := range corpus.Names() {
		var group *schemagen.GroupConfig
		if schema != nil {
			group = schema.Groups[name]
		}
		out = append(out, computeGroup(name, corpus.Records(name), group))
	}
	return out
}

// pathAcc accumulates observations for one path. present and nulls hold
// sample indexes.
type pathAcc struct {
	kinds    map[string]bool
	present  *roaring.Bitmap
	nulls    *roaring.Bitmap
	strs     []string
	inferred bool
}

type walker struct {
	group *schemagen.GroupConfig
	paths map[string]*pathAcc
}

func computeGroup(name string, records []*sample.Value, group *schemagen.GroupConfig) GroupStats {
	w := &walker{group: group, paths: make(map[string]*pathAcc)}
	for i, rec := range records {
		w.walkObject(rec, "", "", uint32(i), 0)
	}

	stats := GroupStats{Group: name, Samples: len(records), Fields: []FieldStat{}}
	dropped := roaring.New()

	paths := make([]string, 0, len(w.paths))
	for p := range w.paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		acc := w.paths[p]
		if !acc.inferred {
			dropped.Or(acc.present)
		}
		stats.Fields = append(stats.Fields, acc.stat(p, len(records)))
	}
	stats.DroppedSamples = int(dropped.GetCardinality())
	if ex := richest(records); ex != nil {
		stats.Example = ex.Preview(nil)
	}
	return stats
}

// richest returns the first record with the most keys.
func richest(records []*sample.Value) *sample.Value {
	var best *sample.Value
	for _, rec := range records {
		if best == nil || rec.Len() > best.Len() {
			best = rec
		}
	}
	return best
}

// walkObject records the fields of obj. objName is the flat schema name of
// the object obj belongs to, empty at the group root.
func (w *walker) walkObject(obj *sample.Value, prefix, objName string, idx uint32, depth int) {
	if depth > maxDepth {
		return
	}
	obj.Each(func(key string, v *sample.Value) {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		acc := w.acc(path, objName, key)

		if v.IsNull() {
			acc.nulls.Add(idx)
			return
		}
		acc.present.Add(idx)
		acc.kinds[v.Kind.String()] = true

		switch v.Kind {
		case sample.String:
			acc.strs = append(acc.strs, v.Str)
		case sample.Object:
			w.walkObject(v, path, schemagen.ObjectName(objName, key), idx, depth+1)
		case sample.Array:
			for _, item := range v.Items {
				if item.IsObject() {
					w.walkObject(item, path+"[]", schemagen.ObjectName(objName, key), idx, depth+1)
				}
			}
		}
	})
}

func (w *walker) acc(path, objName, field string) *pathAcc {
	if acc, ok := w.paths[path]; ok {
		return acc
	}
	acc := &pathAcc{
		kinds:    make(map[string]bool),
		present:  roaring.New(),
		nulls:    roaring.New(),
		inferred: w.hasField(objName, field),
	}
	w.paths[path] = acc
	return acc
}

func (w *walker) hasField(objName, field string) bool {
	if w.group == nil {
		return false
	}
	if objName == "" {
		_, ok := w.group.Fields[field]
		return ok
	}
	obj, ok := w.group.Objects[objName]
	if !ok {
		return false
	}
	_, ok = obj.Fields[field]
	return ok
}

func (acc *pathAcc) stat(path string, samples int) FieldStat {
	present := int(acc.present.GetCardinality())
	st := FieldStat{
		Path:     path,
		Kinds:    make([]string, 0, len(acc.kinds)),
		Present:  present,
		Required: samples > 0 && present == samples,
		Nullable: !acc.nulls.IsEmpty(),
		Inferred: acc.inferred,
	}
	for k := range acc.kinds {
		st.Kinds = append(st.Kinds, k)
	}
	sort.Strings(st.Kinds)
	if samples > 0 {
		st.Frequency = float64(present) / float64(samples)
	}
	if len(st.Kinds) == 1 && st.Kinds[0] == "string" && len(acc.strs) >= minSamplesForFormat {
		st.Format, st.EnumValues = detectFormat(acc.strs)
	}
	return st
}

// detectFormat names the format every value matches, falling back to "enum"
// when there are few distinct values.
func detectFormat(values []string) (string, []string) {
	for _, f := range formats {
		if !slices.ContainsFunc(values, func(v string) bool { return !f.re.MatchString(v) }) {
			return f.name, nil
		}
	}

	distinct := slices.Clone(values)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)
	if len(distinct) <= maxEnumDistinctValues {
		return "enum", distinct
	}
	return "", nil
}
