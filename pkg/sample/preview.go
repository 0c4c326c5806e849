package sample

import "fmt"

// PreviewOptions bounds the size of a sample preview.
type PreviewOptions struct {
	MaxArrayItems int // keep the first N items of each array (0 = all)
	MaxStringLen  int // truncate longer strings (0 = no limit)
	MaxDepth      int // replace deeper values with a marker (0 = unlimited)
}

// Default preview bounds.
const (
	DefaultPreviewArrayItems = 3
	DefaultPreviewStringLen  = 120
	DefaultPreviewDepth      = 6
)

// DefaultPreviewOptions returns the bounds used for sample previews.
func DefaultPreviewOptions() *PreviewOptions {
	return &PreviewOptions{
		MaxArrayItems: DefaultPreviewArrayItems,
		MaxStringLen:  DefaultPreviewStringLen,
		MaxDepth:      DefaultPreviewDepth,
	}
}

// Preview converts v to a plain Go value like Interface, trimming arrays and
// strings so a sample can be shown alongside its statistics. Trimmed arrays
// end with a "... (N more items)" marker. If opts is nil,
// DefaultPreviewOptions is used.
func (v *Value) Preview(opts *PreviewOptions) any {
	if opts == nil {
		opts = DefaultPreviewOptions()
	}
	return preview(v, opts, 0)
}

func preview(v *Value, opts *PreviewOptions, depth int) any {
	if v == nil {
		return nil
	}
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth && (v.Kind == Array || v.Kind == Object) {
		return "[max depth]"
	}

	switch v.Kind {
	case String:
		return previewString(v.Str, opts)
	case Array:
		return previewArray(v.Items, opts, depth)
	case Object:
		out := make(map[string]any, v.Len())
		v.Each(func(key string, val *Value) {
			out[key] = preview(val, opts, depth+1)
		})
		return out
	default:
		return v.Interface()
	}
}

func previewString(s string, opts *PreviewOptions) string {
	if opts.MaxStringLen <= 0 || len(s) <= opts.MaxStringLen {
		return s
	}
	return s[:opts.MaxStringLen] + fmt.Sprintf("... (%d more chars)", len(s)-opts.MaxStringLen)
}

func previewArray(items []*Value, opts *PreviewOptions, depth int) []any {
	keep := len(items)
	if opts.MaxArrayItems > 0 && keep > opts.MaxArrayItems {
		keep = opts.MaxArrayItems
	}

	out := make([]any, 0, keep+1)
	for _, item := range items[:keep] {
		out = append(out, preview(item, opts, depth+1))
	}
	if rest := len(items) - keep; rest > 0 {
		out = append(out, fmt.Sprintf("... (%d more items)", rest))
	}
	return out
}
