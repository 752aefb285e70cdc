// Package filectx builds the per-file evaluation context consumed by the
// routing expression engine.
//
// For each eligible file, the builder produces a fresh, immutable set of
// variable bindings from the file's metadata plus run-wide counters. The
// binding set is fixed by contract; values never change once built for a
// file, and the set is discarded after that file's routing result is
// produced.
package filectx

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/tgup-cli/tgup/pkg/evaluator"
	"github.com/tgup-cli/tgup/pkg/types"
)

// Size constants bound to every context. Not user-overridable.
const (
	KB = 1 << 10
	MB = 1 << 20
	GB = 1 << 30
)

// FileContext holds the metadata of one file plus its position in the
// run, ready to be turned into expression bindings.
type FileContext struct {
	Name    string    // file name with extension
	Stem    string    // file name without extension
	Ext     string    // extension, lowercase, without dot
	MIME    string    // MIME type guessed from the extension
	Type    FileType  // coarse category
	Path    string    // full path as given
	Dir     string    // parent directory name
	Depth   int       // directory depth relative to the scan root
	Size    int64     // size in bytes
	ModTime time.Time // modification timestamp
	Index   int       // 0-based position in the run
	Total   int       // total file count for the run
}

// New builds a FileContext from a path, its fs.FileInfo, the depth
// relative to the scan root, and the run-wide counters.
//
// Date and time bindings are derived from the file's modification
// timestamp, consistently for the whole run.
func New(path string, info fs.FileInfo, depth, index, total int) FileContext {
	name := filepath.Base(path)

	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	ext = strings.ToLower(ext)

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		stem = name
	}

	return FileContext{
		Name:    name,
		Stem:    stem,
		Ext:     ext,
		MIME:    GuessMIME(ext),
		Type:    Classify(ext),
		Path:    path,
		Dir:     filepath.Base(filepath.Dir(path)),
		Depth:   depth,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Index:   index,
		Total:   total,
	}
}

// IsMedia reports whether the file is an image, video, or audio file.
func (fc FileContext) IsMedia() bool {
	switch fc.Type {
	case TypeImage, TypeVideo, TypeAudio:
		return true
	}
	return false
}

// Bindings returns the complete variable set recognized by routing
// expressions. The returned context is freshly allocated and private to
// one evaluation.
func (fc FileContext) Bindings() evaluator.Context {
	t := fc.ModTime
	size := float64(fc.Size)

	return evaluator.Context{
		// File information
		"name":  types.StringValue(fc.Name),
		"stem":  types.StringValue(fc.Stem),
		"ext":   types.StringValue(fc.Ext),
		"mime":  types.StringValue(fc.MIME),
		"type":  types.StringValue(string(fc.Type)),
		"path":  types.StringValue(fc.Path),
		"dir":   types.StringValue(fc.Dir),
		"depth": types.NumberValue(float64(fc.Depth)),

		// Size
		"size":     types.NumberValue(size),
		"size_kb":  types.NumberValue(size / KB),
		"size_mb":  types.NumberValue(size / MB),
		"size_gb":  types.NumberValue(size / GB),
		"size_str": types.StringValue(FormatSize(fc.Size)),

		// Date and time, from the modification timestamp
		"date":     types.StringValue(t.Format("2006-01-02")),
		"time":     types.StringValue(t.Format("15:04:05")),
		"datetime": types.StringValue(t.Format("2006-01-02 15:04:05")),
		"year":     types.NumberValue(float64(t.Year())),
		"month":    types.NumberValue(float64(t.Month())),
		"day":      types.NumberValue(float64(t.Day())),
		"hour":     types.NumberValue(float64(t.Hour())),
		"minute":   types.NumberValue(float64(t.Minute())),
		"weekday":  types.StringValue(t.Format("Mon")),

		// File type booleans
		"is_image":    types.BoolValue(fc.Type == TypeImage),
		"is_video":    types.BoolValue(fc.Type == TypeVideo),
		"is_audio":    types.BoolValue(fc.Type == TypeAudio),
		"is_document": types.BoolValue(fc.Type == TypeDocument),
		"is_archive":  types.BoolValue(fc.Type == TypeArchive),
		"is_text":     types.BoolValue(fc.Type == TypeText),
		"is_code":     types.BoolValue(fc.Type == TypeCode),
		"is_media":    types.BoolValue(fc.IsMedia()),

		// Run counters
		"index": types.NumberValue(float64(fc.Index)),
		"num":   types.NumberValue(float64(fc.Index + 1)),
		"total": types.NumberValue(float64(fc.Total)),

		// Fixed size constants
		"KB": types.NumberValue(KB),
		"MB": types.NumberValue(MB),
		"GB": types.NumberValue(GB),
	}
}

// FormatSize renders a byte count using the largest unit whose magnitude
// is at least 1.0, with one decimal place and a unit suffix. Sizes below
// one KiB are rendered as whole bytes.
func FormatSize(bytes int64) string {
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
