package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyDocument   = "document"
	KeyReference  = "reference"
	KeyPath       = "path"
	KeyLocale     = "locale"
	KeyRoute      = "route"
	KeyTarget     = "target"
	KeyPolicy     = "policy"
	KeyCount      = "count"
	KeyOutput     = "output"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Document(p string) slog.Attr      { return slog.String(KeyDocument, p) }
func Reference(ref string) slog.Attr   { return slog.String(KeyReference, ref) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Locale(l string) slog.Attr        { return slog.String(KeyLocale, l) }
func Route(r string) slog.Attr         { return slog.String(KeyRoute, r) }
func Target(t string) slog.Attr        { return slog.String(KeyTarget, t) }
func Policy(p string) slog.Attr        { return slog.String(KeyPolicy, p) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Output(dir string) slog.Attr      { return slog.String(KeyOutput, dir) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
