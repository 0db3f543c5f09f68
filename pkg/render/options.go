package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the widget batch.
type RenderOptions struct {
	// Values pre-populates controls keyed by widget id. Selection widgets
	// expect an option id; text widgets take the value as-is.
	Values map[string]string
}
