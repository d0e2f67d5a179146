package tracing

// Span attribute keys recorded by the grid and the data layer.
const (
	// Grid state
	AttrGridColumns   = "grid.columns"
	AttrGridRows      = "grid.rows"
	AttrGridBound     = "grid.bound"
	AttrGridPooled    = "grid.pooled"
	AttrScrollX       = "grid.scroll.x"
	AttrScrollY       = "grid.scroll.y"
	AttrVisibleCols   = "grid.visible.columns"
	AttrVisibleRows   = "grid.visible.rows"
	AttrChangeKind    = "grid.change.kind"
	AttrChangeStart   = "grid.change.start"
	AttrChangeCount   = "grid.change.count"
	AttrColumnIndex   = "grid.column.index"
	AttrColumnAttr    = "grid.column.attr"
	AttrGridAttribute = "grid.attribute"

	// Data layer
	AttrDataSource = "data.source"
	AttrDataPath   = "data.path"
	AttrDataRows   = "data.rows"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixGrid = "grid."
	SpanPrefixData = "data."
)

// Event names for span events.
const (
	EventViewCreated   = "view.created"
	EventScrollClamped = "scroll.clamped"
)
