package tracing

// Span names.
const (
	SpanRegistryBuild = "registry.build"
	SpanDocumentLoad  = "document.load"
	SpanDocumentSave  = "document.save"
)

// Span attribute keys.
const (
	AttrRegistryMarkers = "registry.markers"
	AttrRegistryBases   = "registry.bases"
	AttrRegistryEntries = "registry.entries"

	AttrDocumentPath  = "document.path"
	AttrDocumentBytes = "document.bytes"
	AttrDocumentSlots = "document.slots"
)
