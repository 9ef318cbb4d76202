package catalog

// SchemaName is the name the catalog schema is registered under
const SchemaName = "crops.schema.json"

// Error messages
const (
	ErrMsgReadFailed    = "failed to read catalog"
	ErrMsgParseFailed   = "failed to parse catalog"
	ErrMsgSchemaFailed  = "catalog failed schema validation"
	ErrMsgDuplicateCrop = "duplicate crop id"
	ErrMsgPlotBounds    = "initial_plots must not exceed max_plots"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Crop catalog loaded"
)
