package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Configuration Errors (E101-E199)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No sortable.json, sortable.yaml or sortable.yml was found.",
		DocURL:   "https://vango.dev/docs/sortable/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Configuration file unreadable",
		Detail:   "The configuration file exists but could not be read.",
		DocURL:   "https://vango.dev/docs/sortable/errors/E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Configuration file invalid",
		Detail:   "The configuration file could not be parsed.",
		DocURL:   "https://vango.dev/docs/sortable/errors/E103",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   "https://vango.dev/docs/sortable/errors/E104",
	},

	// ============================================
	// Render Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryRender,
		Message:  "Render pass registered the wrong number of elements",
		Detail:   "Every item must register exactly one element per render pass, in render order.",
		DocURL:   "https://vango.dev/docs/sortable/errors/E201",
	},
	"E202": {
		Category: CategoryRender,
		Message:  "Render pass already ended",
		Detail:   "A render pass can only be ended once. Start a new pass with BeginRender.",
		DocURL:   "https://vango.dev/docs/sortable/errors/E202",
	},

	// ============================================
	// Protocol Errors (E301-E399)
	// ============================================

	"E301": {
		Category: CategoryProtocol,
		Message:  "Invalid frame",
		Detail:   "The message could not be decoded as a protocol frame.",
		DocURL:   "https://vango.dev/docs/sortable/errors/E301",
	},
	"E302": {
		Category: CategoryProtocol,
		Message:  "Invalid event",
		Detail:   "The event frame payload could not be decoded.",
		DocURL:   "https://vango.dev/docs/sortable/errors/E302",
	},

	// ============================================
	// CLI Errors (E401-E499)
	// ============================================

	"E401": {
		Category: CategoryCLI,
		Message:  "Invalid argument",
		DocURL:   "https://vango.dev/docs/sortable/errors/E401",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
