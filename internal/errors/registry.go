package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// Configuration (E100-E199)

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Configuration file unreadable",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},

	// Command line (E200-E299)

	"E201": {
		Category: CategoryCLI,
		Message:  "Unknown benchmark scenario",
	},
	"E202": {
		Category: CategoryCLI,
		Message:  "Invalid flag value",
	},
	"E203": {
		Category: CategoryCLI,
		Message:  "Server failed",
	},
	"E204": {
		Category: CategoryCLI,
		Message:  "Output failed",
	},

	// Reactive runtime (E300-E399)

	"E300": {
		Category: CategoryRuntime,
		Message:  "Reactive runtime failure",
	},
	"E301": {
		Category: CategoryRuntime,
		Message:  "Circular dependency detected",
		Detail:   "A computation re-entered itself beyond the configured depth limit.",
	},
	"E302": {
		Category: CategoryRuntime,
		Message:  "Use of a disposed scope",
		Detail:   "A signal, effect or scope was used after its owning scope was disposed.",
	},
}

// Codes returns all registered error codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
