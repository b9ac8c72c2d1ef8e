package signatures

// DefaultFont is the serif fallback used for unrecognized font keys.
const DefaultFont = "Times-Roman"

// DefaultFontSize matches the finalize endpoint's historical default.
const DefaultFontSize = 24.0

// fontNames maps client font keys to PDF core font names. Unknown keys fall
// back to DefaultFont so finalization stays robust against stale clients.
var fontNames = map[string]string{
	"times-italic":      "Times-Italic",
	"times-roman":       "Times-Roman",
	"TimesRoman":        "Times-Roman",
	"helvetica-bold":    "Helvetica-Bold",
	"helvetica-oblique": "Helvetica-Oblique",
	"Helvetica":         "Helvetica",
	"Courier":           "Courier",
}

// ResolveFont maps a client font key to a core font name.
func ResolveFont(key string) string {
	if name, ok := fontNames[key]; ok {
		return name
	}
	return DefaultFont
}
