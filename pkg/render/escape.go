package render

import "strings"

// escapeHTML escapes text for inclusion in element content.
func escapeHTML(s string) string {
	return escape(s, false)
}

// escapeAttr escapes text for a double-quoted attribute value. Whitespace
// control characters are escaped too so values survive reformatting.
func escapeAttr(s string) string {
	return escape(s, true)
}

func escape(s string, attr bool) string {
	if !strings.ContainsAny(s, "&<>\"'\n\r\t") {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s) + 8)
	for _, r := range s {
		switch {
		case r == '&':
			buf.WriteString("&amp;")
		case r == '<':
			buf.WriteString("&lt;")
		case r == '>':
			buf.WriteString("&gt;")
		case r == '"':
			buf.WriteString("&quot;")
		case r == '\'':
			buf.WriteString("&#39;")
		case attr && r == '\n':
			buf.WriteString("&#10;")
		case attr && r == '\r':
			buf.WriteString("&#13;")
		case attr && r == '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
