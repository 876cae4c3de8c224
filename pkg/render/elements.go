package render

import "strings"

type tagClass uint8

const (
	// void elements have no children and no closing tag.
	void tagClass = 1 << iota
	// inline elements stay on their parent's line in pretty output.
	inline
)

var tagClasses = classify(map[tagClass]string{
	void:   "area base br col embed hr img input link meta param source track wbr",
	inline: "a abbr b bdi bdo br cite code data dfn em i kbd mark q s samp small span strong sub sup time u var wbr",
})

// booleanAttrs render as a bare name when their value is empty or "true",
// and are omitted when it is "false".
var booleanAttrs = set("allowfullscreen async autofocus autoplay checked controls default defer " +
	"disabled formnovalidate hidden ismap itemscope loop multiple muted nomodule novalidate " +
	"open playsinline readonly required reversed selected")

func classify(lists map[tagClass]string) map[string]tagClass {
	out := make(map[string]tagClass)
	for class, tags := range lists {
		for _, tag := range strings.Fields(tags) {
			out[tag] |= class
		}
	}
	return out
}

func set(words string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		out[w] = struct{}{}
	}
	return out
}

func isVoidElement(tag string) bool   { return tagClasses[tag]&void != 0 }
func isInlineElement(tag string) bool { return tagClasses[tag]&inline != 0 }

func isBooleanAttr(name string) bool {
	_, ok := booleanAttrs[name]
	return ok
}
