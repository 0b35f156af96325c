package format

import "strings"

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// EscapeText escapes s for use as XML element content.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// Cref renders a <see cref="..."/> reference to typeName. Generic brackets
// become braces, which is how XML doc comments spell them: IRepo<T> is
// written IRepo{T}.
func Cref(typeName string) string {
	ref := strings.NewReplacer("<", "{", ">", "}").Replace(typeName)
	return `<see cref="` + attrEscaper.Replace(ref) + `"/>`
}
