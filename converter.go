package webext

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a description cell,
	// into Markdown.
	Convert(html string) (string, error)
}
