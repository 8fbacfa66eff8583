package webext

// SectionKind identifies how a block of a reference page is interpreted.
type SectionKind string

// Section kinds recognised on a reference page.
const (
	SectionTypes      SectionKind = "types"
	SectionProperties SectionKind = "properties"
	SectionMethods    SectionKind = "methods"
	SectionEvents     SectionKind = "events"
)

// ParseSectionKind returns EINVALID for anything but the four known kinds.
func ParseSectionKind(s string) (SectionKind, error) {
	switch k := SectionKind(s); k {
	case SectionTypes, SectionProperties, SectionMethods, SectionEvents:
		return k, nil
	}
	return "", Errorf(EINVALID, "unsupported section kind %q", s)
}

// Skipped records a child of a types, methods or events section that failed
// to parse and was left out of the namespace.
type Skipped struct {
	Section SectionKind `json:"section" yaml:"section"`
	Index   int         `json:"index" yaml:"index"`
	Err     error       `json:"-" yaml:"-"`
}

// Error returns the failure reason.
func (s Skipped) Error() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Extraction is the result of parsing one reference page: the namespace and
// the children that were skipped on the way.
type Extraction struct {
	Namespace *Namespace
	Skipped   []Skipped
}

// Parser builds a namespace schema from the HTML of a reference page.
type Parser interface {
	// ParseNamespace parses one page. Failures of individual types, methods
	// or events are reported in Extraction.Skipped. A malformed properties
	// section or an unknown section kind fails the whole page.
	ParseNamespace(name, html string) (*Extraction, error)
}

// APIPage is one entry of the API index: a namespace and its page URL.
type APIPage struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// IndexParser enumerates reference pages from the API index page.
type IndexParser interface {
	// ParseIndex returns the pages linked from the index in document order.
	// Relative links are resolved against baseURL.
	ParseIndex(html, baseURL string) ([]APIPage, error)
}
