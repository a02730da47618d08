package conversation

import "net/url"

const (
	// CidParam is the request parameter carrying a conversation id across a
	// redirect to a bookmarkable page.
	CidParam = "cid"

	// MetadataKey is the fixed page metadata key under which the current
	// conversation id is stored for reuse on the next request to that page.
	MetadataKey = "conversation.id"
)

// RequestTarget is the outgoing destination chosen for the current request.
// The propagator recognizes *PageTarget and *BookmarkableRedirect; any other
// implementation passes through untouched.
type RequestTarget interface {
	// TargetName identifies the destination, for logging.
	TargetName() string
}

// Page is a component instance that survives across requests and can carry
// metadata between them.
type Page struct {
	name     string
	metadata map[string]string
}

// NewPage creates a page with no metadata.
func NewPage(name string) *Page {
	return &Page{
		name:     name,
		metadata: make(map[string]string),
	}
}

func (p *Page) Name() string {
	return p.name
}

// Metadata returns the value stored under key, or "" when absent.
func (p *Page) Metadata(key string) string {
	return p.metadata[key]
}

func (p *Page) SetMetadata(key, value string) {
	p.metadata[key] = value
}

// PageTarget resolves the request to a page instance.
type PageTarget struct {
	page *Page
}

func NewPageTarget(page *Page) *PageTarget {
	return &PageTarget{page: page}
}

func (t *PageTarget) Page() *Page {
	return t.page
}

func (t *PageTarget) TargetName() string {
	return t.page.Name()
}

// PageParameters is the parameter map of a bookmarkable target URL.
type PageParameters struct {
	values url.Values
}

func NewPageParameters() *PageParameters {
	return &PageParameters{values: url.Values{}}
}

func (p *PageParameters) ContainsKey(key string) bool {
	return p.values.Has(key)
}

// Add appends a value under key. Existing values are kept; callers that must
// not override check ContainsKey first.
func (p *PageParameters) Add(key, value string) {
	p.values.Add(key, value)
}

func (p *PageParameters) Get(key string) string {
	return p.values.Get(key)
}

// Encode renders the parameters in URL query form.
func (p *PageParameters) Encode() string {
	return p.values.Encode()
}

// BookmarkableRedirect resolves the request to a redirect toward a
// bookmarkable page path. It is the only redirect kind the propagator can
// attach a conversation id to; other redirect targets expose no way to edit
// their URL.
type BookmarkableRedirect struct {
	pagePath string
	params   *PageParameters
}

func NewBookmarkableRedirect(pagePath string, params *PageParameters) *BookmarkableRedirect {
	if params == nil {
		params = NewPageParameters()
	}
	return &BookmarkableRedirect{pagePath: pagePath, params: params}
}

func (t *BookmarkableRedirect) PageParameters() *PageParameters {
	return t.params
}

func (t *BookmarkableRedirect) TargetName() string {
	return t.pagePath
}

// URL renders the redirect location including its parameters.
func (t *BookmarkableRedirect) URL() string {
	encoded := t.params.Encode()
	if encoded == "" {
		return t.pagePath
	}
	return t.pagePath + "?" + encoded
}
