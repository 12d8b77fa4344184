package domain

import "strings"

// Href resolves a nav entry path against the configured base.
//
//	base "/", trailingSlash:      "download" -> "/download/"
//	base "/", appendDocumentName: "download" -> "/download/index.html"
//	"/" always maps to base (plus the document name when appended).
func (c *Configuration) Href(path string) string {
	base := c.Base
	if base == "" {
		base = DefaultBase
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + c.pageSuffix(path)
}

// RelativeHref returns the link from page `from` to page `to`.
// Without useRelativePaths it is the absolute Href.
func (c *Configuration) RelativeHref(from, to string) string {
	if !c.UseRelativePaths {
		return c.Href(to)
	}

	rel := strings.Repeat("../", c.pageDepth(from)) + c.pageSuffix(to)
	if rel == "" {
		return "./"
	}
	return rel
}

// pageSuffix renders a page path relative to the site root.
func (c *Configuration) pageSuffix(path string) string {
	p := strings.Trim(path, "/")
	if p == "" {
		if c.AppendDocumentName {
			return c.documentName()
		}
		return ""
	}
	if c.AppendDocumentName {
		return p + "/" + c.documentName()
	}
	if c.TrailingSlash {
		return p + "/"
	}
	return p
}

// pageDepth is how many directories deep the page lives.
func (c *Configuration) pageDepth(path string) int {
	p := strings.Trim(path, "/")
	if p == "" {
		return 0
	}
	depth := strings.Count(p, "/") + 1
	// Without a trailing directory the last segment is a file.
	if !c.TrailingSlash && !c.AppendDocumentName {
		depth--
	}
	return depth
}

func (c *Configuration) documentName() string {
	if c.DocumentName == "" {
		return DefaultDocumentName
	}
	return c.DocumentName
}
