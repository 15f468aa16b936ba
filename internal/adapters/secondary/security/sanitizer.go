package security

import "github.com/microcosm-cc/bluemonday"

// HTMLSanitizer nettoie le contenu riche des articles (éditeur WYSIWYG côté client).
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

func NewHTMLSanitizer() *HTMLSanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("pre", "code", "span")
	return &HTMLSanitizer{policy: p}
}

func (s *HTMLSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
