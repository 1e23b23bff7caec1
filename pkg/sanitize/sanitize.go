// Package sanitize neutralizes executable markup in user supplied text.
//
// Tags on a fixed whitelist are kept with only their whitelisted attributes.
// Every other tag is rendered as literal text by escaping its angle brackets,
// so "<script>" comes out as "&lt;script&gt;". Complete <!-- --> comments
// are dropped.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

var whitelist = map[string][]string{
	"a":          {"target", "href", "title"},
	"abbr":       {"title"},
	"address":    nil,
	"area":       {"shape", "coords", "href", "alt"},
	"article":    nil,
	"aside":      nil,
	"audio":      {"autoplay", "controls", "crossorigin", "loop", "muted", "preload", "src"},
	"b":          nil,
	"bdi":        {"dir"},
	"bdo":        {"dir"},
	"big":        nil,
	"blockquote": {"cite"},
	"br":         nil,
	"caption":    nil,
	"center":     nil,
	"cite":       nil,
	"code":       nil,
	"col":        {"align", "valign", "span", "width"},
	"colgroup":   {"align", "valign", "span", "width"},
	"dd":         nil,
	"del":        {"datetime"},
	"details":    {"open"},
	"div":        nil,
	"dl":         nil,
	"dt":         nil,
	"em":         nil,
	"figcaption": nil,
	"figure":     nil,
	"font":       {"color", "size", "face"},
	"footer":     nil,
	"h1":         nil,
	"h2":         nil,
	"h3":         nil,
	"h4":         nil,
	"h5":         nil,
	"h6":         nil,
	"header":     nil,
	"hr":         nil,
	"i":          nil,
	"img":        {"src", "alt", "title", "width", "height", "loading"},
	"ins":        {"datetime"},
	"kbd":        nil,
	"li":         nil,
	"mark":       nil,
	"nav":        nil,
	"ol":         nil,
	"p":          nil,
	"pre":        nil,
	"s":          nil,
	"section":    nil,
	"small":      nil,
	"span":       nil,
	"sub":        nil,
	"summary":    nil,
	"sup":        nil,
	"strong":     nil,
	"strike":     nil,
	"table":      {"width", "border", "align", "valign"},
	"tbody":      {"align", "valign"},
	"td":         {"width", "rowspan", "colspan", "align", "valign"},
	"tfoot":      {"align", "valign"},
	"th":         {"width", "rowspan", "colspan", "align", "valign"},
	"thead":      {"align", "valign"},
	"tr":         {"rowspan", "align", "valign"},
	"tt":         nil,
	"u":          nil,
	"ul":         nil,
	"video":      {"autoplay", "controls", "crossorigin", "loop", "muted", "playsinline", "poster", "preload", "src", "height", "width"},
}

// urlAttrs hold URLs and must use one of safePrefixes.
var urlAttrs = map[string]bool{
	"href":       true,
	"src":        true,
	"poster":     true,
	"cite":       true,
	"background": true,
}

var safePrefixes = []string{
	"#", "/", "./", "../",
	"http://", "https://", "mailto:", "tel:", "ftp://", "data:image/",
}

var textEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer(`"`, "&quot;", "<", "&lt;", ">", "&gt;")

// Text returns raw with executable markup neutralized.
func Text(raw string) string {
	if !strings.ContainsAny(raw, "<>") {
		return raw
	}

	z := html.NewTokenizer(strings.NewReader(raw))
	var b strings.Builder
	b.Grow(len(raw))

	for {
		tt := z.Next()
		// TagName lower-cases the buffer in place, so copy the raw bytes first.
		tokenRaw := string(z.Raw())

		switch tt {
		case html.ErrorToken:
			b.WriteString(textEscaper.Replace(tokenRaw))
			return b.String()
		case html.TextToken, html.DoctypeToken:
			b.WriteString(textEscaper.Replace(tokenRaw))
		case html.CommentToken:
			// The tokenizer also reports bogus markup such as "</3" or "<?x?>"
			// as comments; only real comments are removed.
			if !isComment(tokenRaw) {
				b.WriteString(textEscaper.Replace(tokenRaw))
			}
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, hasAttr := z.TagName()
			allowed, ok := whitelist[string(name)]
			if !ok {
				b.WriteString(textEscaper.Replace(tokenRaw))
				continue
			}
			writeTag(&b, z, tt, string(name), hasAttr, allowed)
		}
	}
}

func writeTag(b *strings.Builder, z *html.Tokenizer, tt html.TokenType, name string, hasAttr bool, allowed []string) {
	if tt == html.EndTagToken {
		b.WriteString("</")
		b.WriteString(name)
		b.WriteByte('>')
		return
	}

	b.WriteByte('<')
	b.WriteString(name)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attr := string(key)
		if !contains(allowed, attr) {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(attr)
		v := strings.TrimSpace(string(val))
		if v == "" || urlAttrs[attr] && !safeURL(v) {
			continue
		}
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(v))
		b.WriteByte('"')
	}
	if tt == html.SelfClosingTagToken {
		b.WriteString(" /")
	}
	b.WriteByte('>')
}

func isComment(raw string) bool {
	return strings.HasPrefix(raw, "<!--") && strings.HasSuffix(raw, "-->")
}

func safeURL(v string) bool {
	lower := strings.ToLower(strings.TrimSpace(v))
	for _, p := range safePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
