package icon

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// Sanitize errors.
var (
	// ErrNotSVG is returned when the markup has no <svg> root element.
	ErrNotSVG = errors.New("icon: missing svg root element")

	// ErrMalformed is returned when the markup cannot be tokenized.
	ErrMalformed = errors.New("icon: malformed markup")
)

// attr is one attribute of the element being rewritten.
type attr struct {
	name  string
	value string
	quote byte
}

// Sanitize prepares icon markup for rasterization at an arbitrary size and
// color:
//   - width and height are removed from the root <svg>, and a viewBox is
//     synthesized from them when the root has none
//   - every fill attribute is set to tint, except "none" and url(...)
//     paint server references
//   - a root without a fill attribute gets one, so unpainted shapes
//     inherit the tint
//
// The rest of the document is copied through unchanged.
func Sanitize(src string, tint color.NRGBA) (string, error) {
	hex := HexColor(tint)
	l := xml.NewLexer(parse.NewInputString(src))

	var (
		out    strings.Builder
		seen   bool // root <svg> already handled
		inRoot bool
		inTag  bool
		attrs  []attr
	)
	out.Grow(len(src) + 32)

	flushTag := func(closing string) {
		if inRoot {
			attrs = rewriteRoot(attrs, hex)
		}
		for _, a := range attrs {
			if a.name == "fill" && recolorable(a.value) {
				a.value = hex
			}
			q := string(a.quote)
			out.WriteString(" " + a.name + "=" + q + a.value + q)
		}
		out.WriteString(closing)
		attrs = attrs[:0]
		inRoot = false
		inTag = false
	}

	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return "", fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			if !seen {
				return "", ErrNotSVG
			}
			if inTag {
				return "", fmt.Errorf("%w: unterminated tag", ErrMalformed)
			}
			return out.String(), nil
		case xml.StartTagToken:
			name := string(l.Text())
			out.WriteString("<" + name)
			inTag = true
			if !seen && localName(name) == "svg" {
				seen = true
				inRoot = true
			}
		case xml.StartTagPIToken:
			out.WriteString("<?" + string(l.Text()))
			inTag = true
		case xml.AttributeToken:
			a := attr{name: string(l.Text()), quote: '"'}
			if v := l.AttrVal(); len(v) >= 2 && (v[0] == '"' || v[0] == '\'') {
				a.quote = v[0]
				a.value = string(v[1 : len(v)-1])
			} else {
				a.value = string(v)
			}
			attrs = append(attrs, a)
		case xml.StartTagCloseToken:
			flushTag(">")
		case xml.StartTagCloseVoidToken:
			flushTag("/>")
		case xml.StartTagClosePIToken:
			flushTag("?>")
		default:
			out.Write(data)
		}
	}
}

// rewriteRoot drops width and height, adds a viewBox derived from them if
// missing, and adds a root fill.
func rewriteRoot(attrs []attr, hex string) []attr {
	var (
		width, height string
		hasViewBox    bool
		hasFill       bool
	)
	kept := attrs[:0]
	for _, a := range attrs {
		switch a.name {
		case "width":
			width = a.value
			continue
		case "height":
			height = a.value
			continue
		case "viewBox":
			hasViewBox = true
		case "fill":
			hasFill = true
		}
		kept = append(kept, a)
	}
	if !hasViewBox {
		w, okW := parseLength(width)
		h, okH := parseLength(height)
		if okW && okH && w > 0 && h > 0 {
			kept = append(kept, attr{
				name:  "viewBox",
				value: "0 0 " + formatFloat(w) + " " + formatFloat(h),
				quote: '"',
			})
		}
	}
	if !hasFill {
		kept = append(kept, attr{name: "fill", value: hex, quote: '"'})
	}
	return kept
}

// recolorable reports whether a fill value may be replaced by the tint.
func recolorable(v string) bool {
	v = strings.TrimSpace(v)
	return v != "none" && !strings.HasPrefix(v, "url(")
}

// parseLength parses an absolute SVG length such as "24", "24px" or "1.5e1".
// Relative units are rejected.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func localName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// HexColor formats c as #RRGGBB, ignoring alpha.
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
