// Package icon recolors and rasterizes SVG icon markup.
//
// Markup is rewritten token by token with the tdewolff XML lexer, then drawn
// with oksvg and rasterx into a [gg.Pixmap]. Failures never propagate to the
// marker: [Renderer.Render] returns nil and the icon slot is left empty.
//
// [gg.Pixmap]: https://pkg.go.dev/github.com/gogpu/gg#Pixmap
package icon
