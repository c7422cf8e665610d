// Package surface provides [geom.Surface] implementations that paint paths
// onto concrete drawing back ends.
//
// [Raster] scan-converts paths into any [draw.Image] using
// golang.org/x/image/vector. [PDF] emits PDF path operators through
// github.com/jung-kurt/gofpdf.
//
// Both surfaces record the current path as a [geom.Path] and replay it for
// every paint operation, so a single path can be clipped, filled and
// stroked. Path construction methods have no error results; an invalid
// sequence, such as a LineTo before the first MoveTo, is reported by the next
// Clip, Fill or Stroke and cleared by BeginPath.
package surface
