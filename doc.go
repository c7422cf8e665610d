// Package geom provides a 2D geometry kernel: affine transforms, mutable
// paths of lines and Bézier curves, and cursors for iterating over path
// segments. It is meant to sit underneath rendering and hit-testing code that
// needs to turn vector shapes into something it can draw.
//
// # Affine transforms
//
// [Affine] is a mutable 2×3 matrix. Next to its six coefficients it tracks
// which of them deviate from the identity, and it uses that to select the
// cheapest exact arithmetic for every operation. Composition comes in two
// directions: [Affine.Concatenate] applies another transform before the
// existing one, [Affine.PreConcatenate] after it. Convenience mutators such
// as [Affine.Translate], [Affine.Scale] and [Affine.Rotate] concatenate.
//
// [Affine.Type] classifies a transform as a combination of translation,
// uniform or general scale, quadrant or general rotation, flip, or general
// transform. The classification is computed lazily and cached.
//
// Inverting a transform whose determinant is zero fails with a
// [*NoninvertibleError].
//
// # Paths
//
// [Path] stores segment kinds and coordinates in two flat, growable arrays.
// Every subpath must begin with a MoveTo. Paths can be built segment by
// segment, appended from any [Shape], transformed in place, and iterated.
//
// # Iterators
//
// A [PathIterator] is a cursor over path segments. [CopyIterator] returns a
// path's coordinates as stored, [TransformIterator] maps them through an
// [Affine] while reading, and [FlatteningIterator] wraps any iterator and
// replaces curves by polylines within a flatness tolerance, using recursive
// subdivision bounded by a recursion limit.
//
// Use [Segments] to range over an iterator:
//
//	for seg := range geom.Segments(p.PathIterator(nil)) {
//		fmt.Println(seg)
//	}
//
// # Rendering
//
// [Render] replays a path onto a [Surface], an external drawing back end,
// and fills, strokes or clips with it. The surface package contains
// implementations for raster images and PDF documents.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to receive debug output
// about storage growth and flattening.
package geom
