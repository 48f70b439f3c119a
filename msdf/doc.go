// Package msdf renders glyph outlines into multi-channel signed distance
// fields.
//
// MSDF (Multi-channel Signed Distance Field) encodes a glyph's shape into the
// three color channels of a small raster. Edges are split at sharp corners
// and each run of edges contributes to two of the three channels, so the
// median of the channels reconstructs the corner even after the raster is
// magnified.
//
// # How it works
//
//  1. Convert the outline into closed contours of line, quadratic and
//     cubic edges
//  2. Find corners where the outline direction turns sharply
//  3. Color each run of edges between corners (cyan, magenta, yellow); a
//     contour with a single corner is split into three colored parts
//  4. For every texel and channel, find the nearest edge of that channel and
//     take the pseudo-distance to it: past an endpoint, the distance to the
//     edge's tangent line
//  5. Where the median lands on the wrong side of the outline (overlapping
//     contours), fall back to the true distance signed by the nonzero
//     winding rule
//  6. Flatten texels that clash with a neighbor, then encode so that 128
//     lies on the outline, larger values inside
//
// Rasters are 3 bytes per texel, row-major, with row 0 at the lowest font
// unit y (the outline's y axis points up).
//
// # Shader
//
//	fn median3(v: vec3<f32>) -> f32 {
//	    return max(min(v.r, v.g), min(max(v.r, v.g), v.b));
//	}
//
// # References
//
// - msdfgen: https://github.com/Chlumsky/msdfgen
// - "Shape Decomposition for Multi-channel Distance Fields", V. Chlumský
package msdf
