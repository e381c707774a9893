// Package clip clips points, lines and triangles against the canonical view
// volume in homogeneous clip space (-w <= x, y, z < w).
//
// Trivial accept and reject use Cohen-Sutherland outcodes. Lines straddling a
// plane are cut at the plane; triangles are split plane by plane. Clipping
// happens before the perspective divide so that geometry behind the eye
// (w <= 0) never reaches it.
package clip
