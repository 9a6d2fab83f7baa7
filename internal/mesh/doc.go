// Package mesh holds the renderable artifacts derived from a cloth grid.
//
// Nothing here feeds back into the simulation:
//
//   - [Mesh]: vertex buffer parallel to the particle sequence, a static
//     triangle index buffer, and per-vertex normals
//   - [Segment]: one line per spring
//   - [Marker]: one point per particle
//
// Buffers are sized once at construction and rewritten in place by [Mesh.Sync].
package mesh
