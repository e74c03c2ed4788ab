package mesh

import (
	"billboard-demo/internal/vecmath"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one mesh corner: position, normal and texture coordinate (0,0 = top-left of the image).
type Vertex struct {
	Pos  mgl32.Vec3
	Norm mgl32.Vec3
	UV   [2]float32
}

// Tri indexes three vertices, counter-clockwise when seen from the front.
type Tri [3]uint32

// Mesh is CPU-side geometry plus its placement in the world.
// Model and InvModel are only refreshed by UpdateMatrices; callers that change
// Scale, Rotation or Translation must call it (or overwrite Model/InvModel directly, as billboards do).
type Mesh struct {
	Verts []Vertex
	Tris  []Tri

	Scale       mgl32.Vec3
	Rotation    mgl32.Vec3 // Euler angles in radians, applied X then Y then Z
	Translation mgl32.Vec3

	Model    mgl32.Mat4
	InvModel mgl32.Mat4
}

// New returns an empty mesh with unit scale and identity matrices.
func New() *Mesh {
	return &Mesh{
		Scale:    mgl32.Vec3{1, 1, 1},
		Model:    mgl32.Ident4(),
		InvModel: mgl32.Ident4(),
	}
}

// UpdateMatrices recomputes Model = T * Rz * Ry * Rx * S and its inverse.
func (m *Mesh) UpdateMatrices() {
	s := mgl32.Scale3D(m.Scale.X(), m.Scale.Y(), m.Scale.Z())
	rx := mgl32.HomogRotate3DX(m.Rotation.X())
	ry := mgl32.HomogRotate3DY(m.Rotation.Y())
	rz := mgl32.HomogRotate3DZ(m.Rotation.Z())
	t := mgl32.Translate3D(m.Translation.X(), m.Translation.Y(), m.Translation.Z())
	m.Model = t.Mul4(rz).Mul4(ry).Mul4(rx).Mul4(s)
	m.InvModel = m.Model.Inv()
}

// SetModel installs an externally built model matrix (e.g. a billboard orientation).
func (m *Mesh) SetModel(model mgl32.Mat4) {
	m.Model = model
	m.InvModel = model.Inv()
}

// IntersectRay returns the distance along the world-space ray orig+t*dir to the nearest
// triangle, or -1 when nothing is hit. dir should be unit length for t to be a distance.
func (m *Mesh) IntersectRay(orig, dir mgl32.Vec3) float32 {
	lo := mgl32.TransformCoordinate(orig, m.InvModel)
	ld := m.InvModel.Mul4x1(dir.Vec4(0)).Vec3()

	record := float32(-1)
	for _, tri := range m.Tris {
		a := m.Verts[tri[0]].Pos
		b := m.Verts[tri[1]].Pos
		c := m.Verts[tri[2]].Pos
		t, ok := vecmath.RayIntersectTriangle(lo, ld, a, b, c)
		if !ok {
			continue
		}
		if record < 0 || t < record {
			record = t
		}
	}
	return record
}

// Bounds returns the local-space axis aligned box of the vertices. Empty meshes report zero vectors.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Verts) == 0 {
		return
	}
	lo, hi = m.Verts[0].Pos, m.Verts[0].Pos
	for _, v := range m.Verts[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v.Pos[i])
			hi[i] = max(hi[i], v.Pos[i])
		}
	}
	return lo, hi
}

// WorldBounds returns the world-space axis aligned box around the local bounds placed by Model.
func (m *Mesh) WorldBounds() (lo, hi mgl32.Vec3) {
	llo, lhi := m.Bounds()
	for i := 0; i < 8; i++ {
		c := llo
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				c[axis] = lhi[axis]
			}
		}
		w := mgl32.TransformCoordinate(c, m.Model)
		if i == 0 {
			lo, hi = w, w
			continue
		}
		for axis := 0; axis < 3; axis++ {
			lo[axis] = min(lo[axis], w[axis])
			hi[axis] = max(hi[axis], w[axis])
		}
	}
	return lo, hi
}

// Triangles flattens the indexed mesh into per-corner arrays suitable for an unindexed GPU upload.
func (m *Mesh) Triangles() (positions, normals, texcoords []float32) {
	n := len(m.Tris) * 3
	positions = make([]float32, 0, n*3)
	normals = make([]float32, 0, n*3)
	texcoords = make([]float32, 0, n*2)
	for _, tri := range m.Tris {
		for _, idx := range tri {
			v := m.Verts[idx]
			positions = append(positions, v.Pos[0], v.Pos[1], v.Pos[2])
			normals = append(normals, v.Norm[0], v.Norm[1], v.Norm[2])
			texcoords = append(texcoords, v.UV[0], v.UV[1])
		}
	}
	return positions, normals, texcoords
}

// MakeCube returns a unit cube centred on the origin with per-face normals.
func MakeCube() *Mesh {
	m := New()
	faces := []struct {
		n, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	for _, f := range faces {
		base := uint32(len(m.Verts))
		c := f.n.Mul(0.5)
		hu := f.u.Mul(0.5)
		hv := f.v.Mul(0.5)
		// tl, tr, bl, br as seen from outside
		m.Verts = append(m.Verts,
			Vertex{Pos: c.Sub(hu).Add(hv), Norm: f.n, UV: [2]float32{0, 0}},
			Vertex{Pos: c.Add(hu).Add(hv), Norm: f.n, UV: [2]float32{1, 0}},
			Vertex{Pos: c.Sub(hu).Sub(hv), Norm: f.n, UV: [2]float32{0, 1}},
			Vertex{Pos: c.Add(hu).Sub(hv), Norm: f.n, UV: [2]float32{1, 1}},
		)
		m.Tris = append(m.Tris,
			Tri{base, base + 2, base + 1},
			Tri{base + 1, base + 2, base + 3},
		)
	}
	m.UpdateMatrices()
	return m
}

// MakeQuad returns a unit quad in the XY plane facing +Z, the billboard geometry.
func MakeQuad() *Mesh {
	m := New()
	n := mgl32.Vec3{0, 0, 1}
	m.Verts = []Vertex{
		{Pos: mgl32.Vec3{-.5, .5, 0}, Norm: n, UV: [2]float32{0, 0}},
		{Pos: mgl32.Vec3{.5, .5, 0}, Norm: n, UV: [2]float32{1, 0}},
		{Pos: mgl32.Vec3{-.5, -.5, 0}, Norm: n, UV: [2]float32{0, 1}},
		{Pos: mgl32.Vec3{.5, -.5, 0}, Norm: n, UV: [2]float32{1, 1}},
	}
	m.Tris = []Tri{
		{0, 2, 1},
		{1, 2, 3},
	}
	m.UpdateMatrices()
	return m
}
