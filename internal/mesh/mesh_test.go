package mesh_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"billboard-demo/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDeltaf(t, want[i], got[i], tol, "component %d: want %v, got %v", i, want, got)
	}
}

func TestMakeCube(t *testing.T) {
	m := mesh.MakeCube()
	assert.Len(t, m.Verts, 24)
	assert.Len(t, m.Tris, 12)

	lo, hi := m.Bounds()
	assertVec(t, mgl32.Vec3{-.5, -.5, -.5}, lo)
	assertVec(t, mgl32.Vec3{.5, .5, .5}, hi)

	// Every triangle winds counter-clockwise around its outward normal.
	for _, tri := range m.Tris {
		a, b, c := m.Verts[tri[0]], m.Verts[tri[1]], m.Verts[tri[2]]
		geo := b.Pos.Sub(a.Pos).Cross(c.Pos.Sub(a.Pos))
		assert.Greater(t, geo.Dot(a.Norm), float32(0))
	}
}

func TestMakeQuad(t *testing.T) {
	m := mesh.MakeQuad()
	require.Len(t, m.Tris, 2)
	for _, tri := range m.Tris {
		a, b, c := m.Verts[tri[0]], m.Verts[tri[1]], m.Verts[tri[2]]
		geo := b.Pos.Sub(a.Pos).Cross(c.Pos.Sub(a.Pos))
		assert.Greater(t, geo.Z(), float32(0))
	}
}

func TestUpdateMatrices(t *testing.T) {
	m := mesh.MakeCube()
	m.Scale = mgl32.Vec3{8, .5, 8}
	m.Translation = mgl32.Vec3{0, -2, 0}
	m.UpdateMatrices()

	got := mgl32.TransformCoordinate(mgl32.Vec3{.5, .5, .5}, m.Model)
	assertVec(t, mgl32.Vec3{4, -1.75, 4}, got)
	ident, prod := mgl32.Ident4(), m.Model.Mul4(m.InvModel)
	assert.InDeltaSlice(t, ident[:], prod[:], tol)

	m.Rotation = mgl32.Vec3{0, mgl32.DegToRad(90), 0}
	m.Scale = mgl32.Vec3{1, 1, 1}
	m.Translation = mgl32.Vec3{}
	m.UpdateMatrices()
	got = mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, m.Model)
	assertVec(t, mgl32.Vec3{0, 0, -1}, got)
}

func TestWorldBounds(t *testing.T) {
	m := mesh.MakeCube()
	m.Scale = mgl32.Vec3{2, 1, 1}
	m.Rotation = mgl32.Vec3{0, mgl32.DegToRad(90), 0}
	m.Translation = mgl32.Vec3{0, 0, -5}
	m.UpdateMatrices()

	// The long X side ends up along Z after the quarter turn.
	lo, hi := m.WorldBounds()
	assertVec(t, mgl32.Vec3{-.5, -.5, -6}, lo)
	assertVec(t, mgl32.Vec3{.5, .5, -4}, hi)

	lo, hi = mesh.New().WorldBounds()
	assertVec(t, mgl32.Vec3{}, lo)
	assertVec(t, mgl32.Vec3{}, hi)
}

func TestIntersectRay(t *testing.T) {
	m := mesh.MakeCube()
	m.Translation = mgl32.Vec3{0, 0, -5}
	m.UpdateMatrices()

	d := m.IntersectRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, 4.5, d, tol)

	assert.Equal(t, float32(-1), m.IntersectRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}))
	assert.Equal(t, float32(-1), m.IntersectRay(mgl32.Vec3{3, 0, 0}, mgl32.Vec3{0, 0, -1}))

	// Scaled meshes report world distances.
	m.Scale = mgl32.Vec3{4, 4, 4}
	m.UpdateMatrices()
	d = m.IntersectRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, 3, d, tol)

	// From inside, the far wall is hit.
	d = m.IntersectRay(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 2, d, tol)
}

func TestIntersectRayWithCustomModel(t *testing.T) {
	m := mesh.MakeQuad()
	// Quad turned to face +X, sitting at x=2.
	m.SetModel(mgl32.Translate3D(2, 0, 0).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90))))
	d := m.IntersectRay(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{-1, 0, 0})
	assert.InDelta(t, 3, d, tol)
}

func TestTriangles(t *testing.T) {
	m := mesh.MakeQuad()
	pos, norm, uv := m.Triangles()
	assert.Len(t, pos, 2*3*3)
	assert.Len(t, norm, 2*3*3)
	assert.Len(t, uv, 2*3*2)
	// first corner is the top-left vertex
	assert.Equal(t, []float32{-.5, .5, 0}, pos[:3])
	assert.Equal(t, []float32{0, 0}, uv[:2])
}

const quadOBJ = `# two triangles, shared corners
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestLoadOBJ(t *testing.T) {
	m, err := mesh.LoadOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	assert.Len(t, m.Verts, 4)
	assert.Len(t, m.Tris, 2)
	assert.Equal(t, mesh.Tri{0, 1, 2}, m.Tris[0])
	assert.Equal(t, mesh.Tri{0, 2, 3}, m.Tris[1])
	// OBJ v=0 is the bottom of the image.
	assert.Equal(t, [2]float32{0, 1}, m.Verts[0].UV)
	assert.Equal(t, [2]float32{1, 0}, m.Verts[2].UV)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, m.Verts[0].Norm)
	assert.Equal(t, mgl32.Ident4(), m.Model)
}

func TestLoadOBJComputesNormalsAndNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	m, err := mesh.LoadOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, m.Tris, 1)
	for _, v := range m.Verts {
		assertVec(t, mgl32.Vec3{0, 0, 1}, v.Norm)
	}
}

func TestLoadOBJFlatNormalsPerFace(t *testing.T) {
	// A +Z quad and a floor triangle share corners 1 and 2.
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 -1
f 1 2 3 4
f 1 5 2
`
	m, err := mesh.LoadOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, m.Tris, 3)
	assert.Len(t, m.Verts, 7, "shared positions are split per face")
	for _, tri := range m.Tris[:2] {
		for _, i := range tri {
			assertVec(t, mgl32.Vec3{0, 0, 1}, m.Verts[i].Norm)
		}
	}
	for _, i := range m.Tris[2] {
		assertVec(t, mgl32.Vec3{0, -1, 0}, m.Verts[i].Norm)
	}
}

func TestLoadOBJSlashForms(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\nf 1//1 2//1 3//1\nf 1/1 2/1 3/1\n"
	m, err := mesh.LoadOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, m.Tris, 2)
	assert.Len(t, m.Verts, 6)
}

func TestLoadOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"empty", "# nothing\n", "no faces"},
		{"bad number", "v 0 x 0\n", "invalid syntax"},
		{"short vertex", "v 0 0\n", "Less than 3"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nf 1 2 3\n", "line 3: vertex index 3"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", "line:4"},
		{"degenerate face", "v 0 0 0\nv 1 0 0\nf 1 2\n", "less 3 fields"},
		{"bad texcoord", "# header\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\nf 1/4 2 3\n", "line 6: texcoord index 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mesh.LoadOBJ(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadOBJFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.txt")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0644))

	m, err := mesh.LoadOBJFile(path)
	require.NoError(t, err)
	assert.Len(t, m.Tris, 2)

	_, err = mesh.LoadOBJFile(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
