package mesh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrEmpty is returned when a model file parses but contains no faces.
var ErrEmpty = errors.New("mesh: no faces")

// absent is the decoder's index for a face corner without a vt or vn reference.
const absent = math.MaxUint32

// LoadOBJFile reads a Wavefront OBJ model from path.
func LoadOBJFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	defer f.Close()
	m, err := LoadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// cornerKey identifies a unique output vertex. Corners without a normal reference carry
// their face index so that each face gets its own flat normal.
type cornerKey struct {
	v, vt, vn int
	face      int
}

type objBuilder struct {
	dec     *obj.Decoder
	mesh    *Mesh
	corners map[cornerKey]uint32
}

// LoadOBJ decodes an OBJ model (v, vt, vn and f records, including v//vn and negative indices).
// Polygons are fan triangulated. Faces without normals are lit flat with their face normal.
// Materials, groups and smoothing groups are ignored.
func LoadOBJ(r io.Reader) (*Mesh, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	dec, err := obj.DecodeReader(bytes.NewReader(src), strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	b := &objBuilder{dec: dec, mesh: New(), corners: make(map[cornerKey]uint32)}

	lines := faceLines(src)
	n := 0
	for _, o := range dec.Objects {
		for _, f := range o.Faces {
			if err := b.face(n, f); err != nil {
				line := 0
				if n < len(lines) {
					line = lines[n]
				}
				return nil, fmt.Errorf("mesh: line %d: %w", line, err)
			}
			n++
		}
	}
	if len(b.mesh.Tris) == 0 {
		return nil, ErrEmpty
	}
	b.mesh.UpdateMatrices()
	return b.mesh, nil
}

// faceLines returns the 1-based line number of every f record, in file order.
func faceLines(src []byte) []int {
	var out []int
	for i, line := range strings.Split(string(src), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 && fields[0] == "f" {
			out = append(out, i+1)
		}
	}
	return out
}

func (b *objBuilder) face(id int, f obj.Face) error {
	idx := make([]uint32, len(f.Vertices))
	flat := make([]bool, len(f.Vertices))
	for i := range f.Vertices {
		key, err := b.resolve(id, f, i)
		if err != nil {
			return err
		}
		flat[i] = key.vn < 0
		idx[i] = b.corner(key)
	}

	var normal mgl32.Vec3
	first := len(b.mesh.Tris)
	for i := 1; i+1 < len(idx); i++ {
		tri := Tri{idx[0], idx[i], idx[i+1]}
		b.mesh.Tris = append(b.mesh.Tris, tri)
		a := b.mesh.Verts[tri[0]].Pos
		c1 := b.mesh.Verts[tri[1]].Pos
		c2 := b.mesh.Verts[tri[2]].Pos
		normal = normal.Add(c1.Sub(a).Cross(c2.Sub(a)))
	}
	if len(b.mesh.Tris) == first || normal.Len() == 0 {
		return nil
	}
	normal = normal.Normalize()
	for i, vi := range idx {
		if flat[i] {
			b.mesh.Verts[vi].Norm = normal
		}
	}
	return nil
}

// resolve range checks corner i of f. Missing vt and vn components are reported as -1.
func (b *objBuilder) resolve(id int, f obj.Face, i int) (cornerKey, error) {
	key := cornerKey{v: f.Vertices[i], vt: -1, vn: -1, face: -1}
	if key.v < 0 || key.v >= len(b.dec.Vertices)/3 {
		return key, fmt.Errorf("vertex index %d out of range", key.v+1)
	}
	if i < len(f.Uvs) && f.Uvs[i] != absent {
		key.vt = f.Uvs[i]
		if key.vt < 0 || key.vt >= len(b.dec.Uvs)/2 {
			return key, fmt.Errorf("texcoord index %d out of range", key.vt+1)
		}
	}
	if i < len(f.Normals) && f.Normals[i] != absent {
		key.vn = f.Normals[i]
		if key.vn < 0 || key.vn >= len(b.dec.Normals)/3 {
			return key, fmt.Errorf("normal index %d out of range", key.vn+1)
		}
	} else {
		key.face = id
	}
	return key, nil
}

func (b *objBuilder) corner(key cornerKey) uint32 {
	if i, ok := b.corners[key]; ok {
		return i
	}
	p := b.dec.Vertices[3*key.v:]
	v := Vertex{Pos: mgl32.Vec3{p[0], p[1], p[2]}}
	if key.vt >= 0 {
		// OBJ v=0 is the bottom of the image.
		uv := b.dec.Uvs[2*key.vt:]
		v.UV = [2]float32{uv[0], 1 - uv[1]}
	}
	if key.vn >= 0 {
		n := b.dec.Normals[3*key.vn:]
		v.Norm = mgl32.Vec3{n[0], n[1], n[2]}
	}
	i := uint32(len(b.mesh.Verts))
	b.mesh.Verts = append(b.mesh.Verts, v)
	b.corners[key] = i
	return i
}
