package render

import (
	"billboard-demo/internal/mesh"
	"billboard-demo/internal/scene"
	"billboard-demo/internal/textures"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// PreviewSize is the edge of the texture preview tile in pixels.
const PreviewSize = 200

// gpuMesh is an uploaded mesh. The slices back the raylib pointers and must outlive the upload.
type gpuMesh struct {
	mesh      rl.Mesh
	positions []float32
	normals   []float32
	texcoords []float32
}

// Renderer draws a scene.Scene with raylib. Meshes and textures are uploaded on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type Renderer struct {
	meshes   map[*mesh.Mesh]*gpuMesh
	textures map[string]rl.Texture2D

	shader rl.Shader
	locs   shaderLocs
	mtl    rl.Material
	ready  bool

	maxTextureSize int
	log            textures.Logger
}

// New returns a renderer with nothing uploaded. log receives texture fallbacks and may be nil.
func New(maxTextureSize int, log textures.Logger) *Renderer {
	if maxTextureSize <= 0 {
		maxTextureSize = textures.DefaultMaxSize
	}
	return &Renderer{
		meshes:         make(map[*mesh.Mesh]*gpuMesh),
		textures:       make(map[string]rl.Texture2D),
		maxTextureSize: maxTextureSize,
		log:            log,
	}
}

// ensureReady creates the shared material and lit shader.
func (r *Renderer) ensureReady() {
	if r.ready {
		return
	}
	r.mtl = rl.LoadMaterialDefault()
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}
	sh, locs := loadLitShader()
	if rl.IsShaderValid(sh) {
		r.shader, r.locs = sh, locs
		r.mtl.Shader = sh
	} else if r.log != nil {
		r.log.Logf("render: lit shader failed to compile, drawing unlit")
	}
	r.ready = true
}

// ensureMesh uploads m the first time it is drawn. Geometry is flattened to one vertex per
// triangle corner, so no index buffer is needed regardless of vertex count.
func (r *Renderer) ensureMesh(m *mesh.Mesh) *gpuMesh {
	if g, ok := r.meshes[m]; ok {
		return g
	}
	g := &gpuMesh{}
	g.positions, g.normals, g.texcoords = m.Triangles()
	if len(g.positions) == 0 {
		r.meshes[m] = g
		return g
	}
	g.mesh = rl.Mesh{
		VertexCount:   int32(len(g.positions) / 3),
		TriangleCount: int32(len(m.Tris)),
		Vertices:      &g.positions[0],
		Normals:       &g.normals[0],
		Texcoords:     &g.texcoords[0],
	}
	rl.UploadMesh(&g.mesh, false)
	r.meshes[m] = g
	return g
}

// ensureTexture loads the image at path once. Built-in names ("uv", "checker") are generated;
// blank or unreadable paths get the white texture.
func (r *Renderer) ensureTexture(path string) rl.Texture2D {
	key := path
	if textures.IsBlank(path) {
		key = ""
	}
	if tex, ok := r.textures[key]; ok {
		return tex
	}
	img := textures.LoadOrBlank(key, r.maxTextureSize, r.log)
	rimg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	if rl.IsTextureValid(tex) && img.Bounds().Dx() > 1 {
		rl.GenTextureMipmaps(&tex)
		rl.SetTextureFilter(tex, rl.FilterTrilinear)
	}
	r.textures[key] = tex
	return tex
}

// Frame draws the 3D scene and the optional texture preview. Call between BeginDrawing and
// EndDrawing, after the background has been cleared.
func (r *Renderer) Frame(s *scene.Scene) {
	r.ensureReady()

	cam := s.Camera
	rl.SetClipPlanes(float64(cam.Near), float64(cam.Far))
	rl.BeginMode3D(rl.Camera3D{
		Position:   toVector3(cam.Pos),
		Target:     toVector3(cam.Target()),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       cam.FovY,
		Projection: rl.CameraPerspective,
	})
	if r.shader.ID != 0 {
		r.setLights(s)
	}
	for _, o := range s.Objects {
		r.drawObject(o)
	}
	rl.EndMode3D()

	if s.ShowPreview {
		r.drawPreview(s)
	}
}

func (r *Renderer) drawObject(o *scene.Object) {
	g := r.ensureMesh(o.Mesh)
	if len(g.positions) == 0 {
		return
	}
	rl.SetMaterialTexture(&r.mtl, rl.MapDiffuse, r.ensureTexture(o.Texture))
	rl.DrawMesh(g.mesh, r.mtl, toMatrix(o.Mesh.Model))
}

// drawPreview shows the first billboard's texture in a tile at the top-left corner.
func (r *Renderer) drawPreview(s *scene.Scene) {
	bb := s.FirstBillboard()
	if bb == nil {
		return
	}
	tex := r.ensureTexture(bb.Texture)
	src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
	dst := rl.NewRectangle(0, 0, PreviewSize, PreviewSize)
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// Release frees the GPU copy of a mesh that is no longer drawn.
func (r *Renderer) Release(m *mesh.Mesh) {
	g, ok := r.meshes[m]
	if !ok {
		return
	}
	if g.mesh.VaoID != 0 {
		rl.UnloadMesh(&g.mesh)
	}
	delete(r.meshes, m)
}

// Unload releases every GPU resource the renderer created. The Go-owned vertex slices are
// dropped with the map.
func (r *Renderer) Unload() {
	for m, g := range r.meshes {
		if g.mesh.VaoID != 0 {
			rl.UnloadMesh(&g.mesh)
		}
		delete(r.meshes, m)
	}
	for k, tex := range r.textures {
		rl.UnloadTexture(tex)
		delete(r.textures, k)
	}
	if r.shader.ID != 0 {
		rl.UnloadShader(r.shader)
		r.shader = rl.Shader{}
	}
	r.ready = false
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// toMatrix copies a column-major mgl32 matrix; raylib's Mi is element i in column-major order.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
