package scene

import (
	"fmt"
	"math/rand/v2"
	"os"

	"billboard-demo/internal/camera"
	"billboard-demo/internal/mesh"
	"billboard-demo/internal/palette"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Built-in shapes an object may use instead of a model file.
const (
	ShapeCube = "cube"
	ShapeQuad = "quad"
)

// ObjectDef describes one object in a scene file (e.g. assets/scene.yaml).
// Model wins over Shape; a model that fails to load falls back to a cube.
type ObjectDef struct {
	Name        string     `yaml:"name"`
	Model       string     `yaml:"model,omitempty"`
	Shape       string     `yaml:"shape,omitempty"`
	Texture     string     `yaml:"texture,omitempty"`
	Scale       [3]float32 `yaml:"scale,omitempty"`
	Rotation    [3]float32 `yaml:"rotation,omitempty"` // degrees
	Translation [3]float32 `yaml:"translation,omitempty"`
	Draggable   bool       `yaml:"draggable,omitempty"`
	Billboard   bool       `yaml:"billboard,omitempty"`
}

// LightDef describes a point light. Color components are in [0,1].
type LightDef struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Color    [3]float32 `yaml:"color"`
	Key      string     `yaml:"key,omitempty"`
}

// Definition is the on-disk scene description.
type Definition struct {
	Objects []ObjectDef `yaml:"objects"`
	Lights  []LightDef  `yaml:"lights"`
}

// DefaultDefinition is the stock demo: a sand-textured desert slab, a draggable tree billboard
// and red, green and blue lights stacked above the scene.
func DefaultDefinition() Definition {
	return Definition{
		Objects: []ObjectDef{
			{
				Name:        "desert",
				Model:       "assets/models/desert.txt",
				Texture:     "assets/img/sandtexture.png",
				Scale:       [3]float32{8, .5, 8},
				Translation: [3]float32{0, -2, 0},
			},
			{
				Name:      "tree",
				Shape:     ShapeQuad,
				Texture:   "assets/img/tree2x100.png",
				Draggable: true,
				Billboard: true,
			},
		},
		Lights: []LightDef{
			{Name: "red", Position: [3]float32{-1, 3, 1}, Color: [3]float32{1, 0, 0}, Key: "R"},
			{Name: "green", Position: [3]float32{-1, 3, 1}, Color: [3]float32{0, 1, 0}, Key: "G"},
			{Name: "blue", Position: [3]float32{-1, 3, 1}, Color: [3]float32{0, 0, 1}, Key: "B"},
		},
	}
}

// LoadDefinition reads a YAML scene file. A missing file yields DefaultDefinition;
// a file that does not parse is an error.
func LoadDefinition(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultDefinition(), nil
		}
		return Definition{}, fmt.Errorf("scene: %w", err)
	}
	return ParseDefinition(data)
}

// ParseDefinition decodes YAML and checks light count and object shapes.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("scene: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Validate reports structural problems that cannot be papered over at load time.
func (d Definition) Validate() error {
	if len(d.Lights) > MaxLights {
		return ErrTooManyLights
	}
	for i, o := range d.Objects {
		switch o.Shape {
		case "", ShapeCube, ShapeQuad:
		default:
			return fmt.Errorf("scene: object %d (%s): unknown shape %q", i, o.Name, o.Shape)
		}
	}
	return nil
}

// Logger is the logging surface used for asset fallbacks.
type Logger interface {
	Logf(format string, args ...any)
}

// MeshLoader loads a model file; tests substitute their own.
type MeshLoader func(path string) (*mesh.Mesh, error)

// Options configure Build.
type Options struct {
	Camera      *camera.Camera
	ColorPeriod float32
	Rand        *rand.Rand
	LoadMesh    MeshLoader // nil = mesh.LoadOBJFile
	Log         Logger
}

// Build turns a definition into a live scene. Models that fail to load become cubes.
func Build(def Definition, opts Options) (*Scene, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	cam := opts.Camera
	if cam == nil {
		cam = camera.New()
	}
	period := opts.ColorPeriod
	if period <= 0 {
		period = palette.DefaultPeriod
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	objects := make([]*Object, 0, len(def.Objects))
	for _, od := range def.Objects {
		objects = append(objects, NewObject(od, opts.LoadMesh, opts.Log))
	}

	lights := make([]*Light, 0, len(def.Lights))
	for _, ld := range def.Lights {
		lights = append(lights, &Light{
			Name:  ld.Name,
			Pos:   mgl32.Vec3(ld.Position),
			Color: palette.Color{R: ld.Color[0], G: ld.Color[1], B: ld.Color[2]},
			Key:   ld.Key,
		})
	}

	s, err := New(cam, objects, lights, period, rng)
	if err != nil {
		return nil, err
	}
	s.UpdateBillboards()
	return s, nil
}

// NewObject builds one object from its definition. A model that fails to load becomes a
// cube and is reported to log.
func NewObject(od ObjectDef, load MeshLoader, log Logger) *Object {
	if load == nil {
		load = mesh.LoadOBJFile
	}
	m := buildMesh(od, load, log)
	m.Scale = vec3OrOnes(od.Scale)
	m.Rotation = mgl32.Vec3{
		mgl32.DegToRad(od.Rotation[0]),
		mgl32.DegToRad(od.Rotation[1]),
		mgl32.DegToRad(od.Rotation[2]),
	}
	m.Translation = mgl32.Vec3(od.Translation)
	m.UpdateMatrices()
	return &Object{
		Name:      od.Name,
		Mesh:      m,
		Texture:   od.Texture,
		Draggable: od.Draggable,
		Billboard: od.Billboard,
	}
}

func buildMesh(od ObjectDef, load MeshLoader, log Logger) *mesh.Mesh {
	if od.Model != "" {
		m, err := load(od.Model)
		if err == nil {
			return m
		}
		if log != nil {
			log.Logf("model %s unavailable, using cube: %v", od.Model, err)
		}
		return mesh.MakeCube()
	}
	if od.Shape == ShapeQuad {
		return mesh.MakeQuad()
	}
	return mesh.MakeCube()
}

// vec3OrOnes treats an omitted (all zero) scale as unit scale.
func vec3OrOnes(v [3]float32) mgl32.Vec3 {
	if v == [3]float32{} {
		return mgl32.Vec3{1, 1, 1}
	}
	return mgl32.Vec3(v)
}
