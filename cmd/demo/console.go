package main

import (
	"flag"
	"fmt"
	"strconv"

	"billboard-demo/internal/assets"
	"billboard-demo/internal/commands"
	"billboard-demo/internal/debug"
	"billboard-demo/internal/engineconfig"
	"billboard-demo/internal/logger"
	"billboard-demo/internal/mesh"
	"billboard-demo/internal/render"
	"billboard-demo/internal/scene"
	"billboard-demo/internal/textures"

	"github.com/go-gl/mathgl/mgl32"
)

// console is the state the console commands act on.
type console struct {
	scene     *scene.Scene
	render    *render.Renderer
	debug     *debug.Debug
	prefs     *engineconfig.Prefs
	prefsPath string
	log       *logger.Logger
}

// spawnDistance is how far in front of the camera spawned objects appear.
const spawnDistance = 3

// findModel resolves a model name under assets.ModelDir and loads it.
func findModel(name string) (*mesh.Mesh, error) {
	path, err := assets.Find(assets.ModelDir, name, assets.ModelExts)
	if err != nil {
		return nil, err
	}
	return mesh.LoadOBJFile(path)
}

// showFlags adds --show and --hide to fs. With neither set the current value is flipped.
func showFlags(fs *flag.FlagSet) func(cur bool) bool {
	show := fs.Bool("show", false, "turn on")
	hide := fs.Bool("hide", false, "turn off")
	return func(cur bool) bool {
		defer func() { *show, *hide = false, false }()
		switch {
		case *show:
			return true
		case *hide:
			return false
		}
		return !cur
	}
}

func registerCommands(reg *commands.Registry, c *console) {
	fpsFS := flag.NewFlagSet("fps", flag.ContinueOnError)
	fps := showFlags(fpsFS)
	reg.Register("fps", "[--show|--hide] FPS counter", fpsFS, func([]string) error {
		c.debug.ShowFPS = fps(c.debug.ShowFPS)
		c.prefs.ShowFPS = c.debug.ShowFPS
		return nil
	})

	statusFS := flag.NewFlagSet("status", flag.ContinueOnError)
	status := showFlags(statusFS)
	reg.Register("status", "[--show|--hide] camera and grab readout", statusFS, func([]string) error {
		c.debug.ShowCamera = status(c.debug.ShowCamera)
		return nil
	})

	previewFS := flag.NewFlagSet("preview", flag.ContinueOnError)
	preview := showFlags(previewFS)
	reg.Register("preview", "[--show|--hide] billboard texture tile", previewFS, func([]string) error {
		c.scene.ShowPreview = preview(c.scene.ShowPreview)
		c.prefs.ShowPreview = c.scene.ShowPreview
		return nil
	})

	reg.Register("light", "<name> <x> <y> <z> move a light", nil, func(args []string) error {
		if len(args) != 4 {
			return fmt.Errorf("usage: /light <name> <x> <y> <z>")
		}
		var p mgl32.Vec3
		for i, a := range args[1:] {
			v, err := strconv.ParseFloat(a, 32)
			if err != nil {
				return fmt.Errorf("light: %w", err)
			}
			p[i] = float32(v)
		}
		if err := c.scene.SetLightPos(args[0], p); err != nil {
			return err
		}
		c.log.Logf("light %s at %.2f %.2f %.2f", args[0], p.X(), p.Y(), p.Z())
		return nil
	})

	reg.Register("period", "<seconds> background blend period", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: /period <seconds>")
		}
		v, err := strconv.ParseFloat(args[0], 32)
		if err != nil {
			return fmt.Errorf("period: %w", err)
		}
		if err := c.scene.SetColorPeriod(float32(v)); err != nil {
			return err
		}
		c.prefs.ColorPeriod = float32(v)
		return nil
	})

	reg.Register("models", "list model files", nil, func([]string) error {
		list, err := assets.ScanDir(assets.ModelDir, assets.ModelExts)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			c.log.Logf("no models in %s", assets.ModelDir)
		}
		for _, rel := range list {
			c.log.Log(rel)
		}
		return nil
	})

	spawnFS := flag.NewFlagSet("spawn", flag.ContinueOnError)
	spawnTex := spawnFS.String("texture", "", "image name or path, or blank, uv, checker (default blank)")
	spawnBillboard := spawnFS.Bool("billboard", false, "spawn a camera-facing quad instead of a model")
	spawnScatter := spawnFS.Float64("scatter", 0, "random offset from the spawn point, in world units")
	reg.Register("spawn", "[--texture name] [--billboard] [--scatter r] <model> add a draggable object", spawnFS, func(args []string) error {
		defer func() { *spawnTex, *spawnBillboard, *spawnScatter = "", false, 0 }()
		if len(args) != 1 {
			return fmt.Errorf("usage: /spawn [--texture name] [--billboard] [--scatter r] <model>")
		}
		def := scene.ObjectDef{Name: args[0], Draggable: true, Billboard: *spawnBillboard}
		if *spawnBillboard {
			def.Shape = scene.ShapeQuad
		} else {
			def.Model = args[0]
		}
		if tex := *spawnTex; tex != "" {
			if !textures.IsBuiltin(tex) {
				path, err := assets.Find(assets.ImageDir, tex, assets.ImageExts)
				if err != nil {
					return err
				}
				tex = path
			}
			def.Texture = tex
		}
		obj := scene.NewObject(def, findModel, c.log)
		c.scene.AddObject(obj, spawnDistance)
		c.scene.Scatter(obj, float32(*spawnScatter))
		c.log.Logf("spawned %s", obj.Name)
		return nil
	})

	reg.Register("remove", "<name> remove an object", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: /remove <name>")
		}
		o, err := c.scene.RemoveObject(args[0])
		if err != nil {
			return err
		}
		c.render.Release(o.Mesh)
		return nil
	})

	reg.Register("reset", "put the camera back at the start", nil, func([]string) error {
		c.scene.ResetCamera()
		return nil
	})

	reg.Register("save", "write preferences to disk", nil, func([]string) error {
		if err := engineconfig.Save(c.prefsPath, *c.prefs); err != nil {
			return err
		}
		c.log.Logf("saved %s", c.prefsPath)
		return nil
	})

	reg.Register("help", "list commands", nil, func([]string) error {
		for _, line := range reg.Help() {
			c.log.Log(line)
		}
		return nil
	})
}
