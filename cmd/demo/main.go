package main

import (
	"image/color"
	"math/rand/v2"
	"os"
	"time"

	"billboard-demo/internal/camera"
	"billboard-demo/internal/commands"
	"billboard-demo/internal/debug"
	"billboard-demo/internal/engineconfig"
	"billboard-demo/internal/env"
	"billboard-demo/internal/graphics"
	"billboard-demo/internal/logger"
	"billboard-demo/internal/mesh"
	"billboard-demo/internal/render"
	"billboard-demo/internal/scene"
	"billboard-demo/internal/terminal"
)

func main() {
	_ = env.Load(".env")
	log := logger.New(env.Get(env.LogPath, logger.DefaultPath))

	prefsPath := env.Get(env.ConfigPath, engineconfig.DefaultPath)
	prefs, err := engineconfig.Load(prefsPath)
	if err != nil {
		log.Logf("config %s: %v, using defaults", prefsPath, err)
	}

	scn, err := buildScene(prefs, log)
	if err != nil {
		log.Log(err.Error())
		os.Exit(1)
	}

	rend := render.New(prefs.MaxTextureSize, log)
	dbg := debug.New()
	dbg.ShowFPS = prefs.ShowFPS

	reg := commands.NewRegistry(log)
	term := terminal.New(log, reg)
	win := graphics.NewWindow(graphics.Options{
		Title:      prefs.Title,
		Width:      int32(prefs.WindowWidth),
		Height:     int32(prefs.WindowHeight),
		Fullscreen: prefs.Fullscreen,
		TargetFPS:  int32(prefs.TargetFPS),
	})
	registerCommands(reg, &console{
		scene:     scn,
		render:    rend,
		debug:     dbg,
		prefs:     &prefs,
		prefsPath: prefsPath,
		log:       log,
	})

	lightKeys := make([]string, 0, len(scn.Lights))
	for _, l := range scn.Lights {
		if l.Key != "" {
			lightKeys = append(lightKeys, l.Key)
		}
	}

	update := func(dt float32) {
		consoleActive := term.Update()
		in := graphics.PollInput(lightKeys, consoleActive)
		win.Apply(scn.Update(in, dt))
		win.LockCursor(scn.Camera.MouseLook && !term.IsOpen())
	}
	draw := func() {
		rend.Frame(scn)
		dbg.Draw(scn)
		term.Draw()
	}
	background := func() color.RGBA {
		return scn.Background.Current().RGBA()
	}

	log.Logf("demo started: %d objects, %d lights", len(scn.Objects), len(scn.Lights))
	err = win.Run(update, draw, background)
	rend.Unload()
	if err != nil {
		log.Log(err.Error())
		os.Exit(1)
	}
}

// buildScene loads the scene file named by DEMO_SCENE or the prefs and applies camera prefs.
func buildScene(prefs engineconfig.Prefs, log *logger.Logger) (*scene.Scene, error) {
	path := env.Get(env.ScenePath, prefs.ScenePath)
	def, err := scene.LoadDefinition(path)
	if err != nil {
		return nil, err
	}

	cam := camera.New()
	cam.FovY = prefs.FovY
	cam.Near = prefs.Near
	cam.Far = prefs.Far
	cam.Sensitivity = prefs.MouseSensitivity

	seed := prefs.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	scn, err := scene.Build(def, scene.Options{
		Camera:      cam,
		ColorPeriod: prefs.ColorPeriod,
		Rand:        rand.New(rand.NewPCG(seed, seed>>1|1)),
		LoadMesh:    mesh.LoadOBJFile,
		Log:         log,
	})
	if err != nil {
		return nil, err
	}
	scn.ShowPreview = prefs.ShowPreview
	return scn, nil
}
