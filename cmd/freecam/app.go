package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine"
	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
	"github.com/Carmen-Shannon/oxy-freecam/engine/config"
	"github.com/Carmen-Shannon/oxy-freecam/engine/input"
	"github.com/Carmen-Shannon/oxy-freecam/engine/logging"
	"github.com/Carmen-Shannon/oxy-freecam/engine/renderer"
	"github.com/Carmen-Shannon/oxy-freecam/engine/window"
)

// run builds the window, viewpoint, input router and renderer from cfg and blocks until
// the window closes. Must run on the main goroutine.
func run(cfg *config.Config) error {
	log := logging.New(cfg.Log)
	if cfg.File != "" {
		log.Info().Str("file", cfg.File).Msg("configuration loaded")
	}

	closeKey, err := cfg.Window.CloseKeyCode()
	if err != nil {
		return err
	}
	win := window.NewWindow(
		window.WithTitle(common.Coalesce(cfg.Window.Title, "freecam")),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithCloseKey(closeKey),
		window.WithLogger(logging.Component(log, "window")),
	)

	ctrl := camera.NewCameraController(cfg.Camera.ControllerOptions(logging.Component(log, "controller"))...)
	cam := camera.NewCamera(append(
		cfg.Camera.CameraOptions(aspect(win.Width(), win.Height())),
		camera.WithController(ctrl),
		camera.WithLabel("main"),
	)...)

	routerOpts, err := cfg.Input.RouterOptions(cfg.Camera.ConstrainPitch, logging.Component(log, "input"))
	if err != nil {
		win.Close()
		return err
	}
	router := input.NewRouter(ctrl, routerOpts...)
	router.Attach(win)
	// Focus loss swallows key-up events; drop held keys and the look capture.
	win.SetFocusCallback(func(focused bool) {
		if !focused {
			router.Release()
		}
	})

	presentMode := renderer.PresentModeUncapped
	if cfg.Engine.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithClearColor(renderer.ClearColorFromSlice(cfg.Engine.ClearColor)),
		renderer.WithForceSoftwareRenderer(cfg.Engine.SoftwareRenderer),
		renderer.WithLogger(logging.Component(log, "renderer")),
	)
	if err != nil {
		win.Close()
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithLogger(logging.Component(log, "engine")),
	)

	eng.SetTickCallback(router.Tick)
	eng.SetResizeCallback(func(width, height int) {
		cam.SetAspect(aspect(width, height))
	})

	mirror := cfg.Camera.Mirror
	eng.SetRenderCallback(func(dt float32) {
		cam.Update()
		if err := r.UploadCamera(cam); err != nil {
			log.Debug().Err(err).Msg("camera upload failed")
		}
		if !mirror {
			return
		}
		// The rear view is rebuilt from the primary every frame and then dropped.
		if rear := cam.Mirror(); rear != nil {
			if err := r.UploadCamera(rear); err != nil {
				log.Debug().Err(err).Msg("mirror upload failed")
			}
		}
	})

	if cfg.Engine.WatchConfig && cfg.File != "" {
		w, err := config.NewWatcher(cfg.File, logging.Component(log, "config"), func(next *config.Config) {
			next.Camera.Apply(ctrl)
			if next.Engine.Profiling {
				eng.EnableProfiler()
			} else {
				eng.DisableProfiler()
			}
		})
		if err != nil {
			log.Warn().Err(err).Msg("config hot reload disabled")
		} else {
			defer w.Close()
		}
	}

	eng.Run()
	r.Release()
	return win.Close()
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
