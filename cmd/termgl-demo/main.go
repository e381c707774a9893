// Command termgl-demo draws a spinning triangle in the terminal.
//
// Press Escape, q or Ctrl+C to quit. With -headless the frames are rendered
// off-screen and the last one is saved as a PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chewxy/math32"

	"github.com/gogpu/termgl"
	"github.com/gogpu/termgl/term"
)

type vertex struct {
	Position termgl.Vec3
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "termgl-demo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "YAML scene file")
		mode       = flag.String("mode", "", "topology: POINTS, LINES, LINE_LOOP, LINE_STRIP, TRIANGLES, TRIANGLE_STRIP, TRIANGLE_FAN")
		fps        = flag.Int("fps", 0, "frames per second")
		fov        = flag.Float64("fov", 0, "vertical field of view in degrees")
		logFile    = flag.String("log", "", "log file")
		logLevel   = flag.String("log-level", "", "log level: debug, info, warn, error")
		headless   = flag.Bool("headless", false, "render off-screen and save the last frame")
		frames     = flag.Int("frames", 0, "stop after this many frames (0 runs until quit)")
		width      = flag.Int("width", 80, "headless frame buffer width")
		height     = flag.Int("height", 40, "headless frame buffer height")
		output     = flag.String("output", "termgl.png", "headless output file")
	)
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			return err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "fps":
			cfg.FPS = *fps
		case "fov":
			cfg.FOV = float32(*fov)
		case "log":
			cfg.Log.File = *logFile
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	sc, err := cfg.scene()
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.Log.File, sc.logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *headless {
		return runHeadless(ctx, sc, *width, *height, *frames, *output)
	}
	return runTerminal(ctx, sc, *frames)
}

// setupLogging routes library and demo logs to path.
func setupLogging(path string, level slog.Level) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	termgl.SetLogger(logger)
	return func() {
		termgl.SetLogger(nil)
		_ = f.Close()
	}, nil
}

func runTerminal(ctx context.Context, sc scene, frames int) error {
	screen, err := term.Open()
	if err != nil {
		return err
	}
	defer screen.Close()

	w, h := screen.Size()
	gl := termgl.NewContext(w, h,
		termgl.WithWorkers(sc.workers),
		termgl.WithReporter(term.NewReporter(screen, nil)))
	defer gl.Close()

	r, err := newRenderer(gl, sc)
	if err != nil {
		return err
	}

	quit := false
	screen.SetResizeCallback(func(_ *term.Screen, w, h int) {
		r.resize(w, h)
	})
	screen.SetKeyCallback(func(_ *term.Screen, k term.Key) {
		switch k {
		case term.KeyEscape, term.KeyCtrlC, 'q':
			quit = true
		}
	})

	ticker := time.NewTicker(time.Second / time.Duration(sc.fps))
	defer ticker.Stop()

	start := time.Now()
	last := start
	for n := 0; frames == 0 || n < frames; n++ {
		screen.PollEvents()
		if quit {
			return nil
		}

		now := time.Now()
		if err := r.frame(now.Sub(start)); err != nil {
			return err
		}
		if err := screen.Display(gl.FrameBuffer()); err != nil {
			return err
		}
		slog.Debug("frame", "timestep", now.Sub(last), "fps", 1/now.Sub(last).Seconds())
		last = now

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

func runHeadless(ctx context.Context, sc scene, w, h, frames int, output string) error {
	if frames <= 0 {
		frames = 1
	}
	gl := termgl.NewContext(w, h, termgl.WithWorkers(sc.workers))
	defer gl.Close()

	r, err := newRenderer(gl, sc)
	if err != nil {
		return err
	}
	step := time.Second / time.Duration(sc.fps)
	for n := range frames {
		if ctx.Err() != nil {
			break
		}
		if err := r.frame(time.Duration(n) * step); err != nil {
			return err
		}
	}
	if err := gl.FrameBuffer().SavePNG(output); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	slog.Info("frame saved", "path", output, "width", w, "height", h)
	return nil
}

// renderer owns the GL objects of the scene.
type renderer struct {
	gl      *termgl.Context
	sc      scene
	buffer  int
	program int
	indices []uint32
}

func newRenderer(gl *termgl.Context, sc scene) (*renderer, error) {
	r := &renderer{gl: gl, sc: sc, indices: indicesFor(sc.mode)}

	r.program = gl.CreateProgram()
	gl.UseProgram(r.program)
	gl.AttachShader(r.program, termgl.NewVertexShader(transformVertex))
	gl.AttachShader(r.program, termgl.UniformFragment("u_color", sc.glyph))
	if !gl.LinkProgram(r.program) {
		return nil, errors.New("program is missing a shader stage")
	}
	if err := termgl.SetUniform(gl, r.program, "u_color", sc.color); err != nil {
		return nil, err
	}
	if err := termgl.SetUniform(gl, r.program, "u_transform", termgl.Identity4()); err != nil {
		return nil, err
	}

	r.buffer = gl.CreateBuffers(1)[0]
	gl.BindBuffer(r.buffer)
	termgl.BufferData(gl, triangle())
	gl.BindBuffer(0)

	r.resize(gl.Width(), gl.Height())
	return r, nil
}

// resize fits the frame buffer, viewport and projection to w x h cells.
func (r *renderer) resize(w, h int) {
	r.gl.Resize(w, h)
	aspect := float32(1)
	if h > 0 {
		aspect = float32(w) / float32(h)
	}
	proj := termgl.Perspective(termgl.Radians(r.sc.fov), aspect, 0.1, 1000)
	view := termgl.LookAt(termgl.V3(0, 0, 2), termgl.V3(0, 0, 0), termgl.V3(0, 1, 0))
	if err := termgl.SetUniform(r.gl, r.program, "u_viewProjection", termgl.MulMat4(proj, view)); err != nil {
		slog.Error("set projection", "err", err)
	}
}

// frame draws the scene at time t.
func (r *renderer) frame(t time.Duration) error {
	r.gl.FrameBuffer().ClearColor(r.sc.background)

	angle := termgl.Radians(float32(t.Seconds()) * r.sc.speed)
	transform := termgl.Rotate4(angle, termgl.V3(0, 0, 1))
	if err := termgl.SetUniform(r.gl, r.program, "u_transform", transform); err != nil {
		return err
	}

	r.gl.BindBuffer(r.buffer)
	r.gl.UseProgram(r.program)
	return r.gl.DrawElements(r.sc.mode, r.indices)
}

func transformVertex(env termgl.Env, v vertex, _ int) (termgl.Vec4, error) {
	vp, err := termgl.Uniform[termgl.Mat4](env, "u_viewProjection")
	if err != nil {
		return termgl.Vec4{}, err
	}
	model, err := termgl.Uniform[termgl.Mat4](env, "u_transform")
	if err != nil {
		return termgl.Vec4{}, err
	}
	return termgl.MulVec4(termgl.MulMat4(vp, model), termgl.Point4(v.Position)), nil
}

// triangle returns an equilateral triangle inscribed in the unit circle.
func triangle() []vertex {
	s, c := math32.Sincos(2 * math32.Pi / 3)
	return []vertex{
		{termgl.V3(0, 1, 0)},
		{termgl.V3(s, c, 0)},
		{termgl.V3(-s, c, 0)},
	}
}

// indicesFor returns the index list drawing the triangle outline or surface
// with mode.
func indicesFor(mode termgl.Topology) []uint32 {
	if mode == termgl.Lines {
		return []uint32{0, 1, 1, 2, 2, 0}
	}
	return []uint32{0, 1, 2}
}
