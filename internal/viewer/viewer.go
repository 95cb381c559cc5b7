// Package viewer implements the interactive skeleton viewer loop.
package viewer

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/skelrig/internal/config"
	"github.com/Faultbox/skelrig/internal/engine/input"
	"github.com/Faultbox/skelrig/internal/engine/render"
	"github.com/Faultbox/skelrig/internal/engine/texture"
	"github.com/Faultbox/skelrig/internal/engine/window"
	"github.com/Faultbox/skelrig/pkg/formats"
	"github.com/Faultbox/skelrig/pkg/rig"
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	running bool
	paused  bool

	window   *window.Window
	renderer *render.BoneRenderer
	textures *texture.Loader
	in       *input.Input

	skeleton  *rig.Skeleton
	animNames []string

	width  int32
	height int32

	dragging   bool
	lastMouseX int
	lastMouseY int
}

// New creates a viewer: loads the rig and animation documents, opens the
// window, and uploads bone textures. The OpenGL context must not exist yet;
// window creation owns it.
func New(cfg *config.Config) (*Viewer, error) {
	slog.Info("initializing viewer",
		"rig", cfg.Content.RigFile,
		"docs", len(cfg.Content.AnimationDocs),
		"width", cfg.Window.Width,
		"height", cfg.Window.Height,
	)

	v := &Viewer{
		cfg:    cfg,
		width:  int32(cfg.Window.Width),
		height: int32(cfg.Window.Height),
	}

	def, err := formats.LoadRigDef(cfg.Content.RigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rig: %w", err)
	}

	v.skeleton, err = rig.BuildSkeleton(def)
	if err != nil {
		return nil, fmt.Errorf("failed to build skeleton: %w", err)
	}

	if err := v.loadAnimations(); err != nil {
		return nil, err
	}

	// Create window (this also creates the OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      "SkelRig Viewer",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since the OpenGL context must exist)
	v.renderer, err = render.NewBoneRenderer()
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.textures = texture.NewLoader(cfg.Content.TextureDir)
	v.assignTextures(def)

	v.in = input.New()

	// Park the skeleton near the lower center of the window.
	v.skeleton.X = float32(cfg.Window.Width) / 2
	v.skeleton.Y = float32(cfg.Window.Height) * 0.6

	v.startInitialAnimation()

	slog.Info("viewer initialized", "bones", len(def.Bones), "animations", len(v.animNames))
	return v, nil
}

// loadAnimations imports every configured animation document into the skeleton.
func (v *Viewer) loadAnimations() error {
	var bm rig.BoneMap
	if v.cfg.Content.BoneMap != "" {
		var err error
		bm, err = rig.LoadBoneMap(v.cfg.Content.BoneMap)
		if err != nil {
			return fmt.Errorf("failed to load bone map: %w", err)
		}
	}
	importer := rig.NewImporter(bm)

	for _, path := range v.cfg.Content.AnimationDocs {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read animation doc: %w", err)
		}

		anims, warnings, err := importer.ImportDocument(data)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
		for _, w := range warnings {
			slog.Warn("animation import", "doc", path, "detail", w)
		}
		for _, a := range anims {
			v.skeleton.AddAnimation(a)
			slog.Debug("animation loaded",
				"name", a.Name,
				"duration", a.Duration,
				"loop", a.Loop,
				"bones", len(a.AnimatedBoneNames()),
			)
		}
	}

	v.animNames = v.skeleton.AnimationNames()
	return nil
}

// assignTextures uploads each bone image and hands the GL handle to the bone.
// A bone whose image fails to load keeps handle zero and renders as a flat quad.
func (v *Viewer) assignTextures(def *formats.RigDef) {
	for i := range def.Bones {
		bd := &def.Bones[i]
		if bd.Texture == "" {
			continue
		}
		bone := v.skeleton.BoneByName(bd.Name)
		if bone == nil {
			continue
		}
		id, err := v.textures.Load(bd.Texture)
		if err != nil {
			slog.Warn("texture load failed", "bone", bd.Name, "path", bd.Texture, "error", err)
			continue
		}
		bone.Texture = id
	}
}

func (v *Viewer) startInitialAnimation() {
	name := v.cfg.Playback.InitialAnimation
	if name == "" && len(v.animNames) > 0 {
		name = v.animNames[0]
	}
	if name != "" {
		v.skeleton.PlayAnimation(name)
		slog.Info("playing", "animation", name)
	}
}

// Run starts the main viewer loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	slog.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.in.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		if !v.paused {
			v.skeleton.Update(dt * v.cfg.Playback.Speed)
		} else {
			// Keep world transforms fresh while paused so dragging still works.
			v.skeleton.Update(0)
		}

		v.renderer.Begin(v.width, v.height)
		v.renderer.DrawList(v.skeleton.DrawRecords())
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			slog.Debug("fps", "count", frameCount, "dt", fmt.Sprintf("%.2fms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, e := range v.in.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.width = int32(e.Width)
			v.height = int32(e.Height)

		case input.EventKeyDown:
			v.handleKey(e.Key)

		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				v.dragging = true
				v.lastMouseX = e.MouseX
				v.lastMouseY = e.MouseY
			}

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				v.dragging = false
			}

		case input.EventMouseMove:
			if v.dragging {
				v.skeleton.X += float32(e.MouseX - v.lastMouseX)
				v.skeleton.Y += float32(e.MouseY - v.lastMouseY)
				v.lastMouseX = e.MouseX
				v.lastMouseY = e.MouseY
			}

		case input.EventMouseWheel:
			scale := v.skeleton.Scale * (1 + float32(e.WheelY)*0.1)
			if scale < 0.05 {
				scale = 0.05
			}
			v.skeleton.Scale = scale
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch {
	case key == sdl.SCANCODE_ESCAPE:
		v.running = false

	case key == sdl.SCANCODE_SPACE:
		v.paused = !v.paused

	case key == sdl.SCANCODE_F:
		v.skeleton.FlipX = !v.skeleton.FlipX

	case key >= sdl.SCANCODE_1 && key <= sdl.SCANCODE_9:
		idx := int(key - sdl.SCANCODE_1)
		if idx < len(v.animNames) {
			name := v.animNames[idx]
			v.skeleton.TransitionTo(name, v.cfg.Playback.BlendSeconds)
			slog.Info("transition", "animation", name, "blend", v.cfg.Playback.BlendSeconds)
		}
	}
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	slog.Info("closing viewer")

	if v.textures != nil {
		v.textures.Destroy()
	}
	if v.renderer != nil {
		v.renderer.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}
