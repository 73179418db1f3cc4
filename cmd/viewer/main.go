package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"sb6-assets/internal/gpu"
	"sb6-assets/internal/gpu/glbackend"
	"sb6-assets/internal/ktx"
	"sb6-assets/internal/logging"
	"sb6-assets/internal/sbm"
)

func init() {
	// GL calls must come from the thread that owns the context.
	runtime.LockOSThread()
}

func main() {
	meshPath := flag.String("mesh", "", "SBM mesh to draw")
	texPath := flag.String("tex", "", "Optional 2D KTX texture")
	instances := flag.Int("instances", 1, "Instances per draw")
	distance := flag.Float64("distance", 3, "Camera distance")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()
	logging.Setup(*verbose)

	if *meshPath == "" {
		fmt.Fprintln(os.Stderr, "usage: viewer -mesh file.sbm [-tex file.ktx]")
		os.Exit(2)
	}
	if err := run(*meshPath, *texPath, *instances, float32(*distance)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(meshPath, texPath string, instances int, distance float32) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(800, 600, "sbm viewer", nil, nil)
	if err != nil {
		return err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	dev, err := glbackend.New()
	if err != nil {
		return err
	}

	mesh, err := sbm.Load(dev, meshPath)
	if err != nil {
		return err
	}
	fmt.Printf("Mesh: %s  %d vertices, %d sub-objects\n", meshPath, mesh.VertexCount(), mesh.SubObjectCount())

	var tex *ktx.Texture
	if texPath != "" {
		tex, err = ktx.Load(dev, texPath, 0, ktx.Options{})
		if err != nil {
			return err
		}
		if tex.Target != gpu.Target2D {
			return fmt.Errorf("%s: viewer samples 2D textures, got %v", texPath, tex.Target)
		}
		gl.TextureParameteri(uint32(tex.Handle), gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TextureParameteri(uint32(tex.Handle), gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		dev.Bind(0, tex.Handle)
		fmt.Printf("Texture: %s  %v %dx%d, %d levels\n", texPath, tex.Format, tex.Width, tex.Height, tex.Levels)
	}

	prog, err := newProgram()
	if err != nil {
		return err
	}

	// Number keys 1-9 pick a sub-object, 0 draws them all.
	selected := -1
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch {
		case key == glfw.KeyEscape:
			w.SetShouldClose(true)
		case key == glfw.Key0:
			selected = -1
		case key >= glfw.Key1 && key <= glfw.Key9:
			selected = int(key - glfw.Key1)
		}
	})

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.1, 0.1, 0.15, 1)

	for !window.ShouldClose() {
		fbw, fbh := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fbw), int32(fbh))
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		t := float32(glfw.GetTime())
		proj := mgl32.Perspective(mgl32.DegToRad(50), float32(fbw)/float32(max(fbh, 1)), 0.1, 100)
		mv := mgl32.Translate3D(0, 0, -distance).
			Mul4(mgl32.HomogRotate3DY(t * 0.7)).
			Mul4(mgl32.HomogRotate3DX(t * 0.3))
		prog.use(mv, proj, tex != nil)

		if selected < 0 && mesh.Indexed() {
			if err := mesh.Render(instances, 0); err != nil {
				return err
			}
		} else if selected < 0 {
			for i := 0; i < mesh.SubObjectCount(); i++ {
				if err := mesh.RenderSubObject(i, instances, 0); err != nil {
					return err
				}
			}
		} else if err := mesh.RenderSubObject(selected, instances, 0); err != nil {
			return err
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}
