// Package eqviz is a small OpenGL heat-map viewer for corr.FullMap results.
// It adapts the teacher's NES frame-buffer-to-texture pipeline
// (github.com/go-gl/gl + github.com/go-gl/glfw/v3.3/glfw) to a different
// payload: instead of pumping successive PPU frames into a textured quad,
// it pumps successive match-count full maps, normalized to grayscale. This
// package is purely a viewing aid; corr.Compute has no dependency on it.
package eqviz

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/hash-cad/eqcorr2d/corr"
)

// Shaders for a 2D textured quad, unchanged from the teacher's frame
// viewer: a heat map is displayed exactly like a video frame.
const (
	vertexShader = `
  #version 330

  attribute vec3 position;
  attribute vec2 uv;
  varying vec2 vuv;
  void main(void){
    gl_Position = vec4(position, 1.0);
    vuv = uv;
  }
  ` + "\x00"

	fragmentShader = `
  #version 330

  varying vec2 vuv;
  uniform sampler2D texture;
  void main(void){
    gl_FragColor = texture2D(texture, vuv);
  }
  ` + "\x00"
)

func compileShader(code string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	ccode := gl.Str(code)
	gl.ShaderSource(shader, 1, &ccode, nil)
	gl.CompileShader(shader)
	var result int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &result)
	if result == gl.FALSE {
		var length int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile a shader: %v\n %v", code, log)
	}
	return shader, nil
}

func newProgram() (uint32, error) {
	vs, err := compileShader(vertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	var result int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &result)
	if result == gl.FALSE {
		var length int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to link a program: %v", log)
	}
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program, nil
}

var vertexPosition = []float32{
	1, 1,
	-1, 1,
	-1, -1,
	1, -1,
}
var vertexUV = []float32{
	1, 0,
	0, 0,
	0, 1,
	1, 1,
}

func updateTexture(program uint32, img *image.RGBA) {
	var textureId uint32
	gl.GenTextures(1, &textureId)
	gl.BindTexture(gl.TEXTURE_2D, textureId)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Rect.Size().X), int32(img.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	positionLocation := uint32(gl.GetAttribLocation(program, gl.Str("position\x00")))
	uvLocation := uint32(gl.GetAttribLocation(program, gl.Str("uv\x00")))
	textureLocation := gl.GetUniformLocation(program, gl.Str("texture\x00"))
	gl.EnableVertexAttribArray(positionLocation)
	gl.EnableVertexAttribArray(uvLocation)
	gl.Uniform1i(textureLocation, 0)
	gl.VertexAttribPointer(positionLocation, 2, gl.FLOAT, false, 0, gl.Ptr(vertexPosition))
	gl.VertexAttribPointer(uvLocation, 2, gl.FLOAT, false, 0, gl.Ptr(vertexUV))
	gl.BindTexture(gl.TEXTURE_2D, textureId)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
}

// heatImage renders a FullMap as a grayscale image.RGBA: 0 matches is
// black, the map's own maximum cell is white. An empty map renders as a
// single black pixel so the viewer never has to special-case it.
func heatImage(m *corr.FullMap) *image.RGBA {
	h, w := m.H, m.W
	if h == 0 || w == 0 {
		h, w = 1, 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var peak int32
	for _, v := range m.Data {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			level := uint8((int64(m.At(y, x)) * 255) / int64(peak))
			img.SetRGBA(x, y, color.RGBA{level, level, level, 255})
		}
	}
	return img
}

// Frame names one full map in a run, shown as the window title while it is
// on screen.
type Frame struct {
	Title string
	Map   *corr.FullMap
}

// Show opens a window and displays frames one at a time; pressing the space
// bar or the right-arrow key advances to the next frame, escape or closing
// the window ends the run. It blocks until the window is closed or every
// frame has been shown.
func Show(frames []Frame, width, height int) error {
	if len(frames) == 0 {
		return nil
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("eqviz: glfw init: %w", err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	window, err := glfw.CreateWindow(width, height, "eqcorr2d", nil, nil)
	if err != nil {
		return fmt.Errorf("eqviz: creating window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("eqviz: gl init: %w", err)
	}
	program, err := newProgram()
	if err != nil {
		return fmt.Errorf("eqviz: building shader program: %w", err)
	}
	gl.UseProgram(program)

	index := 0
	advance := false
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeySpace, glfw.KeyRight:
			advance = true
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
	})

	glog.V(1).Infof("eqviz: showing %d frame(s)", len(frames))
	for !window.ShouldClose() && index < len(frames) {
		window.SetTitle(fmt.Sprintf("eqcorr2d: %s (%d/%d)", frames[index].Title, index+1, len(frames)))
		updateTexture(program, heatImage(frames[index].Map))
		window.SwapBuffers()
		glfw.PollEvents()
		if advance {
			advance = false
			index++
		}
		time.Sleep(1 * time.Millisecond)
	}
	return nil
}
