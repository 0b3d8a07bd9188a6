package main

import (
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/devices/fffe/clock"
	"github.com/hexaflex/c8vm/devices/fffe/cpu"
	"github.com/hexaflex/c8vm/devices/fffe/display"
	"github.com/hexaflex/c8vm/devices/fffe/keypad"
	"github.com/hexaflex/c8vm/devices/fffe/rng"
)

// padKeys maps keyboard keys onto the keypad.
var padKeys = func() map[glfw.Key]byte {
	m := make(map[glfw.Key]byte, keypad.KeyCount)
	for _, r := range keypad.Layout {
		key, _ := keypad.KeyForRune(r)
		m[glfw.Key(unicode.ToUpper(r))] = key
	}
	return m
}()

// App defines application context.
type App struct {
	config       *Config         // Application configuration.
	window       *glfw.Window    // OpenGL/GLFW context.
	cpu          *CPUController  // VM with program to be run.
	display      *display.Device // Display renderer.
	keypad       *keypad.Device  // Keypad state.
	gamepad      *Gamepad        // Optional gamepad input.
	titleUpdated time.Time       // Value used to periodically update window title.
	lastRendered time.Time       // Last time a frame was rendered.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.display = display.New(config.Foreground, config.Background)
	a.keypad = keypad.New()
	a.gamepad = NewGamepad(a.keypad)
	a.cpu = NewCPUController(a.printTrace, clock.New(config.Frequency), a.display, a.keypad, rng.New(config.Seed))
	a.cpu.CPU().SetLoopDetection(!config.NoHalt)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	if err := a.cpu.Startup(); err != nil {
		return err
	}

	a.gamepad.Startup()

	log.Println(Version())
	printHelp()

	if err := a.loadProgram(); err != nil {
		return err
	}

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	a.gamepad.Update()

	if err := a.cpu.RunFrame(); err != nil {
		log.Println(err)
	}

	// Periodically render display contents.
	if time.Since(a.lastRendered) >= time.Second/clock.FrameRate {
		a.lastRendered = time.Now()
		a.display.Present(a.cpu.CPU().Display())

		gl.Clear(gl.COLOR_BUFFER_BIT)
		a.display.Draw()
		a.window.SwapBuffers()
	}

	// Periodically update the window title to show the current instruction frequency.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		a.window.SetTitle(fmt.Sprintf("%s %s - %s", AppName, a.status(), prettyFrequency(a.cpu.Frequency())))
	}

	glfw.PollEvents()
}

// status describes the execution state for the window title.
func (a *App) status() string {
	c := a.cpu.CPU()
	switch {
	case c.Halted():
		return "halted"
	case c.WaitingForInput():
		return "waiting for key"
	case c.StepMode():
		return "paused"
	default:
		return "running"
	}
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	a.gamepad.Shutdown()

	if err := a.cpu.Shutdown(); err != nil {
		log.Println(err)
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if pk, ok := padKeys[key]; ok {
		switch action {
		case glfw.Press:
			a.keypad.Press(pk)
		case glfw.Release:
			a.keypad.Release(pk)
		}
		return
	}

	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF2:
		a.cpu.ToggleRun()
	case glfw.KeyF3:
		err = a.cpu.Step()
	case glfw.KeyF4:
		a.config.PrintTrace = !a.config.PrintTrace
	case glfw.KeyF5:
		err = a.loadProgram()
	}

	if err != nil {
		log.Println(err)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	width := cpu.DisplayWidth * a.config.ScaleFactor
	height := cpu.DisplayHeight * a.config.ScaleFactor

	a.window, err = glfw.CreateWindow(width, height, AppName, nil, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// loadProgram loads the current program from disk and restarts the cpu.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.Program)

	a.keypad.Reset()
	if err := a.cpu.Load(a.config.Program); err != nil {
		return err
	}

	if a.config.StepMode {
		a.cpu.Stop()
	} else {
		a.cpu.Start()
	}
	return nil
}

// printTrace prints instruction trace data. This can be toggled
// on and off through a.config.PrintTrace.
func (a *App) printTrace(i *cpu.Instruction) {
	if a.config.PrintTrace {
		fmt.Println(i)
	}
}

// printHelp writes a short overview of supported shortcut keys to the log.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the program.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F2       Pause/Resume program execution.\n")
	sb.WriteString(" F3       Perform a single execution step.\n")
	sb.WriteString(" F4       Enable/Disable debug trace output.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the cpu.\n")
	sb.WriteString("keypad:\n")
	for i := 0; i < len(keypad.Layout); i += 4 {
		fmt.Fprintf(&sb, " %s\n", strings.ToUpper(keypad.Layout[i:i+4]))
	}
	log.Print(sb.String())
}

// prettyFrequency returns a human-readable version of the given clock frequency in hertz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
