package main

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/c8vm/devices/fffe/keypad"
)

// gamepadKeys maps gamepad buttons onto the keypad. Most programs steer
// with 2/4/6/8 and act with 5.
var gamepadKeys = map[glfw.GamepadButton]byte{
	glfw.ButtonDpadUp:    0x2,
	glfw.ButtonDpadLeft:  0x4,
	glfw.ButtonDpadRight: 0x6,
	glfw.ButtonDpadDown:  0x8,
	glfw.ButtonA:         0x5,
	glfw.ButtonB:         0x0,
	glfw.ButtonX:         0xa,
	glfw.ButtonY:         0xb,
}

// Gamepad feeds the state of a connected gamepad into the keypad.
type Gamepad struct {
	pad       *keypad.Device
	joy       glfw.Joystick
	pressed   [glfw.ButtonLast + 1]bool
	connected bool
}

// NewGamepad creates a gamepad which drives the given keypad.
func NewGamepad(pad *keypad.Device) *Gamepad {
	return &Gamepad{pad: pad}
}

// Startup detects any connected gamepad.
func (g *Gamepad) Startup() {
	glfw.SetJoystickCallback(g.configure)

	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() && joy.IsGamepad() {
			g.configure(joy, glfw.Connected)
			break
		}
	}
}

// Shutdown stops listening for gamepad events.
func (g *Gamepad) Shutdown() {
	glfw.SetJoystickCallback(nil)
	g.releaseAll()
}

// Update presses and releases keypad keys for changed buttons.
func (g *Gamepad) Update() {
	if !g.connected {
		return
	}

	state := g.joy.GetGamepadState()
	if state == nil {
		return
	}

	for btn, key := range gamepadKeys {
		pressed := state.Buttons[btn] == glfw.Press
		if pressed == g.pressed[btn] {
			continue
		}

		g.pressed[btn] = pressed
		if pressed {
			g.pad.Press(key)
		} else {
			g.pad.Release(key)
		}
	}
}

// configure is called whenever a joystick is connected or disconnected from the system.
func (g *Gamepad) configure(joy glfw.Joystick, event glfw.PeripheralEvent) {
	g.releaseAll()
	g.connected = event == glfw.Connected && joy.IsGamepad()
	g.joy = joy

	if g.connected {
		log.Println("gamepad connected:", joy.GetGamepadName())
	} else {
		log.Println("gamepad disconnected")
	}
}

func (g *Gamepad) releaseAll() {
	for btn, key := range gamepadKeys {
		if g.pressed[btn] {
			g.pad.Release(key)
			g.pressed[btn] = false
		}
	}
}
