package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// stickDeadZone ignores small left-stick deflection.
const stickDeadZone = 0.3

// Keyboard polls the keyboard and the first gamepad. Call Update once per
// ebiten tick before the controller reads it.
type Keyboard struct {
	// MoveX is the horizontal axis in [-1, 1].
	MoveX float64
	// Jump is true on the tick the jump key or button went down.
	Jump   bool
	Sprint bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

func (k *Keyboard) Update() {
	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}

	var gpJump, gpSprint bool
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -stickDeadZone || leftX > stickDeadZone {
			moveX = leftX
		}
		gpJump = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpSprint = ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightLeft) ||
			ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	k.MoveX = moveX
	// Edge-triggered so holding the key never re-fires a jump.
	k.Jump = inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsKeyJustPressed(ebiten.KeyUp) ||
		gpJump
	k.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) || gpSprint
}

func (k *Keyboard) JumpPressed() bool   { return k.Jump }
func (k *Keyboard) Horizontal() float64 { return k.MoveX }
func (k *Keyboard) SprintHeld() bool    { return k.Sprint }
