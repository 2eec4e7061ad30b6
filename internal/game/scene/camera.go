package scene

import "github.com/vovakirdan/lumin/internal/core"

// Camera scrolls horizontally toward the player.
type Camera struct {
	X float64

	viewW  float64
	levelW float64
	lerp   float64
}

// NewCamera creates a camera for a view of viewW over a level of levelW.
func NewCamera(viewW, levelW, lerp float64) *Camera {
	return &Camera{viewW: viewW, levelW: levelW, lerp: lerp}
}

// Follow closes a fraction of the distance to the position that centres x,
// clamped so the view never leaves the level.
func (c *Camera) Follow(x float64) {
	target := core.ClampF(x-c.viewW/2, 0, c.maxX())
	c.X += (target - c.X) * c.lerp
}

// Snap moves the camera straight onto x.
func (c *Camera) Snap(x float64) {
	c.X = core.ClampF(x-c.viewW/2, 0, c.maxX())
}

func (c *Camera) maxX() float64 {
	if c.levelW <= c.viewW {
		return 0
	}
	return c.levelW - c.viewW
}
