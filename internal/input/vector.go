package input

import (
	"math"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/physics"
)

// KeyVector combines held direction keys into a movement vector.
// Diagonals are scaled by config.DiagonalFactor.
func KeyVector(up, down, left, right bool) physics.Vec {
	var v physics.Vec
	if up {
		v.Y--
	}
	if down {
		v.Y++
	}
	if left {
		v.X--
	}
	if right {
		v.X++
	}
	if v.X != 0 && v.Y != 0 {
		v = v.Scale(config.DiagonalFactor)
	}
	return v
}

// DragVector turns an analog drag from start to cur into a movement vector.
// Drags inside the dead zone produce no movement; full speed is reached at
// config.TouchSensitivity units. Unlike KeyVector, diagonals are not scaled:
// the drag length already sets the speed.
func DragVector(start, cur physics.Vec) physics.Vec {
	d := cur.Sub(start)
	dist := d.Len()
	if dist <= config.TouchDeadZone {
		return physics.Vec{}
	}
	return d.Scale(1 / math.Max(dist, config.TouchSensitivity))
}
