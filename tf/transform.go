// Package tf keeps the robot's frame tree and answers transform lookups
// between any two connected frames.
package tf

import (
	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform maps points expressed in a source frame into a target frame:
// p_target = Rotation * p_source * conj(Rotation) + Translation.
type Transform struct {
	Translation r3.Vec
	Rotation    quat.Number
}

// Identity leaves every point where it is.
var Identity = Transform{Rotation: quat.Number{Real: 1}}

// FromMsg converts a wire transform. A zero quaternion is read as identity.
func FromMsg(m geometry_msgs.Transform) Transform {
	q := quat.Number{Real: m.Rotation.W, Imag: m.Rotation.X, Jmag: m.Rotation.Y, Kmag: m.Rotation.Z}
	if n := quat.Abs(q); n == 0 {
		q = quat.Number{Real: 1}
	} else {
		q = quat.Scale(1/n, q)
	}
	return Transform{
		Translation: r3.Vec{X: m.Translation.X, Y: m.Translation.Y, Z: m.Translation.Z},
		Rotation:    q,
	}
}

// Msg converts back to the wire representation.
func (t Transform) Msg() geometry_msgs.Transform {
	return geometry_msgs.Transform{
		Translation: geometry_msgs.Vector3{X: t.Translation.X, Y: t.Translation.Y, Z: t.Translation.Z},
		Rotation:    geometry_msgs.Quaternion{X: t.Rotation.Imag, Y: t.Rotation.Jmag, Z: t.Rotation.Kmag, W: t.Rotation.Real},
	}
}

// Apply moves p from the source frame into the target frame.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Add(rotate(t.Rotation, p), t.Translation)
}

// Compose returns the transform that applies other first, then t.
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		Translation: r3.Add(rotate(t.Rotation, other.Translation), t.Translation),
		Rotation:    quat.Mul(t.Rotation, other.Rotation),
	}
}

// Inverse maps target frame points back into the source frame.
func (t Transform) Inverse() Transform {
	inv := quat.Conj(t.Rotation)
	return Transform{
		Translation: r3.Scale(-1, rotate(inv, t.Translation)),
		Rotation:    inv,
	}
}

func rotate(q quat.Number, p r3.Vec) r3.Vec {
	v := quat.Mul(quat.Mul(q, quat.Number{Imag: p.X, Jmag: p.Y, Kmag: p.Z}), quat.Conj(q))
	return r3.Vec{X: v.Imag, Y: v.Jmag, Z: v.Kmag}
}
