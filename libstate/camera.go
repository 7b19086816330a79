package libstate

import (
	"bloom-viewer/libutil"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraMovement int

const (
	Forward CameraMovement = iota
	Backward
	Left
	Right
)

const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
	DefaultZoom        = 45.0
	MinZoom            = 1.0
	MaxZoom            = 45.0
	MaxPitch           = 89.0
)

// Camera is a yaw/pitch fly camera. Angles are in degrees.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32
	Pitch float32

	MovementSpeed    float32
	MouseSensitivity float32
	Zoom             float32
}

func NewCamera(position mgl32.Vec3) *Camera {
	cam := &Camera{
		Position:         position,
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Yaw:              DefaultYaw,
		Pitch:            DefaultPitch,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		Zoom:             DefaultZoom,
	}
	cam.updateVectors()
	return cam
}

func (cam *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(cam.Position, cam.Position.Add(cam.Front), cam.Up)
}

func (cam *Camera) ProcessKeyboard(direction CameraMovement, dt float32) {
	velocity := cam.MovementSpeed * dt
	switch direction {
	case Forward:
		cam.Position = cam.Position.Add(cam.Front.Mul(velocity))
	case Backward:
		cam.Position = cam.Position.Sub(cam.Front.Mul(velocity))
	case Left:
		cam.Position = cam.Position.Sub(cam.Right.Mul(velocity))
	case Right:
		cam.Position = cam.Position.Add(cam.Right.Mul(velocity))
	}
}

func (cam *Camera) ProcessMouseMovement(dx, dy float32, constrainPitch bool) {
	cam.Yaw += dx * cam.MouseSensitivity
	cam.Pitch += dy * cam.MouseSensitivity

	if constrainPitch {
		cam.Pitch = libutil.Clamp(cam.Pitch, -MaxPitch, MaxPitch)
	}
	cam.updateVectors()
}

func (cam *Camera) ProcessMouseScroll(dy float32) {
	cam.Zoom = libutil.Clamp(cam.Zoom-dy, MinZoom, MaxZoom)
}

// SetFront adopts front as is and derives yaw and pitch from it, so the
// orientation survives the next mouse movement.
func (cam *Camera) SetFront(front mgl32.Vec3) {
	if front.Len() == 0 {
		return
	}
	n := front.Normalize()
	cam.Yaw = math32.Atan2(n.Z(), n.X()) * libutil.Rad2Deg
	cam.Pitch = math32.Asin(libutil.Clamp(n.Y(), -1, 1)) * libutil.Rad2Deg
	cam.Front = front
	cam.updateBasis()
}

func (cam *Camera) updateVectors() {
	yaw, pitch := cam.Yaw*libutil.Deg2Rad, cam.Pitch*libutil.Deg2Rad
	cam.Front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	cam.updateBasis()
}

// updateBasis keeps the previous right vector while front is parallel to WorldUp.
func (cam *Camera) updateBasis() {
	if right := cam.Front.Cross(cam.WorldUp); right.Len() > 1e-6 {
		cam.Right = right.Normalize()
	}
	cam.Up = cam.Right.Cross(cam.Front).Normalize()
}
