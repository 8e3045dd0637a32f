package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera(600, 800)

	if cam == nil {
		t.Fatal("NewDefaultCamera returned nil")
	}

	if cam.Speed <= 0 {
		t.Error("Camera speed should be positive")
	}

	if cam.Sensitivity <= 0 {
		t.Error("Camera sensitivity should be positive")
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewDefaultCamera(600, 800)
	cam.Position = mgl32.Vec3{0, 0, 5}
	cam.Front = mgl32.Vec3{0, 0, -1}
	cam.Up = mgl32.Vec3{0, 1, 0}

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewDefaultCamera(600, 800)

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraGetViewProjection(t *testing.T) {
	cam := NewDefaultCamera(600, 800)

	vp := cam.GetViewProjection()

	zero := mgl32.Mat4{}
	if vp == zero {
		t.Error("ViewProjection should not be zero matrix")
	}
}

func TestCameraUpdateVectors(t *testing.T) {
	cam := NewDefaultCamera(600, 800)
	cam.Yaw = -90
	cam.Pitch = 0

	cam.updateCameraVectors()

	// Yaw -90 with no pitch looks down -Z
	if math.Abs(float64(cam.Front.Z()+1)) > 0.001 {
		t.Errorf("Front should be close to -Z, got %v", cam.Front)
	}

	if math.Abs(float64(cam.Front.Len()-1)) > 0.001 {
		t.Error("Front vector should be normalized")
	}
}

func TestCameraMouseMovementClampsPitch(t *testing.T) {
	cam := NewDefaultCamera(600, 800)
	cam.InvertMouse = false

	cam.ProcessMouseMovement(0, 10000, true)

	if cam.Pitch > 89.0 || cam.Pitch < -89.0 {
		t.Errorf("Pitch should be clamped to [-89, 89], got %f", cam.Pitch)
	}
}

func TestCameraSetFovUpdatesProjection(t *testing.T) {
	cam := NewDefaultCamera(600, 800)
	before := cam.Projection

	cam.SetFov(90)

	if cam.Projection == before {
		t.Error("SetFov should recompute the projection matrix")
	}
}

func TestCameraVulkanMatrixConversion(t *testing.T) {
	cam := NewDefaultCamera(600, 800)

	view := cam.GetViewMatrix()
	converted := cam.GetViewMatrixVulkan()

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if converted[i][j] != view[i*4+j] {
				t.Fatalf("conversion mismatch at [%d][%d]", i, j)
			}
		}
	}
}
