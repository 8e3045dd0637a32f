package renderer

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGenerateSkyFacesDimensions(t *testing.T) {
	config := DefaultProceduralSkyConfig()
	config.FaceSize = 16

	faces := generateSkyFaces(config)

	if faces.width != 16 || faces.height != 16 {
		t.Errorf("faces are %dx%d, want 16x16", faces.width, faces.height)
	}
	if faces.channels != 4 {
		t.Errorf("channels = %d, want 4", faces.channels)
	}
	for i, pixels := range faces.pixels {
		if len(pixels) != 16*16*4 {
			t.Errorf("face %d has %d bytes, want %d", i, len(pixels), 16*16*4)
		}
	}
}

func TestGenerateSkyFacesDeterministic(t *testing.T) {
	config := DefaultProceduralSkyConfig()
	config.FaceSize = 8
	config.Seed = 7

	first := generateSkyFaces(config)
	second := generateSkyFaces(config)

	for i := range first.pixels {
		if !bytes.Equal(first.pixels[i], second.pixels[i]) {
			t.Fatalf("face %d differs between runs with the same seed", i)
		}
	}
}

func TestGenerateSkyFacesSeedChangesClouds(t *testing.T) {
	config := DefaultProceduralSkyConfig()
	config.FaceSize = 8

	config.Seed = 1
	first := generateSkyFaces(config)
	config.Seed = 2
	second := generateSkyFaces(config)

	same := true
	for i := range first.pixels {
		if !bytes.Equal(first.pixels[i], second.pixels[i]) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should produce different skies")
	}
}

func TestGenerateSkyFacesOpaqueAlpha(t *testing.T) {
	config := DefaultProceduralSkyConfig()
	config.FaceSize = 4

	faces := generateSkyFaces(config)

	for face, pixels := range faces.pixels {
		for i := 3; i < len(pixels); i += 4 {
			if pixels[i] != 255 {
				t.Fatalf("face %d pixel %d has alpha %d, want 255", face, i/4, pixels[i])
			}
		}
	}
}

func TestSkyColorGradient(t *testing.T) {
	config := DefaultProceduralSkyConfig()
	config.CloudDensity = 0 // pure gradient

	up := skyColorAt(mgl32.Vec3{0, 1, 0}, nil, config)
	down := skyColorAt(mgl32.Vec3{0, -1, 0}, nil, config)

	if up != config.ZenithColor {
		t.Errorf("straight up should be the zenith color, got %v", up)
	}
	if down != config.HorizonColor {
		t.Errorf("straight down should be the horizon color, got %v", down)
	}
}

func TestFaceDirectionsAreNormalized(t *testing.T) {
	for face := 0; face < 6; face++ {
		dir := faceDirection(face, 0.5, -0.3)
		if l := dir.Len(); l < 0.999 || l > 1.001 {
			t.Errorf("face %d direction not normalized: %v", face, dir)
		}
	}
}

func TestFaceDirectionCenters(t *testing.T) {
	// The center of each face must point along its axis in
	// right/left/top/bottom/front/back order.
	want := []mgl32.Vec3{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	for face, axis := range want {
		dir := faceDirection(face, 0, 0)
		if dir != axis {
			t.Errorf("face %d center = %v, want %v", face, dir, axis)
		}
	}
}
