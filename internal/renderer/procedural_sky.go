package renderer

import (
	"math"

	perlin "github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// ProceduralSkyConfig controls the CPU-generated sky cubemap.
type ProceduralSkyConfig struct {
	// FaceSize is the edge length of each cubemap face in pixels.
	FaceSize uint32

	// Seed drives the perlin noise; the same seed always produces the
	// same sky.
	Seed int64

	HorizonColor mgl32.Vec3
	ZenithColor  mgl32.Vec3

	// CloudDensity in [0,1]; 0 disables clouds entirely.
	CloudDensity float32

	// CloudScale is the noise frequency; larger values mean smaller clouds.
	CloudScale float64
}

// DefaultProceduralSkyConfig returns a daytime sky with light clouds.
func DefaultProceduralSkyConfig() ProceduralSkyConfig {
	return ProceduralSkyConfig{
		FaceSize:     256,
		Seed:         1,
		HorizonColor: mgl32.Vec3{0.75, 0.85, 0.95},
		ZenithColor:  mgl32.Vec3{0.25, 0.45, 0.85},
		CloudDensity: 0.35,
		CloudScale:   3.0,
	}
}

// generateSkyFaces renders the six faces of a procedural sky cubemap as
// RGBA pixels. Each pixel's color comes from a horizon-to-zenith gradient
// over the sampling direction's elevation, with perlin clouds blended on top.
func generateSkyFaces(config ProceduralSkyConfig) *faceSet {
	size := config.FaceSize
	if size == 0 {
		size = 256
	}

	noise := perlin.NewPerlin(2, 2, 3, config.Seed)

	faces := &faceSet{
		width:    size,
		height:   size,
		channels: 4,
	}

	for face := 0; face < 6; face++ {
		pixels := make([]byte, int(size)*int(size)*4)
		for y := uint32(0); y < size; y++ {
			// Map pixel centers to [-1,1] on the face plane.
			v := (2*(float64(y)+0.5)/float64(size) - 1)
			for x := uint32(0); x < size; x++ {
				u := (2*(float64(x)+0.5)/float64(size) - 1)

				dir := faceDirection(face, u, v)
				color := skyColorAt(dir, noise, config)

				offset := (int(y)*int(size) + int(x)) * 4
				pixels[offset+0] = floatToByte(color.X())
				pixels[offset+1] = floatToByte(color.Y())
				pixels[offset+2] = floatToByte(color.Z())
				pixels[offset+3] = 255
			}
		}
		faces.pixels[face] = pixels
	}

	return faces
}

// faceDirection converts face-plane coordinates (u,v in [-1,1]) into the
// world-space sampling direction for the given cubemap face, following the
// right/left/top/bottom/front/back face order.
func faceDirection(face int, u, v float64) mgl32.Vec3 {
	var dir mgl32.Vec3
	switch face {
	case 0: // +X
		dir = mgl32.Vec3{1, float32(-v), float32(-u)}
	case 1: // -X
		dir = mgl32.Vec3{-1, float32(-v), float32(u)}
	case 2: // +Y
		dir = mgl32.Vec3{float32(u), 1, float32(v)}
	case 3: // -Y
		dir = mgl32.Vec3{float32(u), -1, float32(-v)}
	case 4: // +Z
		dir = mgl32.Vec3{float32(u), float32(-v), 1}
	default: // -Z
		dir = mgl32.Vec3{float32(-u), float32(-v), -1}
	}
	return dir.Normalize()
}

func skyColorAt(dir mgl32.Vec3, noise *perlin.Perlin, config ProceduralSkyConfig) mgl32.Vec3 {
	// Elevation in [0,1]: 0 at the nadir, 1 straight up.
	elevation := float64(dir.Y())*0.5 + 0.5

	base := lerpVec3(config.HorizonColor, config.ZenithColor, float32(elevation))

	if config.CloudDensity <= 0 {
		return base
	}

	n := noise.Noise3D(
		float64(dir.X())*config.CloudScale,
		float64(dir.Y())*config.CloudScale,
		float64(dir.Z())*config.CloudScale,
	)
	// Noise comes back roughly in [-1,1]; fold it into a cloud amount.
	cloud := math.Max(0, (n+1)*0.5-float64(1-config.CloudDensity))
	cloud = math.Min(1, cloud*2)

	// Clouds thin out toward the nadir so the "ground" half stays clean.
	cloud *= math.Max(0, float64(dir.Y()))

	white := mgl32.Vec3{1, 1, 1}
	return lerpVec3(base, white, float32(cloud))
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func floatToByte(f float32) byte {
	v := int(f*255 + 0.5)
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return byte(v)
}
