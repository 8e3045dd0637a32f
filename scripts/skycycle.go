package scripts

import (
	"math"

	"Horizon3D/internal/engine"
	"Horizon3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// DayNightSky regenerates the procedural sky on a timer, sweeping the
// gradient colors through a day/night cycle.
type DayNightSky struct {
	Engine *engine.Engine

	// CycleSeconds is the length of a full day. Zero means 120 seconds.
	CycleSeconds float64

	// RegenInterval is how often the cubemap is rebuilt. Zero means every
	// 5 seconds; rebuilding each frame would stall the render thread.
	RegenInterval float64

	elapsed     float64
	sinceRegen  float64
	initialized bool
}

func (d *DayNightSky) Start() {
	if d.CycleSeconds <= 0 {
		d.CycleSeconds = 120
	}
	if d.RegenInterval <= 0 {
		d.RegenInterval = 5
	}
	d.sinceRegen = d.RegenInterval // regenerate on the first update
	d.initialized = true
}

func (d *DayNightSky) Update(deltaTime float64) {
	if !d.initialized || d.Engine == nil {
		return
	}

	d.elapsed += deltaTime
	d.sinceRegen += deltaTime
	if d.sinceRegen < d.RegenInterval {
		return
	}
	d.sinceRegen = 0

	// daylight goes 0 (midnight) to 1 (noon) and back
	phase := d.elapsed / d.CycleSeconds * 2 * math.Pi
	daylight := float32(0.5 + 0.5*math.Cos(phase))

	config := renderer.DefaultProceduralSkyConfig()
	config.HorizonColor = lerp(mgl32.Vec3{0.05, 0.05, 0.12}, mgl32.Vec3{0.75, 0.85, 0.95}, daylight)
	config.ZenithColor = lerp(mgl32.Vec3{0.01, 0.01, 0.05}, mgl32.Vec3{0.25, 0.45, 0.85}, daylight)
	config.CloudDensity = 0.35 * daylight

	d.Engine.SetGeneratedSkybox("daynight", config)
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
