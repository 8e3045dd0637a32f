package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"Horizon3D/internal/logger"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// --- mocks ---

type mockImageLoader struct {
	images  map[string]*ImageData
	loads   []string
	unloads int
}

func newMockImageLoader() *mockImageLoader {
	return &mockImageLoader{images: map[string]*ImageData{}}
}

func (m *mockImageLoader) addSkybox(name string, width, height uint32) {
	for _, face := range skyboxFaceNames {
		m.addFace(name, face, width, height)
	}
}

func (m *mockImageLoader) addFace(name, face string, width, height uint32) {
	resource := fmt.Sprintf("../skyboxes/%s/%s", name, face)
	m.images[resource] = &ImageData{
		Width:        width,
		Height:       height,
		ChannelCount: 4,
		Pixels:       make([]byte, width*height*4),
	}
}

func (m *mockImageLoader) removeFace(name, face string) {
	delete(m.images, fmt.Sprintf("../skyboxes/%s/%s", name, face))
}

func (m *mockImageLoader) Load(resourceName string) (*ImageData, error) {
	m.loads = append(m.loads, resourceName)
	img, ok := m.images[resourceName]
	if !ok {
		return nil, errors.Newf("image resource %q not found", resourceName)
	}
	return img, nil
}

func (m *mockImageLoader) Unload(img *ImageData) {
	if img != nil {
		m.unloads++
	}
}

type mockShaderSystem struct {
	shader *Shader
	id     ShaderID

	calls         []string
	uniforms      map[string]mgl32.Mat4
	boundInstance *InstanceID
	instanceDirty []bool

	useErr           error
	bindGlobalsErr   error
	applyInstanceErr error
}

func newMockShaderSystem() *mockShaderSystem {
	return &mockShaderSystem{
		shader:   &Shader{name: SkyboxShaderName, instances: map[InstanceID][]*TextureMap{}},
		id:       1,
		uniforms: map[string]mgl32.Mat4{},
	}
}

func (m *mockShaderSystem) GetIDByName(name string) (ShaderID, bool) {
	if m.shader != nil && m.shader.name == name {
		return m.id, true
	}
	return 0, false
}

func (m *mockShaderSystem) GetByID(id ShaderID) *Shader {
	if m.shader != nil && id == m.id {
		return m.shader
	}
	return nil
}

func (m *mockShaderSystem) UseByID(id ShaderID) error {
	m.calls = append(m.calls, "use")
	return m.useErr
}

func (m *mockShaderSystem) BindGlobals(shader *Shader) error {
	m.calls = append(m.calls, "bindGlobals")
	return m.bindGlobalsErr
}

func (m *mockShaderSystem) SetUniformMat4(name string, value mgl32.Mat4) error {
	m.calls = append(m.calls, "uniform:"+name)
	m.uniforms[name] = value
	return nil
}

func (m *mockShaderSystem) ApplyGlobal() error {
	m.calls = append(m.calls, "applyGlobal")
	return nil
}

func (m *mockShaderSystem) BindInstance(id InstanceID) error {
	m.calls = append(m.calls, "bindInstance")
	m.boundInstance = &id
	return nil
}

func (m *mockShaderSystem) ApplyInstance(needsUpdate bool) error {
	m.calls = append(m.calls, "applyInstance")
	if m.applyInstanceErr != nil {
		return m.applyInstanceErr
	}
	m.instanceDirty = append(m.instanceDirty, needsUpdate)
	return nil
}

type mockBackend struct {
	calls []string
	draws []GeometryRenderData

	nextInstance InstanceID

	createErr   error
	mapErr      error
	instanceErr error
}

func newMockBackend() *mockBackend {
	return &mockBackend{nextInstance: 1}
}

func (m *mockBackend) CreateCubemapTexture(facePixels [6][]byte, texture *Texture) error {
	m.calls = append(m.calls, "createCubemap")
	if m.createErr != nil {
		return m.createErr
	}
	texture.Handle = 42
	texture.IsCubemap = true
	texture.Generation = 0
	return nil
}

func (m *mockBackend) DestroyCubemapTexture(texture *Texture) {
	m.calls = append(m.calls, "destroyCubemap")
	texture.Handle = 0
}

func (m *mockBackend) AcquireTextureMapResources(tm *TextureMap) error {
	m.calls = append(m.calls, "acquireMap")
	if m.mapErr != nil {
		return m.mapErr
	}
	tm.Sampler = 7
	return nil
}

func (m *mockBackend) ReleaseTextureMapResources(tm *TextureMap) {
	m.calls = append(m.calls, "releaseMap")
	tm.Sampler = 0
}

func (m *mockBackend) AcquireShaderInstanceResources(shader *Shader, maps []*TextureMap) (InstanceID, error) {
	m.calls = append(m.calls, "acquireInstance")
	if m.instanceErr != nil {
		return 0, m.instanceErr
	}
	id := m.nextInstance
	m.nextInstance++
	return id, nil
}

func (m *mockBackend) ReleaseShaderInstanceResources(shader *Shader, id InstanceID) {
	m.calls = append(m.calls, "releaseInstance")
}

func (m *mockBackend) DrawGeometry(data GeometryRenderData) error {
	m.calls = append(m.calls, "draw")
	m.draws = append(m.draws, data)
	return nil
}

type mockGeometrySystem struct {
	acquired []string
	released []string
	err      error
}

func (m *mockGeometrySystem) AcquireFromConfig(config GeometryConfig, autoRelease bool) (*Geometry, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.acquired = append(m.acquired, config.Name)
	return &Geometry{Name: config.Name, VertexCount: int32(config.VertexCount)}, nil
}

func (m *mockGeometrySystem) Release(g *Geometry) {
	m.released = append(m.released, g.Name)
}

type testFixture struct {
	system   *SkyboxSystem
	images   *mockImageLoader
	shaders  *mockShaderSystem
	backend  *mockBackend
	geometry *mockGeometrySystem
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	f := &testFixture{
		images:   newMockImageLoader(),
		shaders:  newMockShaderSystem(),
		backend:  newMockBackend(),
		geometry: &mockGeometrySystem{},
	}

	system, err := NewSkyboxSystem(SkyboxConfig{}, f.images, f.shaders, f.backend, f.geometry)
	if err != nil {
		t.Fatalf("NewSkyboxSystem failed: %v", err)
	}
	f.system = system
	return f
}

func countCalls(calls []string, name string) int {
	n := 0
	for _, c := range calls {
		if c == name {
			n++
		}
	}
	return n
}

// --- tests ---

func TestSkyboxLoadSuccess(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("alpine", 64, 64)

	if err := f.system.Load("alpine"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !f.system.IsLoaded() {
		t.Error("system should report loaded")
	}
	if f.system.CurrentName() != "alpine" {
		t.Errorf("CurrentName = %q, want alpine", f.system.CurrentName())
	}
	if f.system.instance == nil {
		t.Error("instance should be set after load")
	}

	wantLoads := []string{
		"../skyboxes/alpine/right",
		"../skyboxes/alpine/left",
		"../skyboxes/alpine/top",
		"../skyboxes/alpine/bottom",
		"../skyboxes/alpine/front",
		"../skyboxes/alpine/back",
	}
	if len(f.images.loads) != len(wantLoads) {
		t.Fatalf("loaded %d faces, want %d", len(f.images.loads), len(wantLoads))
	}
	for i, want := range wantLoads {
		if f.images.loads[i] != want {
			t.Errorf("face %d loaded as %q, want %q", i, f.images.loads[i], want)
		}
	}
	if f.images.unloads != 6 {
		t.Errorf("loader resources released %d times, want 6", f.images.unloads)
	}

	wantOrder := []string{"createCubemap", "acquireMap", "acquireInstance"}
	if len(f.backend.calls) != len(wantOrder) {
		t.Fatalf("backend calls = %v, want %v", f.backend.calls, wantOrder)
	}
	for i, want := range wantOrder {
		if f.backend.calls[i] != want {
			t.Errorf("backend call %d = %q, want %q", i, f.backend.calls[i], want)
		}
	}
}

func TestSkyboxLoadMissingFace(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("alpine", 64, 64)
	f.images.removeFace("alpine", "top")

	err := f.system.Load("alpine")
	if err == nil {
		t.Fatal("Load should fail with a missing face")
	}
	if !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("error should be marked as resource-not-found: %v", err)
	}

	if f.system.IsLoaded() {
		t.Error("system should not be loaded after failure")
	}
	// right and left were copied and released; top failed before any copy.
	if f.images.unloads != 2 {
		t.Errorf("loader resources released %d times, want 2", f.images.unloads)
	}
	if len(f.backend.calls) != 0 {
		t.Errorf("no GPU work expected before all faces load, got %v", f.backend.calls)
	}
}

func TestSkyboxLoadDimensionMismatch(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("alpine", 64, 64)
	f.images.addFace("alpine", "bottom", 32, 32)

	err := f.system.Load("alpine")
	if err == nil {
		t.Fatal("Load should fail on mismatched face dimensions")
	}
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("error should be marked as dimension mismatch: %v", err)
	}

	if f.system.IsLoaded() {
		t.Error("system should not be loaded after failure")
	}
	// Three good faces plus the mismatching one must all be handed back.
	if f.images.unloads != 4 {
		t.Errorf("loader resources released %d times, want 4", f.images.unloads)
	}
	if countCalls(f.backend.calls, "createCubemap") != 0 {
		t.Error("cubemap must not be created from a bad face set")
	}
}

func TestSkyboxCubemapCreateFailure(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("alpine", 64, 64)
	f.backend.createErr = errors.New("out of GPU memory")

	err := f.system.Load("alpine")
	if err == nil {
		t.Fatal("Load should fail when the cubemap cannot be created")
	}
	if !errors.Is(err, ErrGPUResourceAcquisition) {
		t.Errorf("error should be marked as GPU acquisition failure: %v", err)
	}
	if countCalls(f.backend.calls, "acquireMap") != 0 {
		t.Error("sampler map must not be acquired after cubemap creation fails")
	}
	if f.system.IsLoaded() {
		t.Error("system should not be loaded after failure")
	}
}

func TestSkyboxMapAcquireFailureDestroysTexture(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("alpine", 64, 64)
	f.backend.mapErr = errors.New("sampler allocation failed")

	err := f.system.Load("alpine")
	if err == nil {
		t.Fatal("Load should fail when sampler resources cannot be acquired")
	}
	if !errors.Is(err, ErrGPUResourceAcquisition) {
		t.Errorf("error should be marked as GPU acquisition failure: %v", err)
	}

	if countCalls(f.backend.calls, "destroyCubemap") != 1 {
		t.Errorf("cubemap should be destroyed after map failure, calls: %v", f.backend.calls)
	}
	if f.system.cubemap.Handle != 0 {
		t.Error("cubemap state should be cleared after rollback")
	}
}

func TestSkyboxInstanceAcquireFailureRollsBack(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("alpine", 64, 64)
	f.backend.instanceErr = errors.New("descriptor pool exhausted")

	err := f.system.Load("alpine")
	if err == nil {
		t.Fatal("Load should fail when instance resources cannot be acquired")
	}
	if !errors.Is(err, ErrGPUResourceAcquisition) {
		t.Errorf("error should be marked as GPU acquisition failure: %v", err)
	}

	want := []string{"createCubemap", "acquireMap", "acquireInstance", "releaseMap", "destroyCubemap"}
	if len(f.backend.calls) != len(want) {
		t.Fatalf("backend calls = %v, want %v", f.backend.calls, want)
	}
	for i := range want {
		if f.backend.calls[i] != want[i] {
			t.Errorf("backend call %d = %q, want %q", i, f.backend.calls[i], want[i])
		}
	}
	if f.system.IsLoaded() || f.system.instance != nil {
		t.Error("no partial state may remain after rollback")
	}
}

func TestSkyboxReplaceReleasesOldBeforeAcquiringNew(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("day", 64, 64)
	f.images.addSkybox("night", 64, 64)

	if err := f.system.Load("day"); err != nil {
		t.Fatalf("Load(day) failed: %v", err)
	}
	if err := f.system.Load("night"); err != nil {
		t.Fatalf("Load(night) failed: %v", err)
	}

	want := []string{
		"createCubemap", "acquireMap", "acquireInstance", // day
		"releaseInstance", "releaseMap", "destroyCubemap", // day torn down
		"createCubemap", "acquireMap", "acquireInstance", // night
	}
	if len(f.backend.calls) != len(want) {
		t.Fatalf("backend calls = %v, want %v", f.backend.calls, want)
	}
	for i := range want {
		if f.backend.calls[i] != want[i] {
			t.Errorf("backend call %d = %q, want %q", i, f.backend.calls[i], want[i])
		}
	}
	if f.system.CurrentName() != "night" {
		t.Errorf("CurrentName = %q, want night", f.system.CurrentName())
	}
}

func TestSkyboxReplaceFailureLeavesNothingLoaded(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("day", 64, 64)

	if err := f.system.Load("day"); err != nil {
		t.Fatalf("Load(day) failed: %v", err)
	}
	if err := f.system.Load("broken"); err == nil {
		t.Fatal("Load(broken) should fail")
	}

	// The old skybox is gone and the new one never arrived.
	if f.system.IsLoaded() {
		t.Error("system should be empty after a failed replace")
	}
	if countCalls(f.backend.calls, "releaseInstance") != 1 ||
		countCalls(f.backend.calls, "destroyCubemap") != 1 {
		t.Errorf("old skybox resources not fully released, calls: %v", f.backend.calls)
	}
}

func TestSkyboxUnloadIsIdempotent(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("alpine", 64, 64)

	if err := f.system.Load("alpine"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	f.system.Unload()
	callsAfterFirst := len(f.backend.calls)
	f.system.Unload()

	if len(f.backend.calls) != callsAfterFirst {
		t.Error("second Unload must not touch the backend")
	}
	if f.system.IsLoaded() || f.system.CurrentName() != "" || f.system.instance != nil {
		t.Error("all skybox state should be cleared after Unload")
	}
}

func TestSkyboxRenderDirtyTracking(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("alpine", 64, 64)
	if err := f.system.Load("alpine"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	projection := mgl32.Perspective(mgl32.DegToRad(45), 4.0/3.0, 0.1, 1000)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	f.system.Render(projection, view, 7)
	f.system.Render(projection, view, 7)
	f.system.Render(projection, view, 8)

	want := []bool{true, false, true}
	if len(f.shaders.instanceDirty) != len(want) {
		t.Fatalf("instance updates = %v, want %v", f.shaders.instanceDirty, want)
	}
	for i := range want {
		if f.shaders.instanceDirty[i] != want[i] {
			t.Errorf("render %d needsUpdate = %v, want %v", i, f.shaders.instanceDirty[i], want[i])
		}
	}
}

func TestSkyboxRenderDirtyAfterReload(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("alpine", 64, 64)
	if err := f.system.Load("alpine"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	projection := mgl32.Ident4()
	view := mgl32.Ident4()

	f.system.Render(projection, view, 3)
	if err := f.system.Load("alpine"); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	// Same frame number as before the reload; the new instance still needs
	// its first upload.
	f.system.Render(projection, view, 3)

	want := []bool{true, true}
	if len(f.shaders.instanceDirty) != len(want) {
		t.Fatalf("instance updates = %v, want %v", f.shaders.instanceDirty, want)
	}
	if !f.shaders.instanceDirty[1] {
		t.Error("first render after reload must upload instance state")
	}
}

func TestSkyboxRenderDrawsCubeWithIdentityModel(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("alpine", 64, 64)
	if err := f.system.Load("alpine"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	projection := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	view := mgl32.Translate3D(5, -2, 9)
	f.system.Render(projection, view, 1)

	if len(f.backend.draws) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(f.backend.draws))
	}
	draw := f.backend.draws[0]
	if draw.Geometry == nil || draw.Geometry.Name != "skybox_cube" {
		t.Errorf("drew geometry %+v, want skybox_cube", draw.Geometry)
	}
	if draw.Model != mgl32.Ident4() {
		t.Error("skybox model matrix must be identity")
	}

	if got := f.shaders.uniforms["projection"]; got != projection {
		t.Error("projection uniform not forwarded")
	}
	if got := f.shaders.uniforms["view"]; got != view {
		t.Error("view matrix must be passed through unchanged")
	}
}

func TestSkyboxRenderWhenNotLoaded(t *testing.T) {
	f := newTestFixture(t)

	f.system.Render(mgl32.Ident4(), mgl32.Ident4(), 1)

	if len(f.shaders.calls) != 0 || len(f.backend.draws) != 0 {
		t.Error("render without a loaded skybox must be a no-op")
	}
}

func TestSkyboxRenderFailureIsNonFatal(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("alpine", 64, 64)
	if err := f.system.Load("alpine"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	f.shaders.applyInstanceErr = errors.New("descriptor update failed")
	f.system.Render(mgl32.Ident4(), mgl32.Ident4(), 1)

	if len(f.backend.draws) != 0 {
		t.Error("draw must be skipped when instance apply fails")
	}
	if !f.system.IsLoaded() {
		t.Error("a render failure must not unload the skybox")
	}

	// The next frame recovers once the failure clears, and it still counts
	// as the instance's first successful upload.
	f.shaders.applyInstanceErr = nil
	f.system.Render(mgl32.Ident4(), mgl32.Ident4(), 2)
	if len(f.backend.draws) != 1 {
		t.Error("render should succeed after the failure clears")
	}
	if len(f.shaders.instanceDirty) != 1 || !f.shaders.instanceDirty[0] {
		t.Error("recovered render must upload instance state")
	}
}

func TestSkyboxLoadGenerated(t *testing.T) {
	f := newTestFixture(t)

	config := DefaultProceduralSkyConfig()
	config.FaceSize = 8

	if err := f.system.LoadGenerated("procsky", config); err != nil {
		t.Fatalf("LoadGenerated failed: %v", err)
	}

	if !f.system.IsLoaded() || f.system.CurrentName() != "procsky" {
		t.Error("generated skybox should be loaded under its name")
	}
	if f.system.cubemap.Width != 8 || f.system.cubemap.Height != 8 {
		t.Errorf("cubemap is %dx%d, want 8x8", f.system.cubemap.Width, f.system.cubemap.Height)
	}
	if f.system.cubemap.ChannelCount != 4 {
		t.Errorf("cubemap has %d channels, want 4", f.system.cubemap.ChannelCount)
	}
	if len(f.images.loads) != 0 {
		t.Error("generated skyboxes must not touch the image loader")
	}
}

func TestSkyboxSystemWithoutShader(t *testing.T) {
	images := newMockImageLoader()
	shaders := &mockShaderSystem{} // no shader registered
	backend := newMockBackend()
	geometry := &mockGeometrySystem{}

	system, err := NewSkyboxSystem(SkyboxConfig{}, images, shaders, backend, geometry)
	if err != nil {
		t.Fatalf("NewSkyboxSystem should tolerate a missing shader: %v", err)
	}

	images.addSkybox("alpine", 64, 64)
	if err := system.Load("alpine"); err == nil {
		t.Error("Load must fail when the shader is missing")
	} else if !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("error should be marked as resource-not-found: %v", err)
	}

	system.Render(mgl32.Ident4(), mgl32.Ident4(), 1)
	if len(backend.draws) != 0 {
		t.Error("render must be inert without a shader")
	}
}

func TestSkyboxAvailable(t *testing.T) {
	dir := t.TempDir()

	writeFaces := func(skybox string, faces []string) {
		skyDir := filepath.Join(dir, skybox)
		if err := os.MkdirAll(skyDir, 0755); err != nil {
			t.Fatal(err)
		}
		for _, face := range faces {
			if err := os.WriteFile(filepath.Join(skyDir, face), []byte("x"), 0644); err != nil {
				t.Fatal(err)
			}
		}
	}

	writeFaces("ocean", []string{"right.png", "left.png", "top.png", "bottom.png", "front.png", "back.png"})
	writeFaces("mixed", []string{"right.jpg", "left.png", "top.bmp", "bottom.jpeg", "front.png", "back.png"})
	writeFaces("partial", []string{"right.png", "left.png"})
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	f := &testFixture{
		images:   newMockImageLoader(),
		shaders:  newMockShaderSystem(),
		backend:  newMockBackend(),
		geometry: &mockGeometrySystem{},
	}
	system, err := NewSkyboxSystem(SkyboxConfig{BasePath: dir}, f.images, f.shaders, f.backend, f.geometry)
	if err != nil {
		t.Fatalf("NewSkyboxSystem failed: %v", err)
	}

	names, err := system.Available()
	if err != nil {
		t.Fatalf("Available failed: %v", err)
	}

	want := []string{"mixed", "ocean"}
	if len(names) != len(want) {
		t.Fatalf("Available = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Available[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSkyboxAvailableMissingDirectory(t *testing.T) {
	f := &testFixture{
		images:   newMockImageLoader(),
		shaders:  newMockShaderSystem(),
		backend:  newMockBackend(),
		geometry: &mockGeometrySystem{},
	}
	system, err := NewSkyboxSystem(SkyboxConfig{BasePath: filepath.Join(t.TempDir(), "nope")},
		f.images, f.shaders, f.backend, f.geometry)
	if err != nil {
		t.Fatalf("NewSkyboxSystem failed: %v", err)
	}

	names, err := system.Available()
	if err != nil {
		t.Errorf("missing base path should not be an error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Available = %v, want empty", names)
	}
}

func TestSkyboxShutdownReleasesGeometry(t *testing.T) {
	f := newTestFixture(t)
	f.images.addSkybox("alpine", 64, 64)
	if err := f.system.Load("alpine"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	f.system.Shutdown()

	if f.system.IsLoaded() {
		t.Error("Shutdown must unload the skybox")
	}
	if len(f.geometry.released) != 1 || f.geometry.released[0] != "skybox_cube" {
		t.Errorf("cube geometry not released: %v", f.geometry.released)
	}
}
