package renderer

import "github.com/cockroachdb/errors"

// Failure categories for resource and GPU operations. Concrete errors are
// marked with one of these so callers can branch with errors.Is without
// caring about the underlying cause.
var (
	// ErrResourceNotFound marks a missing asset: a skybox face image that
	// does not exist, or a shader that was never registered.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrDimensionMismatch marks cubemap faces whose width, height or
	// channel count disagree with the first face.
	ErrDimensionMismatch = errors.New("image dimension mismatch")

	// ErrGPUResourceAcquisition marks a backend failure while creating a
	// texture, sampler state or shader instance resources.
	ErrGPUResourceAcquisition = errors.New("gpu resource acquisition failed")
)
