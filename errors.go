package tri

import (
	"errors"
	"fmt"
)

// Sentinel errors. Devices wrap ErrShaderCompile and ErrProgramLink with
// the compiler diagnostic so the renderer can attribute the failure to
// the right InitError stage.
var (
	ErrShaderCompile     = errors.New("tri: shader compilation failed")
	ErrProgramLink       = errors.New("tri: program link failed")
	ErrInvalidTransition = errors.New("tri: invalid lifecycle transition")
	ErrUnknownDemo       = errors.New("tri: unknown demo")
	ErrVertexCount       = errors.New("tri: draw call must request exactly 3 vertices")
	ErrEmptyMesh         = errors.New("tri: mesh has no triangles")
	ErrUniformMissing    = errors.New("tri: uniform not set")
	ErrUniformType       = errors.New("tri: uniform has wrong type")
	ErrTextureSize       = errors.New("tri: texture dimensions must be positive")
	ErrReleased          = errors.New("tri: resource already released")
)

// Stage names the setup step that failed during Renderer.Init.
type Stage uint8

const (
	// StageContext is surface, window or device acquisition.
	StageContext Stage = iota
	// StageCompile is shader compilation.
	StageCompile
	// StageLink is program linking or pipeline creation.
	StageLink
	// StageTexture is texture construction or upload.
	StageTexture
	// StageUpload is vertex buffer upload.
	StageUpload
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageContext:
		return "context"
	case StageCompile:
		return "compile"
	case StageLink:
		return "link"
	case StageTexture:
		return "texture"
	case StageUpload:
		return "upload"
	default:
		return fmt.Sprintf("Stage(%d)", s)
	}
}

// InitError is a fatal setup failure. It is never retried; hosts return
// it and the command exits with a non-zero status.
type InitError struct {
	Demo  string
	Stage Stage
	Err   error
}

func (e *InitError) Error() string {
	if e.Demo == "" {
		return fmt.Sprintf("tri: init failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("tri: %s: init failed at %s: %v", e.Demo, e.Stage, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// NewInitError wraps err as an InitError for the given stage. A nil err
// yields nil.
func NewInitError(demo string, stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &InitError{Demo: demo, Stage: stage, Err: err}
}

// programStage maps a CreateProgram failure to the stage that caused it.
func programStage(err error) Stage {
	if errors.Is(err, ErrProgramLink) {
		return StageLink
	}
	return StageCompile
}
