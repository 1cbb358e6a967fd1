package tri

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestInitError(t *testing.T) {
	cause := fmt.Errorf("%w: 0:3: syntax error", ErrShaderCompile)
	err := NewInitError("phong", StageCompile, cause)

	var ie *InitError
	if !errors.As(err, &ie) {
		t.Fatalf("errors.As(%v) = false, want *InitError", err)
	}
	if ie.Stage != StageCompile {
		t.Errorf("Stage = %v, want %v", ie.Stage, StageCompile)
	}
	if !errors.Is(err, ErrShaderCompile) {
		t.Error("InitError should unwrap to ErrShaderCompile")
	}
	msg := err.Error()
	for _, want := range []string{"phong", "compile", "syntax error"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want it to contain %q", msg, want)
		}
	}
}

func TestNewInitErrorNil(t *testing.T) {
	if err := NewInitError("x", StageLink, nil); err != nil {
		t.Errorf("NewInitError(nil) = %v, want nil", err)
	}
}

func TestProgramStage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Stage
	}{
		{"compile", fmt.Errorf("vs: %w", ErrShaderCompile), StageCompile},
		{"link", fmt.Errorf("program: %w", ErrProgramLink), StageLink},
		{"other", errors.New("boom"), StageCompile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := programStage(tt.err); got != tt.want {
				t.Errorf("programStage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStageString(t *testing.T) {
	if got := Stage(42).String(); got != "Stage(42)" {
		t.Errorf("Stage(42).String() = %q", got)
	}
	if got := StageTexture.String(); got != "texture" {
		t.Errorf("StageTexture.String() = %q", got)
	}
}
