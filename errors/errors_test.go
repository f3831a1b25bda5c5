package errors

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseStrip,
				Kind:   KindStripFailed,
				Path:   "app.wasm",
				Detail: "exit status 1",
			},
			contains: []string{"[strip]", "strip_failed", "at app.wasm", "exit status 1"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhasePatch,
				Kind:  KindIO,
			},
			contains: []string{"[patch]", "io"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhasePatch,
				Kind:   KindIO,
				Detail: "append section",
				Cause:  errors.New("disk full"),
			},
			contains: []string{"[patch]", "io", "append section", "caused by", "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := IO(PhasePatch, "out.wasm", os.ErrNotExist)

	if !errors.Is(err, os.ErrNotExist) {
		t.Error("errors.Is did not reach the cause")
	}
	if !errors.Is(errors.Unwrap(err), os.ErrNotExist) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseStrip,
		Kind:  KindProcessLaunch,
		Path:  "llvm-objcopy",
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseStrip, Kind: KindProcessLaunch}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhasePatch, Kind: KindProcessLaunch}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseStrip, Kind: KindStripFailed}) {
		t.Error("Is should not match different kind")
	}

	// Kind-only sentinels
	if !errors.Is(err, ErrProcessLaunch) {
		t.Error("errors.Is should match ErrProcessLaunch")
	}
	if errors.Is(err, ErrStripFailed) || errors.Is(err, ErrIO) {
		t.Error("errors.Is should not match other sentinels")
	}
	if err.Is(os.ErrNotExist) {
		t.Error("Is should not match foreign errors")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseStrip, KindStripFailed).
		Path("app.wasm").
		Value(2).
		Cause(cause).
		Detail("exited with status %d", 2).
		Build()

	if err.Phase != PhaseStrip {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseStrip)
	}
	if err.Kind != KindStripFailed {
		t.Errorf("Kind = %v, want %v", err.Kind, KindStripFailed)
	}
	if err.Path != "app.wasm" {
		t.Errorf("Path = %v, want app.wasm", err.Path)
	}
	if err.Value != 2 {
		t.Errorf("Value = %v, want 2", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "exited with status 2" {
		t.Errorf("Detail = %v", err.Detail)
	}

	verbatim := "100%"
	plain := New(PhaseConfig, KindInvalidInput).Detail(verbatim).Build()
	if plain.Detail != "100%" {
		t.Errorf("Detail without args should be verbatim, got %q", plain.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("ProcessLaunch", func(t *testing.T) {
		err := ProcessLaunch("llvm-objcopy", os.ErrPermission)
		if err.Kind != KindProcessLaunch || err.Phase != PhaseStrip {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if !errors.Is(err, os.ErrPermission) {
			t.Error("cause lost")
		}
	})

	t.Run("StripFailed", func(t *testing.T) {
		err := StripFailed("app.wasm", 1, "exit status 1", nil)
		if err.Kind != KindStripFailed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindStripFailed)
		}
		if err.Value != 1 {
			t.Errorf("Value = %v, want 1", err.Value)
		}
	})

	t.Run("IO", func(t *testing.T) {
		err := IO(PhasePatch, "out.wasm", os.ErrNotExist)
		if err.Kind != KindIO || err.Path != "out.wasm" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("InvalidData", func(t *testing.T) {
		err := InvalidData(PhaseVerify, "out.wasm", "bad magic")
		if err.Kind != KindInvalidData || err.Detail != "bad magic" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseConfig, "unknown field")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseVerify, "custom section", "external_debug_info")
		if !strings.Contains(err.Detail, `"external_debug_info"`) {
			t.Errorf("Detail = %v", err.Detail)
		}
		if !errors.Is(err, ErrNotFound) {
			t.Error("should match ErrNotFound")
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(PhaseVerify, KindInvalidData, cause, "compile")
		if !errors.Is(err, cause) || err.Detail != "compile" {
			t.Errorf("got %+v", err)
		}
	})
}
