// Package verify checks that a patched module is still loadable and points
// at its debug info.
package verify

import (
	"context"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/experimental"

	"github.com/namui/wasm-dwarf/errors"
	"github.com/namui/wasm-dwarf/wasm"
)

// Report summarizes the sections of a module.
type Report struct {
	Sections      []wasm.SectionHeader
	DebugSections []string
	// Reference is the external_debug_info target, empty when HasReference is false.
	Reference    string
	Size         int
	HasReference bool
}

// Inspect scans data and collects its debug sections and debug info reference.
func Inspect(data []byte) (*Report, error) {
	headers, err := wasm.ScanSections(data)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseVerify, errors.KindInvalidData, err, "scan sections")
	}

	r := &Report{Sections: headers, Size: len(data)}
	for _, h := range headers {
		if h.Matches(wasm.DebugSectionGlob) {
			r.DebugSections = append(r.DebugSections, h.Name)
		}
	}

	sec, ok, err := wasm.FindCustomSection(data, wasm.ExternalDebugInfoSection)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseVerify, errors.KindInvalidData, err, "find section")
	}
	if ok {
		ref, err := wasm.ParseExternalDebugInfo(sec)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseVerify, errors.KindInvalidData, err, "decode "+wasm.ExternalDebugInfoSection)
		}
		r.Reference = ref
		r.HasReference = true
	}
	return r, nil
}

// Check reports an error unless the module is stripped and carries a reference.
func (r *Report) Check() error {
	if len(r.DebugSections) > 0 {
		return errors.New(errors.PhaseVerify, errors.KindInvalidData).
			Value(r.DebugSections).
			Detail("%d debug sections remain", len(r.DebugSections)).
			Build()
	}
	if !r.HasReference {
		return errors.NotFound(errors.PhaseVerify, "custom section", wasm.ExternalDebugInfoSection)
	}
	return nil
}

// Compile compiles data with wazero and returns the names of the custom
// sections it retained. Threads are enabled since wasm32-wasip1-threads
// modules declare shared memory.
func Compile(ctx context.Context, data []byte) ([]string, error) {
	cfg := wazero.NewRuntimeConfigInterpreter().
		WithCustomSections(true).
		WithCoreFeatures(api.CoreFeaturesV2 | experimental.CoreFeaturesThreads)

	rt := wazero.NewRuntimeWithConfig(ctx, cfg)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, data)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseVerify, errors.KindInvalidData, err, "compile module")
	}
	defer compiled.Close(ctx)

	var names []string
	for _, cs := range compiled.CustomSections() {
		names = append(names, cs.Name())
	}
	return names, nil
}

// File inspects and checks the module at path. When compile is set the
// module is also compiled with wazero.
func File(ctx context.Context, path string, compile bool) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseVerify, path, err)
	}
	r, err := Inspect(data)
	if err != nil {
		return nil, err
	}
	if err := r.Check(); err != nil {
		return r, err
	}
	if compile {
		if _, err := Compile(ctx, data); err != nil {
			return r, err
		}
	}
	return r, nil
}
