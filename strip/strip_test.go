package strip_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/namui/wasm-dwarf/errors"
	"github.com/namui/wasm-dwarf/strip"
	"github.com/namui/wasm-dwarf/wasm"
)

var header = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// typeSection is an empty type section: id 1, size 1, count 0.
var typeSection = []byte{0x01, 0x01, 0x00}

func debugModule() []byte {
	out := append([]byte(nil), header...)
	out = append(out, typeSection...)
	out = append(out, wasm.CustomSection{Name: ".debug_info", Data: []byte{1, 2, 3, 4}}.Bytes()...)
	out = append(out, wasm.CustomSection{Name: "name", Data: []byte{0}}.Bytes()...)
	out = append(out, wasm.CustomSection{Name: ".debug_line", Data: bytes.Repeat([]byte{9}, 300)}.Bytes()...)
	return out
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "objcopy")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestObjcopyArgs(t *testing.T) {
	o := strip.NewObjcopy("")
	got := o.Args("in.wasm", "out.wasm")
	want := []string{"in.wasm", "out.wasm", "--remove-section=.debug*"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("Args = %v, want %v", got, want)
	}

	o.Sections = []string{".debug*", "producers"}
	got = o.Args("in.wasm", "out.wasm")
	if len(got) != 4 || got[3] != "--remove-section=producers" {
		t.Errorf("Args = %v", got)
	}
}

func TestObjcopyProcessLaunch(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.wasm")
	o := strip.NewObjcopy(filepath.Join(dir, "no-such-objcopy"))

	err := o.Strip(context.Background(), filepath.Join(dir, "in.wasm"), out)
	if !stderrors.Is(err, errors.ErrProcessLaunch) {
		t.Fatalf("expected process launch error, got %v", err)
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the OS error as cause, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output should not exist: %v", statErr)
	}
}

func TestObjcopyExitStatus(t *testing.T) {
	program := writeScript(t, "echo 'no such file' >&2\nexit 3\n")
	o := strip.NewObjcopy(program)

	err := o.Strip(context.Background(), "missing.wasm", "out.wasm")
	if !stderrors.Is(err, errors.ErrStripFailed) {
		t.Fatalf("expected strip failure, got %v", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if e.Value != 3 {
		t.Errorf("exit code = %v, want 3", e.Value)
	}
	if !strings.Contains(e.Detail, "no such file") {
		t.Errorf("Detail = %q, want stderr included", e.Detail)
	}
}

func TestObjcopySuccess(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	program := writeScript(t, `cp "$1" "$2" && echo "$3" > "`+argsFile+`"`+"\n")

	in := filepath.Join(dir, "in.wasm")
	out := filepath.Join(dir, "out.wasm")
	if err := os.WriteFile(in, header, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := strip.NewObjcopy(program).Strip(context.Background(), in, out); err != nil {
		t.Fatalf("Strip: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, header) {
		t.Errorf("output = %x", got)
	}
	args, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(args)) != "--remove-section=.debug*" {
		t.Errorf("third arg = %q", args)
	}
}

func TestNativeStrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "app.wasm")
	out := filepath.Join(dir, "app-stripped.wasm")
	if err := os.WriteFile(in, debugModule(), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := (&strip.Native{}).Strip(context.Background(), in, out); err != nil {
		t.Fatalf("Strip: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	headers, err := wasm.ScanSections(data)
	if err != nil {
		t.Fatalf("ScanSections: %v", err)
	}
	var names []string
	for _, h := range headers {
		if h.IsCustom() {
			names = append(names, h.Name)
		}
	}
	if len(headers) != 2 || len(names) != 1 || names[0] != "name" {
		t.Errorf("remaining sections = %+v", headers)
	}

	// Input is untouched.
	orig, _ := os.ReadFile(in)
	if !bytes.Equal(orig, debugModule()) {
		t.Error("input was modified")
	}
}

func TestNativeStripCustomGlobs(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "app.wasm")
	out := filepath.Join(dir, "out.wasm")
	if err := os.WriteFile(in, debugModule(), 0o644); err != nil {
		t.Fatal(err)
	}

	n := &strip.Native{Sections: []string{"name"}}
	if err := n.Strip(context.Background(), in, out); err != nil {
		t.Fatalf("Strip: %v", err)
	}
	data, _ := os.ReadFile(out)
	if _, ok, _ := wasm.FindCustomSection(data, "name"); ok {
		t.Error("name section should be removed")
	}
	if _, ok, _ := wasm.FindCustomSection(data, ".debug_info"); !ok {
		t.Error(".debug_info should be kept")
	}
}

func TestNativeStripErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.wasm")
	if err := os.WriteFile(garbage, []byte("not wasm"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"missing input", filepath.Join(dir, "missing.wasm")},
		{"invalid module", garbage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.name+".out")
			err := (&strip.Native{}).Strip(context.Background(), tt.input, out)
			if !stderrors.Is(err, errors.ErrStripFailed) {
				t.Fatalf("expected strip failure, got %v", err)
			}
			if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
				t.Errorf("output should not exist: %v", statErr)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := (&strip.Native{}).Strip(ctx, garbage, filepath.Join(dir, "canceled.out"))
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFunc(t *testing.T) {
	var calls []string
	s := strip.Func(func(_ context.Context, in, out string) error {
		calls = append(calls, in, out)
		return nil
	})
	if err := s.Strip(context.Background(), "a", "b"); err != nil {
		t.Fatal(err)
	}
	if strings.Join(calls, ",") != "a,b" {
		t.Errorf("calls = %v", calls)
	}
}
