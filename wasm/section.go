package wasm

import (
	"errors"
	"fmt"
	"path"

	"github.com/namui/wasm-dwarf/wasm/internal/binary"
)

// Scanning errors returned by ScanSections.
var (
	ErrInvalidMagic   = errors.New("invalid wasm magic number")
	ErrInvalidVersion = errors.New("invalid wasm version")
)

// CustomSection holds a named custom section's data.
type CustomSection struct {
	Name string
	Data []byte
}

// Size returns the declared section size: the encoded name plus the data.
func (c CustomSection) Size() uint32 {
	n := uint32(len(c.Name))
	return uint32(SizeLEB128u(n)) + n + uint32(len(c.Data))
}

// Bytes returns the framed section: id, LEB128 size, name, data.
func (c CustomSection) Bytes() []byte {
	w := binary.NewWriter()
	w.Byte(SectionCustom)
	w.WriteU32(c.Size())
	w.WriteName(c.Name)
	w.WriteBytes(c.Data)
	return w.Bytes()
}

// ExternalDebugInfo builds the external_debug_info section pointing at ref.
// The contents are LEB128(len(ref)) followed by the UTF-8 bytes of ref.
func ExternalDebugInfo(ref string) CustomSection {
	data := EncodeLEB128u(uint32(len(ref)))
	data = append(data, ref...)
	return CustomSection{Name: ExternalDebugInfoSection, Data: data}
}

// ParseExternalDebugInfo decodes the reference path from the data of an
// external_debug_info section.
func ParseExternalDebugInfo(data []byte) (string, error) {
	r := binary.NewReader(data)
	ref, err := r.ReadName()
	if err != nil {
		return "", r.WrapError(ExternalDebugInfoSection, err)
	}
	if r.Len() != 0 {
		return "", r.WrapError(ExternalDebugInfoSection, fmt.Errorf("%d trailing bytes", r.Len()))
	}
	return ref, nil
}

// SectionHeader describes one top-level section of a module.
type SectionHeader struct {
	// Name is set for custom sections only.
	Name string
	// Offset is the position of the section ID byte.
	Offset int
	// DataOffset is the position of the first payload byte.
	DataOffset int
	// NameSize is the length of the encoded name, prefix included.
	NameSize int
	// Size is the declared payload size.
	Size uint32
	ID   byte
}

// End returns the position just past the section.
func (h SectionHeader) End() int {
	return h.DataOffset + int(h.Size)
}

// IsCustom reports whether the header belongs to a custom section.
func (h SectionHeader) IsCustom() bool {
	return h.ID == SectionCustom
}

// Matches reports whether h is a custom section whose name matches any of the globs.
func (h SectionHeader) Matches(globs ...string) bool {
	if !h.IsCustom() {
		return false
	}
	for _, g := range globs {
		if ok, _ := path.Match(g, h.Name); ok {
			return true
		}
	}
	return false
}

// ScanSections walks the section framing of a module without decoding
// section contents. Custom section names are read so they can be matched.
func ScanSections(data []byte) ([]SectionHeader, error) {
	r := binary.NewReader(data)

	magic, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if magic != Magic {
		return nil, ErrInvalidMagic
	}
	version, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if version != Version {
		return nil, ErrInvalidVersion
	}

	var headers []SectionHeader
	for r.Len() > 0 {
		h := SectionHeader{Offset: r.Position()}
		if h.ID, err = r.ReadByte(); err != nil {
			return nil, r.WrapError("section header", err)
		}
		if h.ID > SectionTag {
			return nil, r.WrapError("section header", fmt.Errorf("unknown section ID: 0x%02x", h.ID))
		}
		if h.Size, err = r.ReadU32(); err != nil {
			return nil, r.WrapError("section size", err)
		}
		h.DataOffset = r.Position()
		if int(h.Size) > r.Len() {
			return nil, r.WrapError("section data", fmt.Errorf("size %d exceeds %d remaining bytes", h.Size, r.Len()))
		}
		payload, err := r.ReadBytes(int(h.Size))
		if err != nil {
			return nil, r.WrapError("section data", err)
		}
		if h.IsCustom() {
			nr := binary.NewReader(payload)
			name, err := nr.ReadName()
			if err != nil {
				return nil, r.WrapError("custom section name", err)
			}
			h.Name = name
			h.NameSize = nr.Position()
		}
		headers = append(headers, h)
	}
	return headers, nil
}

// FindCustomSection returns the data (after the name) of the last custom
// section called name, or false if there is none.
func FindCustomSection(data []byte, name string) ([]byte, bool, error) {
	headers, err := ScanSections(data)
	if err != nil {
		return nil, false, err
	}
	for i := len(headers) - 1; i >= 0; i-- {
		h := headers[i]
		if !h.IsCustom() || h.Name != name {
			continue
		}
		return data[h.DataOffset+h.NameSize : h.End()], true, nil
	}
	return nil, false, nil
}
