package wasm

// WebAssembly binary format magic number and version.
const (
	// Magic is the WebAssembly binary magic number ("\0asm" in little-endian).
	Magic uint32 = 0x6D736100

	// Version is the supported WebAssembly binary format version.
	Version uint32 = 0x01

	// HeaderSize is the size of the magic number plus version.
	HeaderSize = 8
)

// Section IDs define the binary identifiers for each module section.
// Only the custom section ID is interpreted; other sections are copied opaquely.
const (
	SectionCustom byte = 0  // Custom section (can appear anywhere)
	SectionTag    byte = 13 // Highest known section ID (exception handling)
)

// External DWARF conventions.
const (
	// ExternalDebugInfoSection names the custom section that points a debugger
	// at the module carrying the DWARF sections.
	ExternalDebugInfoSection = "external_debug_info"

	// DebugSectionGlob matches the custom sections that hold DWARF data.
	DebugSectionGlob = ".debug*"
)
