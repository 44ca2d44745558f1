package key

import "runtime"

// Mod is a bit set of modifier keys.
type Mod uint8

const (
	ModNone Mod = 0
	ModCtrl Mod = 1 << iota
	ModAlt
	ModShift
	ModMeta
)

// Primary returns the platform's primary command modifier: meta on
// macOS, ctrl everywhere else.
func Primary() Mod {
	if runtime.GOOS == "darwin" {
		return ModMeta
	}
	return ModCtrl
}

// Has reports whether all bits of other are set.
func (m Mod) Has(other Mod) bool {
	return m&other == other
}

// String returns a "+"-joined list of modifier names.
func (m Mod) String() string {
	if m == ModNone {
		return ""
	}
	var parts []byte
	add := func(s string) {
		if len(parts) > 0 {
			parts = append(parts, '+')
		}
		parts = append(parts, s...)
	}
	if m.Has(ModCtrl) {
		add("ctrl")
	}
	if m.Has(ModAlt) {
		add("alt")
	}
	if m.Has(ModShift) {
		add("shift")
	}
	if m.Has(ModMeta) {
		add("meta")
	}
	return string(parts)
}
