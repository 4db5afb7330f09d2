package markers

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Size selects the marker size family.
type Size string

// Marker sizes.
const (
	SizeRegular Size = "regular"
	SizeMini    Size = "mini"
	SizeMiniDot Size = "miniDot"
)

// IsMini reports whether s is one of the miniature pin sizes.
func (s Size) IsMini() bool {
	return s == SizeMini || s == SizeMiniDot
}

// Valid reports whether s is a known size.
func (s Size) Valid() bool {
	switch s {
	case SizeRegular, SizeMini, SizeMiniDot:
		return true
	}
	return false
}

// Variant selects an alternate color scheme.
// Unknown variants are kept verbatim and render like VariantDefault.
type Variant string

// Marker variants.
const (
	VariantDefault Variant = "default"
	VariantSpecial Variant = "special"
)

// Descriptor is the immutable semantic description of a marker's appearance.
//
// Descriptor is a comparable value: two descriptors are equal exactly when
// all their fields are equal, and equal descriptors have equal keys.
type Descriptor struct {
	// Label is the main text of the bubble.
	Label string

	// Icon is SVG markup for the leading icon. Empty means no icon.
	Icon string

	// Counter is the text of the trailing counter badge. Empty means no counter.
	Counter string

	HasPointer   bool
	HasElevation bool
	IsSelected   bool
	IsVisualized bool

	// State is an application defined state tag. It takes part in the key
	// but not in the layout.
	State string

	Variant Variant
	Size    Size

	// IsAnimated requests a cross-fade when this descriptor replaces another.
	IsAnimated bool
}

// IsMini reports whether the descriptor uses a miniature size.
func (d Descriptor) IsMini() bool {
	return d.Size.IsMini()
}

// HasIcon reports whether an icon source is present.
func (d Descriptor) HasIcon() bool {
	return d.Icon != ""
}

// HasCounter reports whether a counter text is present.
func (d Descriptor) HasCounter() bool {
	return d.Counter != ""
}

// Normalize returns a copy with text fields in Unicode NFC form and empty
// variant and size replaced by their defaults.
func (d Descriptor) Normalize() Descriptor {
	d.Label = norm.NFC.String(d.Label)
	d.Counter = norm.NFC.String(d.Counter)
	if d.Variant == "" {
		d.Variant = VariantDefault
	}
	if d.Size == "" {
		d.Size = SizeRegular
	}
	return d
}

// Validate checks the descriptor for values the layout engine cannot handle.
func (d Descriptor) Validate() error {
	if d.Size != "" && !d.Size.Valid() {
		return &InvalidSizeError{Size: d.Size}
	}
	return nil
}

// Key is a structural digest of a Descriptor.
type Key [sha256.Size]byte

// String returns the hex form of the key.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Key returns the canonical digest of all descriptor fields.
//
// Every field is length-prefixed, so no two distinct descriptors share an
// encoding regardless of where their strings would split when concatenated.
func (d Descriptor) Key() Key {
	h := sha256.New()
	var buf [8]byte
	writeString := func(s string) {
		binary.BigEndian.PutUint64(buf[:], uint64(len(s)))
		_, _ = h.Write(buf[:])
		_, _ = h.Write([]byte(s))
	}
	writeBool := func(b bool) {
		v := byte(0)
		if b {
			v = 1
		}
		_, _ = h.Write([]byte{v})
	}

	writeString(d.Label)
	writeString(d.Icon)
	writeString(d.Counter)
	writeBool(d.HasPointer)
	writeBool(d.HasElevation)
	writeBool(d.IsSelected)
	writeBool(d.IsVisualized)
	writeString(d.State)
	writeString(string(d.Variant))
	writeString(string(d.Size))
	writeBool(d.IsAnimated)

	var k Key
	h.Sum(k[:0])
	return k
}

// VisualKey is the key of the rendered appearance: Key with IsAnimated
// cleared, since animation does not change the bitmap.
func (d Descriptor) VisualKey() Key {
	d.IsAnimated = false
	return d.Key()
}
