package catalog

// Part is one entry of the fixed instrument vocabulary.
type Part int

const (
	FiveFretGuitar Part = iota
	FiveFretBass
	FiveFretRhythm
	FiveFretCoopGuitar
	Keys
	SixFretGuitar
	SixFretBass
	SixFretRhythm
	SixFretCoopGuitar
	FourLaneDrums
	ProDrums
	FiveLaneDrums
	ProGuitar17Fret
	ProGuitar22Fret
	ProBass17Fret
	ProBass22Fret
	ProKeys
	Vocals
	Harmony
	Band

	instrumentCount
)

var instrumentNames = [instrumentCount]string{
	FiveFretGuitar:     "FiveFretGuitar",
	FiveFretBass:       "FiveFretBass",
	FiveFretRhythm:     "FiveFretRhythm",
	FiveFretCoopGuitar: "FiveFretCoopGuitar",
	Keys:               "Keys",
	SixFretGuitar:      "SixFretGuitar",
	SixFretBass:        "SixFretBass",
	SixFretRhythm:      "SixFretRhythm",
	SixFretCoopGuitar:  "SixFretCoopGuitar",
	FourLaneDrums:      "FourLaneDrums",
	ProDrums:           "ProDrums",
	FiveLaneDrums:      "FiveLaneDrums",
	ProGuitar17Fret:    "ProGuitar_17Fret",
	ProGuitar22Fret:    "ProGuitar_22Fret",
	ProBass17Fret:      "ProBass_17Fret",
	ProBass22Fret:      "ProBass_22Fret",
	ProKeys:            "ProKeys",
	Vocals:             "Vocals",
	Harmony:            "Harmony",
	Band:               "Band",
}

// Instruments returns the vocabulary in display order.
func Instruments() []Part {
	out := make([]Part, 0, instrumentCount)
	for i := range instrumentCount {
		out = append(out, i)
	}
	return out
}

// String returns the instrument name. It is also the category name used
// when a catalog is sorted by instrument.
func (i Part) String() string {
	if i < 0 || i >= instrumentCount {
		return ""
	}
	return instrumentNames[i]
}

// ParseInstrument returns the instrument with the exact given name.
func ParseInstrument(name string) (Part, bool) {
	for i, n := range instrumentNames {
		if n == name {
			return Part(i), true
		}
	}
	return 0, false
}

// InstrumentSet is a bit set over the vocabulary.
type InstrumentSet uint32

// Has reports whether i is in the set.
func (s InstrumentSet) Has(i Part) bool {
	return i >= 0 && i < instrumentCount && s&(1<<uint(i)) != 0
}

// With returns a copy of s that includes i.
func (s InstrumentSet) With(i Part) InstrumentSet {
	if i < 0 || i >= instrumentCount {
		return s
	}
	return s | 1<<uint(i)
}

// List returns the members in vocabulary order.
func (s InstrumentSet) List() []Part {
	var out []Part
	for i := range instrumentCount {
		if s.Has(i) {
			out = append(out, i)
		}
	}
	return out
}
