package chemistry

import "strings"

// Code identifies a battery cell's electrochemical type.
type Code string

// Supported chemistry codes.
const (
	LFP Code = "lfp"
	NMC Code = "nmc"
	LCO Code = "lco"
	LMO Code = "lmo"
)

// DefaultCode is substituted for any unrecognized chemistry code. Unknown
// inputs never error: lookups are total over the whole string domain.
const DefaultCode = NMC

// Profile describes the safe operating envelope of one cell chemistry.
type Profile struct {
	Code           Code    `json:"code"`
	NominalVoltage float64 `json:"nominal_voltage"`
	MinVoltage     float64 `json:"min_voltage"`
	MaxVoltage     float64 `json:"max_voltage"`
	DisplayColor   string  `json:"color"`
}

var profiles = map[Code]Profile{
	LFP: {Code: LFP, NominalVoltage: 3.2, MinVoltage: 2.8, MaxVoltage: 3.6, DisplayColor: "#2E8B57"},
	NMC: {Code: NMC, NominalVoltage: 3.6, MinVoltage: 3.2, MaxVoltage: 4.0, DisplayColor: "#4169E1"},
	LCO: {Code: LCO, NominalVoltage: 3.7, MinVoltage: 3.0, MaxVoltage: 4.2, DisplayColor: "#FF6347"},
	LMO: {Code: LMO, NominalVoltage: 3.8, MinVoltage: 3.2, MaxVoltage: 4.3, DisplayColor: "#32CD32"},
}

// Lookup resolves a chemistry code to its profile. Matching is
// case-insensitive; unrecognized codes fall back to the NMC profile rather
// than failing, which downstream consumers rely on.
func Lookup(code string) Profile {
	if p, ok := profiles[Code(normalize(code))]; ok {
		return p
	}
	return profiles[DefaultCode]
}

// Known reports whether code names one of the supported chemistries.
func Known(code string) bool {
	_, ok := profiles[Code(normalize(code))]
	return ok
}

// Codes returns the supported chemistry codes in display order.
func Codes() []Code {
	return []Code{LFP, NMC, LCO, LMO}
}

// Normalize maps an arbitrary user-supplied code onto the code that Lookup
// would resolve it to.
func Normalize(code string) Code {
	if c := Code(normalize(code)); c != "" {
		if _, ok := profiles[c]; ok {
			return c
		}
	}
	return DefaultCode
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
