package otquery

import (
	"github.com/npillmayer/otglyph/ot"
)

// MaxPTableInfo is a typed query view over OpenType table 'maxp'.
// For version 1.0 tables, a selection of the TrueType profile fields is
// decoded as well.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16

	// TrueType profile fields (version 1.0 only)
	HasExtendedProfile   bool
	MaxPoints            uint16
	MaxContours          uint16
	MaxComponentElements uint16
	MaxComponentDepth    uint16
}

const maxpV10Size = 32

// MaxPInfo decodes table 'maxp'.
// Returns (info, true) on success, or (zero, false) if the table is missing or too short.
func MaxPInfo(font Tables) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	src, ok := source(font, ot.T("maxp"))
	if !ok {
		return info, false
	}
	r := src.Reader("maxp")
	info.VersionFixed = r.U32(0)
	info.NumGlyphs = r.U16(4)
	if err := r.Err(); err != nil {
		tracer().Errorf(err.Error())
		return MaxPTableInfo{}, false
	}
	if info.VersionFixed != 0x00010000 {
		return info, true // CFF fonts have version 0.5
	}
	if src.Size() < maxpV10Size {
		return info, true
	}
	info.HasExtendedProfile = true
	info.MaxPoints = r.U16(6)
	info.MaxContours = r.U16(8)
	info.MaxComponentElements = r.U16(28)
	info.MaxComponentDepth = r.U16(30)
	return info, r.Err() == nil
}
