package otquery

import (
	"github.com/npillmayer/otglyph/ot"
)

// HeadTableInfo is a typed query view over OpenType table 'head'.
type HeadTableInfo struct {
	MajorVersion      uint16
	MinorVersion      uint16
	FontRevision      uint32
	MagicNumber       uint32
	Flags             uint16
	UnitsPerEm        uint16
	XMin, YMin        int16
	XMax, YMax        int16
	MacStyle          uint16
	LowestRecPPEM     uint16
	IndexToLocFormat  int16
	FontDirectionHint int16
}

// HeadMagic is the magic number of table 'head'.
const HeadMagic = 0x5F0F3CF5

// HeadInfo decodes table 'head'.
// Returns (info, true) on success, or (zero, false) if the table is missing or too short.
func HeadInfo(font Tables) (HeadTableInfo, bool) {
	var info HeadTableInfo
	r, ok := reader(font, ot.T("head"))
	if !ok {
		return info, false
	}
	info.MajorVersion = r.U16(0)
	info.MinorVersion = r.U16(2)
	info.FontRevision = r.U32(4)
	info.MagicNumber = r.U32(12)
	info.Flags = r.U16(16)
	info.UnitsPerEm = r.U16(18)
	info.XMin, info.YMin = r.S16(36), r.S16(38)
	info.XMax, info.YMax = r.S16(40), r.S16(42)
	info.MacStyle = r.U16(44)
	info.LowestRecPPEM = r.U16(46)
	info.FontDirectionHint = r.S16(48)
	info.IndexToLocFormat = r.S16(50)
	if err := r.Err(); err != nil {
		tracer().Errorf(err.Error())
		return HeadTableInfo{}, false
	}
	return info, true
}
