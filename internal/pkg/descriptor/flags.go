package descriptor

// FLG byte of the frame descriptor, format version 1 layout.
const (
	flgDictId            Flags = 1 << 0
	flgReserved          Flags = 1 << 1
	flgContentChecksum   Flags = 1 << 2
	flgContentSize       Flags = 1 << 3
	flgBlockChecksum     Flags = 1 << 4
	flgBlockIndependence Flags = 1 << 5
)

const Version1 uint8 = 1

type Flags uint8

func (f Flags) DictId() bool            { return f&flgDictId != 0 }
func (f Flags) Reserved() bool          { return f&flgReserved != 0 }
func (f Flags) ContentChecksum() bool   { return f&flgContentChecksum != 0 }
func (f Flags) ContentSize() bool       { return f&flgContentSize != 0 }
func (f Flags) BlockChecksum() bool     { return f&flgBlockChecksum != 0 }
func (f Flags) BlockIndependence() bool { return f&flgBlockIndependence != 0 }
func (f Flags) Version() uint8          { return uint8(f >> 6) }

func (f *Flags) SetContentChecksum()   { *f |= flgContentChecksum }
func (f *Flags) SetContentSize()       { *f |= flgContentSize }
func (f *Flags) SetBlockChecksum()     { *f |= flgBlockChecksum }
func (f *Flags) SetBlockIndependence() { *f |= flgBlockIndependence }
func (f *Flags) SetVersion(v uint8)    { *f = *f&0x3F | Flags(v)<<6 }
