//go:build windows

package mode

import (
	"os"
	"syscall"
)

// FromFileInfo extracts the Windows file attribute bits, matching what
// mosmeh/indexa's Mode::from(&Metadata) captures via MetadataExt::file_attributes().
func FromFileInfo(fi os.FileInfo) Mode {
	if sys, ok := fi.Sys().(*syscall.Win32FileAttributeData); ok {
		return Mode(sys.FileAttributes)
	}
	return 0
}

const fileAttributeHidden = 0x2

// IsHidden reports whether m has the Windows "hidden" attribute set.
func (m Mode) IsHidden() bool {
	return uint32(m)&fileAttributeHidden != 0
}
