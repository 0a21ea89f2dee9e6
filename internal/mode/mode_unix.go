//go:build !windows

package mode

import (
	"os"
	"syscall"
)

// FromFileInfo extracts the raw stat mode bits (type + permission bits) on
// Unix, matching what mosmeh/indexa's Mode::from(&Metadata) captures via
// MetadataExt::mode().
func FromFileInfo(fi os.FileInfo) Mode {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return Mode(uint32(st.Mode))
	}
	return Mode(fi.Mode())
}
