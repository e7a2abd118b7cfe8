package serial

import (
	ioctl "github.com/daedaluz/goioctl"
	"unsafe"
)

// ioctl request numbers used by the Optolink link. Trimmed from the full
// Linux serial-line ioctl table down to what a raw, flow-control-free tty
// actually needs: attribute get/set, flush, and the pseudo-terminal calls
// used by the in-process loopback tests.
var (
	tcgets = uintptr(0x5401)
	tcsets = uintptr(0x5402) // +Action gives TCSETSW (0x5403) / TCSETSF (0x5404)

	tcgets2 = ioctl.IOR('T', 0x2A, unsafe.Sizeof(Termios2{}))
	tcsets2 = ioctl.IOW('T', 0x2B, unsafe.Sizeof(Termios2{})) // +Action likewise

	tcflsh = uintptr(0x540B)
	tcsbrk = uintptr(0x5409) // arg 1: drain output without sending a break

	tiocswinsz = uintptr(0x5414)
	tiocgwinsz = uintptr(0x5413)

	tiocgptn    = ioctl.IOR('T', 0x30, unsafe.Sizeof(uint32(0)))
	tiocsptlck  = ioctl.IOW('T', 0x31, unsafe.Sizeof(int32(0)))
	tiocgptpeer = ioctl.IO('T', 0x41)
)
