package serial

import (
	"fmt"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"

	"github.com/daedaluz/fdev/poll"
	ioctl "github.com/daedaluz/goioctl"
)

type Termios struct {
	Iflag IFlag      /* input mode flags */
	Oflag OFlag      /* output mode flags */
	Cflag CFlag      /* control mode flags */
	Lflag LFlag      /* local mode flags */
	Line  Discipline /* line discipline */
	Cc    [19]byte   /* control characters */
}

type Termios2 struct {
	Iflag  IFlag      /* input mode flags */
	Oflag  OFlag      /* output mode flags */
	Cflag  CFlag      /* control mode flags */
	Lflag  LFlag      /* local mode flags */
	Line   Discipline /* line discipline */
	Cc     [19]byte   /* control characters */
	ISpeed uint32     /* input speed */
	OSpeed uint32     /* output speed */
}

type IFlag uint32

// Input flags
const (
	IGNBRK = IFlag(0000001)
	BRKINT = IFlag(0000002)
	IGNPAR = IFlag(0000004)
	PARMRK = IFlag(0000010)
	INPCK  = IFlag(0000020)
	ISTRIP = IFlag(0000040)
	INLCR  = IFlag(0000100)
	IGNCR  = IFlag(0000200)
	ICRNL  = IFlag(0000400)
	IXON   = IFlag(0002000)
	IXANY  = IFlag(0004000)
	IXOFF  = IFlag(0010000)
)

type OFlag uint32

// Output flags
const (
	OPOST = OFlag(0000001)
)

type CFlag uint32

// Control flags. Only the bits the Optolink link actually sets are named;
// the full 4800-to-4000000 baud table and RS485/modem-line extensions are
// not needed by a fixed 4800-baud optical port.
const (
	CBAUD = CFlag(0010017)
	B4800 = CFlag(0000014)

	CSIZE = CFlag(0000060)
	CS8   = CFlag(0000060)

	CSTOPB = CFlag(0000100) // two stop bits
	CREAD  = CFlag(0000200) // enable receiver
	PARENB = CFlag(0000400) // parity generation/checking
	PARODD = CFlag(0001000) // odd parity; unset = even
	HUPCL  = CFlag(0002000)
	CLOCAL = CFlag(0004000) // ignore modem control lines
)

type LFlag uint32

// Line flags
const (
	ISIG   = LFlag(0000001)
	ICANON = LFlag(0000002)
	ECHO   = LFlag(0000010)
	ECHONL = LFlag(0000100)
	IEXTEN = LFlag(0100000)
)

type Queue uint32

const (
	TCIFLUSH = Queue(iota)
	TCOFLUSH
	TCIOFLUSH
)

type Action int

const (
	// TCSANOW: the change occurs immediately.
	TCSANOW = Action(iota)
	// TCSADRAIN: the change occurs after all queued output has drained.
	TCSADRAIN
	// TCSAFLUSH: like TCSADRAIN, and also discards unread input.
	TCSAFLUSH
)

type Discipline byte

const (
	N_TTY = Discipline(iota)
)

type Options struct {
	ReadTimeout time.Duration
	OpenMode    int
}

func NewOptions() *Options {
	return &Options{ReadTimeout: -1, OpenMode: syscall.O_RDWR | syscall.O_NOCTTY}
}

func (o *Options) SetReadTimeout(timeout time.Duration) *Options {
	o.ReadTimeout = timeout
	return o
}

// Port is a raw, non-buffering handle to a Linux tty device node.
type Port struct {
	options *Options
	closed  atomic.Bool
	f       int
}

func Open(name string, opts *Options) (*Port, error) {
	if opts == nil {
		opts = NewOptions()
	}
	fd, err := syscall.Open(name, opts.OpenMode, 0)
	if err != nil {
		return nil, wrapErr("open "+name, err)
	}
	return &Port{
		options: opts,
		f:       fd,
	}, nil
}

func (p *Port) Write(data []byte) (n int, err error) {
	if p.closed.Load() {
		return 0, ErrClosed
	}
	n, err = syscall.Write(p.f, data)
	return n, wrapErr("write", err)
}

func (p *Port) readTimeout(data []byte, timeout time.Duration) (int, error) {
	if err := poll.WaitInput(p.f, timeout); err != nil {
		return 0, wrapErr("poll", err)
	}
	n, err := syscall.Read(p.f, data)
	return n, wrapErr("read", err)
}

func (p *Port) Read(data []byte) (n int, err error) {
	if p.closed.Load() {
		return 0, ErrClosed
	}
	if p.options.ReadTimeout > -1 {
		return p.readTimeout(data, p.options.ReadTimeout)
	}
	n, err = syscall.Read(p.f, data)
	return n, wrapErr("read", err)
}

// ReadTimeout reads ignoring the Port's configured default timeout.
func (p *Port) ReadTimeout(data []byte, timeout time.Duration) (n int, err error) {
	if p.closed.Load() {
		return 0, ErrClosed
	}
	return p.readTimeout(data, timeout)
}

func (p *Port) SetReadTimeout(timeout time.Duration) {
	p.options.ReadTimeout = timeout
}

func (p *Port) Fd() int {
	if p.closed.Load() {
		return -1
	}
	return p.f
}

func (p *Port) Close() error {
	if !p.closed.Swap(true) {
		fd := p.f
		p.f = -1
		return wrapErr("close", syscall.Close(fd))
	}
	return ErrClosed
}

func (p *Port) GetAttr() (*Termios, error) {
	attrs := &Termios{}
	err := ioctl.Ioctl(uintptr(p.f), tcgets, uintptr(unsafe.Pointer(attrs)))
	if err != nil {
		return nil, wrapErr("tcgets", err)
	}
	return attrs, nil
}

func (p *Port) SetAttr(when Action, attrs *Termios) error {
	return wrapErr("tcsets", ioctl.Ioctl(uintptr(p.f), tcsets+uintptr(when), uintptr(unsafe.Pointer(attrs))))
}

func (p *Port) GetAttr2() (*Termios2, error) {
	attrs := &Termios2{}
	err := ioctl.Ioctl(uintptr(p.f), tcgets2, uintptr(unsafe.Pointer(attrs)))
	if err != nil {
		return nil, wrapErr("tcgets2", err)
	}
	return attrs, nil
}

func (p *Port) SetAttr2(when Action, attrs *Termios2) error {
	return wrapErr("tcsets2", ioctl.Ioctl(uintptr(p.f), tcsets2+uintptr(when), uintptr(unsafe.Pointer(attrs))))
}

// Drain waits until all output written to the Port has been transmitted.
func (p *Port) Drain() error {
	return wrapErr("drain", ioctl.Ioctl(uintptr(p.f), tcsbrk, 1))
}

// Flush discards data written to the Port but not transmitted, or data
// received but not read, depending on queue.
func (p *Port) Flush(queue Queue) error {
	return wrapErr("tcflsh", ioctl.Ioctl(uintptr(p.f), tcflsh, uintptr(queue)))
}

// Winsize mirrors struct winsize from <asm-generic/termios.h>; only used by
// pseudoterminals, a real serial line has no notion of rows/columns.
type Winsize struct {
	Row    uint16
	Col    uint16
	Xpixel uint16
	Ypixel uint16
}

// SetLockPT locks or unlocks the pty pair's slave side. A freshly opened
// /dev/ptmx master starts locked; it must be unlocked before the slave can
// be opened.
func (p *Port) SetLockPT(locked bool) error {
	var v int32
	if locked {
		v = 1
	}
	return wrapErr("tiocsptlck", ioctl.Ioctl(uintptr(p.f), tiocsptlck, uintptr(unsafe.Pointer(&v))))
}

// GetPTPeer opens the slave end of a pty pair whose master is p.
func (p *Port) GetPTPeer(flags int) (*Port, error) {
	var n uint32
	if err := ioctl.Ioctl(uintptr(p.f), tiocgptn, uintptr(unsafe.Pointer(&n))); err != nil {
		return nil, wrapErr("tiocgptn", err)
	}
	name := fmt.Sprintf("/dev/pts/%d", n)
	opts := NewOptions()
	opts.OpenMode = syscall.O_RDWR | syscall.O_NOCTTY | flags
	return Open(name, opts)
}

func (p *Port) SetWinSize(ws *Winsize) error {
	return wrapErr("tiocswinsz", ioctl.Ioctl(uintptr(p.f), tiocswinsz, uintptr(unsafe.Pointer(ws))))
}

func (p *Port) GetWinSize() (*Winsize, error) {
	ws := &Winsize{}
	if err := ioctl.Ioctl(uintptr(p.f), tiocgwinsz, uintptr(unsafe.Pointer(ws))); err != nil {
		return nil, wrapErr("tiocgwinsz", err)
	}
	return ws, nil
}

func (attrs *Termios) MakeRaw() {
	attrs.Iflag &= ^(IGNBRK | BRKINT | PARMRK | ISTRIP | INLCR | IGNCR | ICRNL | IXON)
	attrs.Oflag &= ^(OPOST)
	attrs.Lflag &= ^(ECHO | ECHONL | ICANON | ISIG | IEXTEN)
	attrs.Cflag &= ^(CSIZE | PARENB)
	attrs.Cflag |= CS8
}

func (attrs *Termios) SetSpeed(speed CFlag) {
	attrs.Cflag &= ^(CBAUD)
	attrs.Cflag |= speed
}
