package serial

// OpenOptolink opens the tty device at name and configures it for the fixed
// line the Viessmann KW wire protocol runs over: 4800 baud, 8 data bits,
// even parity, two stop bits, raw mode, no flow control.
func OpenOptolink(name string) (*Port, error) {
	p, err := Open(name, NewOptions())
	if err != nil {
		return nil, err
	}
	if err := ConfigureOptolink(p); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// ConfigureOptolink applies the KW line discipline to an already-open Port.
func ConfigureOptolink(p *Port) error {
	attrs, err := p.GetAttr()
	if err != nil {
		return err
	}
	attrs.MakeRaw()
	attrs.SetSpeed(B4800)
	attrs.Cflag &^= CSIZE
	attrs.Cflag |= CS8 | CSTOPB | PARENB | CLOCAL | CREAD
	attrs.Cflag &^= PARODD // even parity
	return p.SetAttr(TCSANOW, attrs)
}
