// Command optolinkd demonstrates wiring the optolink bridge against a real
// serial port: it registers a small parameter set, starts communication,
// and reads one parameter to stdout. It intentionally does not expose HTTP,
// metrics, or configuration-file parsing — those are left to whatever
// consumes this library.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	optolink "github.com/optolink/bridge"
	"github.com/optolink/bridge/encoding"
	"github.com/optolink/bridge/link"
	"github.com/optolink/bridge/param"
	"github.com/optolink/bridge/serial"
	"github.com/optolink/bridge/unit"
	"go.uber.org/zap"
)

func main() {
	device := flag.String("device", "/dev/ttyUSB0", "Optolink serial device node")
	paramID := flag.String("param", "outside_temp", "parameter id to read once at startup")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	port, err := serial.OpenOptolink(*device)
	if err != nil {
		sugar.Fatalf("open %s: %v", *device, err)
	}
	defer port.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	l := link.New(port, sugar)
	l.Start(ctx)

	storage := demoParameters()
	conn := optolink.New(storage, l, sugar)
	conn.StartCommunication(ctx)

	readCtx, readCancel := context.WithTimeout(ctx, 10*time.Second)
	defer readCancel()
	reading, err := conn.ReadParam(readCtx, *paramID)
	if err != nil {
		sugar.Fatalf("read %s: %v", *paramID, err)
	}
	fmt.Printf("%s = %s\n", reading.Parameter.Name, reading.DisplayString())
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

// demoParameters registers the handful of parameters enough to exercise a
// read/write cycle; a real deployment would load these from a per-device
// parameter table instead of hardcoding them here.
func demoParameters() *param.Storage {
	storage := param.NewStorage()
	lo, hi := -40.0, 95.0
	outsideTemp := param.NewParameter("Outside temperature", "outside_temp", unit.NewNumber(&lo, &hi, false, "°C"), true)
	storage.Add(outsideTemp, param.AddressFromUint16(0x0101), encoding.NewFloat(2, 10))

	roomSetpoint := param.NewParameter("Room setpoint", "room_setpoint", unit.NewNumber(&lo, &hi, false, "°C"), false)
	storage.Add(roomSetpoint, param.AddressFromUint16(0x0103), encoding.NewFloat(2, 10))

	return storage
}
