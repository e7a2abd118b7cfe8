package unit

import (
	"github.com/optolink/bridge/encoding"
	"github.com/optolink/bridge/optoerr"
)

// OperatingStatus validates and renders an encoding.OperatingStatus value,
// in German the way the original device documentation does ("An"/"Aus"/"Fehler").
type OperatingStatus struct{}

func NewOperatingStatus() *OperatingStatus { return &OperatingStatus{} }

func (u *OperatingStatus) ID() string { return "operating_status" }

func (u *OperatingStatus) Validate(value any) error {
	if _, ok := value.(encoding.OperatingStatus); !ok {
		return optoerr.New(optoerr.KindUnitValidation, "OperatingStatus expected")
	}
	return nil
}

func (u *OperatingStatus) DisplayString(value any) string {
	switch value.(encoding.OperatingStatus) {
	case encoding.StatusON:
		return "An"
	case encoding.StatusOFF:
		return "Aus"
	default:
		return "Fehler"
	}
}
