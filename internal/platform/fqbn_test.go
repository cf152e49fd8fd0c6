package platform

import (
	"testing"

	"github.com/thoreinstein/boardci/internal/errors"
)

func TestFQBN_Package(t *testing.T) {
	tests := []struct {
		fqbn FQBN
		want string
	}{
		{"rakwireless:nrf52:WisCoreRAK4631Board:softdevice=s140v6,debug=l0", "rakwireless:nrf52"},
		{"arduino:avr:uno", "arduino:avr"},
		{"arduino:avr:mega:cpu=atmega2560", "arduino:avr"},
		{"esp8266:esp8266:huzzah:eesz=4M3M,xtal=80", "esp8266:esp8266"},
	}
	for _, tt := range tests {
		t.Run(string(tt.fqbn), func(t *testing.T) {
			if got := tt.fqbn.Package(); got != tt.want {
				t.Errorf("Package() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFQBN_Segments(t *testing.T) {
	f := FQBN("rak_rui:stm32:WisDuoRAK3172TBoard:debug=l0")

	if f.Vendor() != "rak_rui" {
		t.Errorf("Vendor() = %q", f.Vendor())
	}
	if f.Arch() != "stm32" {
		t.Errorf("Arch() = %q", f.Arch())
	}
	if f.Board() != "WisDuoRAK3172TBoard" {
		t.Errorf("Board() = %q", f.Board())
	}
	if f.Options() != "debug=l0" {
		t.Errorf("Options() = %q", f.Options())
	}
	if FQBN("arduino:avr:uno").Options() != "" {
		t.Error("Options() should be empty without an options segment")
	}
}

func TestParseFQBN(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"arduino:avr:uno", false},
		{"esp32:esp32:featheresp32:FlashFreq=80", false},
		{"arduino:avr", true},
		{"arduino::uno", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseFQBN(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFQBN(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidFQBN) {
				t.Errorf("expected ErrInvalidFQBN, got %v", err)
			}
		})
	}
}
