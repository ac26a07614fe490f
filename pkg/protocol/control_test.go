package protocol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestControlEncodeDecode(t *testing.T) {
	tests := []struct {
		name    string
		ct      ControlType
		payload any
	}{
		{"ping", ControlPing, &PingPong{Timestamp: 1700000000000}},
		{"pong", ControlPong, &PingPong{Timestamp: 7}},
		{"close", ControlClose, &CloseMessage{Reason: CloseServerShutdown, Message: "bye"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, payload, err := DecodeControl(EncodeControl(tt.ct, tt.payload))
			if err != nil {
				t.Fatalf("DecodeControl() error = %v", err)
			}
			if ct != tt.ct {
				t.Errorf("type = %v, want %v", ct, tt.ct)
			}
			if diff := cmp.Diff(tt.payload, payload); diff != "" {
				t.Errorf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestControlDefaults(t *testing.T) {
	ct, payload, err := DecodeControl(EncodeControl(ControlClose, nil))
	if err != nil {
		t.Fatalf("DecodeControl() error = %v", err)
	}
	if ct != ControlClose {
		t.Errorf("type = %v", ct)
	}
	if cm := payload.(*CloseMessage); cm.Reason != CloseNormal || cm.Message != "" {
		t.Errorf("payload = %+v, want normal close", cm)
	}

	ct, payload, err = DecodeControl([]byte{0x99})
	if err != nil || payload != nil || ct.String() != "Unknown" {
		t.Errorf("unknown control = %v, %v, %v", ct, payload, err)
	}

	if _, _, err := DecodeControl(nil); err == nil {
		t.Error("DecodeControl(nil) should fail")
	}
}

func TestNewControlHelpers(t *testing.T) {
	if ct, pp := NewPing(5); ct != ControlPing || pp.Timestamp != 5 {
		t.Errorf("NewPing = %v %+v", ct, pp)
	}
	if ct, pp := NewPong(6); ct != ControlPong || pp.Timestamp != 6 {
		t.Errorf("NewPong = %v %+v", ct, pp)
	}
	if ct, cm := NewClose(CloseError, "x"); ct != ControlClose || cm.Reason.String() != "Error" {
		t.Errorf("NewClose = %v %+v", ct, cm)
	}
}

func TestErrorMessage(t *testing.T) {
	em := NewFatalError(ErrInvalidFrame, "bad header")
	got, err := DecodeErrorMessage(EncodeErrorMessage(em))
	if err != nil {
		t.Fatalf("DecodeErrorMessage() error = %v", err)
	}
	if diff := cmp.Diff(em, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got.Error() != "fatal: InvalidFrame: bad header" {
		t.Errorf("Error() = %q", got.Error())
	}
	if s := NewError(ErrUnknownHID, "i9").Error(); s != "UnknownHID: i9" {
		t.Errorf("Error() = %q", s)
	}
	if _, err := DecodeErrorMessage([]byte{0x00}); err == nil {
		t.Error("DecodeErrorMessage(short) should fail")
	}
}
