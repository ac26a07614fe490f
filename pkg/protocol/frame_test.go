package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFrameEncodeDecode(t *testing.T) {
	f := &Frame{Type: FramePatches, Flags: FlagFinal, Payload: []byte{1, 2, 3}}
	data, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if diff := cmp.Diff([]byte{0x02, 0x04, 0x00, 0x03, 1, 2, 3}, data); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}

	got, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	if diff := cmp.Diff(f, got); diff != "" {
		t.Errorf("DecodeFrame() mismatch (-want +got):\n%s", diff)
	}
	if !got.Flags.Has(FlagFinal) {
		t.Error("FlagFinal lost")
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte{0x01, 0x00}, io.ErrUnexpectedEOF},
		{"short payload", []byte{0x01, 0x00, 0x00, 0x05, 1}, io.ErrUnexpectedEOF},
		{"handshake type", []byte{0x00, 0x00, 0x00, 0x00}, ErrInvalidFrameType},
		{"ack type", []byte{0x04, 0x00, 0x00, 0x00}, ErrInvalidFrameType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFrame(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("DecodeFrame() err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFrameTooLarge(t *testing.T) {
	f := NewFrame(FrameEvent, make([]byte, MaxPayloadSize+1))
	if _, err := f.Encode(); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("Encode() err = %v, want ErrFrameTooLarge", err)
	}
	if err := WriteFrame(io.Discard, f); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("WriteFrame() err = %v, want ErrFrameTooLarge", err)
	}
}

func TestReadWriteFrameStream(t *testing.T) {
	var buf bytes.Buffer
	frames := []*Frame{
		NewFrame(FrameEvent, []byte("a")),
		NewFrame(FrameControl, nil),
		NewFrame(FrameError, []byte("xyz")),
	}
	for _, f := range frames {
		if err := WriteFrame(&buf, f); err != nil {
			t.Fatalf("WriteFrame() error = %v", err)
		}
	}
	for _, want := range frames {
		got, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame() error = %v", err)
		}
		if got.Type != want.Type || !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("ReadFrame() = %v %q, want %v %q", got.Type, got.Payload, want.Type, want.Payload)
		}
	}
	if _, err := ReadFrame(&buf); !errors.Is(err, io.EOF) {
		t.Errorf("ReadFrame() at end err = %v, want EOF", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	for ft, want := range map[FrameType]string{
		FrameEvent: "Event", FramePatches: "Patches", FrameControl: "Control",
		FrameError: "Error", FrameType(0x42): "Unknown",
	} {
		if got := ft.String(); got != want {
			t.Errorf("FrameType(%#x).String() = %q, want %q", uint8(ft), got, want)
		}
	}
}
