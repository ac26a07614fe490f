package protocol

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPatchesEncodeDecode(t *testing.T) {
	pf := &PatchesFrame{
		Seq: 42,
		Patches: []Patch{
			NewAddClassPatch("i0", "dragging"),
			NewRemoveClassPatch("i2", "dragover"),
			NewSetAttrPatch("i1", "draggable", "true"),
			NewRemoveAttrPatch("i1", "draggable"),
			NewSetStylePatch("i3", "transform", "translate(0px, 24px)"),
			NewRemoveStylePatch("i3", "transition"),
			NewReorderPatch("list", []string{"i1", "i2", "i0"}),
			NewReorderPatch("list", []string{}),
		},
	}

	got, err := DecodePatches(EncodePatches(pf))
	if err != nil {
		t.Fatalf("DecodePatches() error = %v", err)
	}
	if diff := cmp.Diff(pf, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePatchesErrors(t *testing.T) {
	data := EncodePatches(&PatchesFrame{Seq: 1, Patches: []Patch{
		NewSetStylePatch("i0", "transform", "none"),
	}})
	for n := 0; n < len(data); n++ {
		if _, err := DecodePatches(data[:n]); !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("DecodePatches(truncated to %d) err = %v, want ErrUnexpectedEOF", n, err)
		}
	}

	bad := EncodePatches(&PatchesFrame{Patches: []Patch{{Op: PatchOp(0x7F), HID: "i0"}}})
	if _, err := DecodePatches(bad); !errors.Is(err, ErrInvalidPatchOp) {
		t.Errorf("DecodePatches(unknown op) err = %v, want ErrInvalidPatchOp", err)
	}
}

func TestPatchOpString(t *testing.T) {
	for op, want := range map[PatchOp]string{
		PatchReorder: "Reorder", PatchAddClass: "AddClass", PatchSetStyle: "SetStyle",
		PatchOp(0xEE): "Unknown",
	} {
		if got := op.String(); got != want {
			t.Errorf("PatchOp(%#x).String() = %q, want %q", uint8(op), got, want)
		}
	}
}
