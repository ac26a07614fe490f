package protocol

import "errors"

// PatchOp is the type of patch operation.
type PatchOp uint8

// Patch operation constants.
const (
	PatchSetAttr     PatchOp = 0x02 // Set attribute
	PatchRemoveAttr  PatchOp = 0x03 // Remove attribute
	PatchReorder     PatchOp = 0x06 // Reorder the children of a container
	PatchAddClass    PatchOp = 0x10 // Add CSS class
	PatchRemoveClass PatchOp = 0x11 // Remove CSS class
	PatchSetStyle    PatchOp = 0x13 // Set style property
	PatchRemoveStyle PatchOp = 0x14 // Remove style property
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	switch op {
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchReorder:
		return "Reorder"
	case PatchAddClass:
		return "AddClass"
	case PatchRemoveClass:
		return "RemoveClass"
	case PatchSetStyle:
		return "SetStyle"
	case PatchRemoveStyle:
		return "RemoveStyle"
	default:
		return "Unknown"
	}
}

// ErrInvalidPatchOp is returned when decoding an unknown operation.
var ErrInvalidPatchOp = errors.New("protocol: invalid patch operation")

// Patch is a single DOM operation.
type Patch struct {
	Op       PatchOp
	HID      string   // Target element, or the container for Reorder
	Key      string   // Attribute or style property
	Value    string   // Attribute, style or class value
	Children []string // New child order for Reorder
}

// NewAddClassPatch creates an AddClass patch.
func NewAddClassPatch(hid, class string) Patch {
	return Patch{Op: PatchAddClass, HID: hid, Value: class}
}

// NewRemoveClassPatch creates a RemoveClass patch.
func NewRemoveClassPatch(hid, class string) Patch {
	return Patch{Op: PatchRemoveClass, HID: hid, Value: class}
}

// NewSetAttrPatch creates a SetAttr patch.
func NewSetAttrPatch(hid, key, value string) Patch {
	return Patch{Op: PatchSetAttr, HID: hid, Key: key, Value: value}
}

// NewRemoveAttrPatch creates a RemoveAttr patch.
func NewRemoveAttrPatch(hid, key string) Patch {
	return Patch{Op: PatchRemoveAttr, HID: hid, Key: key}
}

// NewSetStylePatch creates a SetStyle patch.
func NewSetStylePatch(hid, property, value string) Patch {
	return Patch{Op: PatchSetStyle, HID: hid, Key: property, Value: value}
}

// NewRemoveStylePatch creates a RemoveStyle patch.
func NewRemoveStylePatch(hid, property string) Patch {
	return Patch{Op: PatchRemoveStyle, HID: hid, Key: property}
}

// NewReorderPatch creates a Reorder patch for container.
func NewReorderPatch(container string, children []string) Patch {
	return Patch{Op: PatchReorder, HID: container, Children: children}
}

// PatchesFrame is a batch of patches with a sequence number.
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// EncodePatches encodes a patches frame to bytes.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a patches frame using the provided encoder.
func EncodePatchesTo(e *Encoder, pf *PatchesFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Op))
	e.WriteString(p.HID)

	switch p.Op {
	case PatchSetAttr, PatchSetStyle:
		e.WriteString(p.Key)
		e.WriteString(p.Value)
	case PatchRemoveAttr, PatchRemoveStyle:
		e.WriteString(p.Key)
	case PatchAddClass, PatchRemoveClass:
		e.WriteString(p.Value)
	case PatchReorder:
		e.WriteUvarint(uint64(len(p.Children)))
		for _, hid := range p.Children {
			e.WriteString(hid)
		}
	}
}

// DecodePatches decodes a patches frame from bytes.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	return DecodePatchesFrom(NewDecoder(data))
}

// DecodePatchesFrom decodes a patches frame from a decoder.
func DecodePatchesFrom(d *Decoder) (*PatchesFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	pf := &PatchesFrame{Seq: seq, Patches: make([]Patch, count)}
	for i := range pf.Patches {
		if err := decodePatch(d, &pf.Patches[i]); err != nil {
			return nil, err
		}
	}
	return pf, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = PatchOp(op)
	if p.HID, err = d.ReadString(); err != nil {
		return err
	}

	switch p.Op {
	case PatchSetAttr, PatchSetStyle:
		if p.Key, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()
		return err
	case PatchRemoveAttr, PatchRemoveStyle:
		p.Key, err = d.ReadString()
		return err
	case PatchAddClass, PatchRemoveClass:
		p.Value, err = d.ReadString()
		return err
	case PatchReorder:
		count, err := d.ReadCollectionCount()
		if err != nil {
			return err
		}
		p.Children = make([]string, count)
		for i := range p.Children {
			if p.Children[i], err = d.ReadString(); err != nil {
				return err
			}
		}
		return nil
	default:
		return ErrInvalidPatchOp
	}
}
