package protocol

import (
	"errors"
	"fmt"
)

// ErrUnknownOp is returned when decoding an unrecognised op kind.
var ErrUnknownOp = errors.New("protocol: unknown op")

// OpKind identifies a tree-construction operation.
type OpKind uint8

const (
	OpCreateElement OpKind = 0x01 // ID, Tag
	OpCreateText    OpKind = 0x02 // ID, Text
	OpSetAttr       OpKind = 0x03 // ID, Name, Value
	OpRemoveAttr    OpKind = 0x04 // ID, Name
	OpSetText       OpKind = 0x05 // ID, Text
	OpListen        OpKind = 0x06 // ID, Name (event type)
	OpInsert        OpKind = 0x07 // Parent, ID, Ref (0 appends)
	OpRemove        OpKind = 0x08 // Parent, ID
	OpClear         OpKind = 0x09 // Parent
)

// String returns the string representation of the op kind.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetText:
		return "SetText"
	case OpListen:
		return "Listen"
	case OpInsert:
		return "Insert"
	case OpRemove:
		return "Remove"
	case OpClear:
		return "Clear"
	default:
		return fmt.Sprintf("Op(%d)", uint8(k))
	}
}

// Op is one tree-construction operation. Which fields are used depends on
// Kind; unused fields are zero.
type Op struct {
	Kind   OpKind
	ID     uint64 // node created, written or moved
	Parent uint64 // Insert, Remove, Clear
	Ref    uint64 // Insert: sibling to insert before, 0 appends

	Tag   string // CreateElement
	Name  string // SetAttr, RemoveAttr, Listen
	Value string // SetAttr; text for CreateText and SetText
}

// Constructors for each op kind.

func CreateElement(id uint64, tag string) Op {
	return Op{Kind: OpCreateElement, ID: id, Tag: tag}
}

func CreateText(id uint64, text string) Op {
	return Op{Kind: OpCreateText, ID: id, Value: text}
}

func SetAttr(id uint64, name, value string) Op {
	return Op{Kind: OpSetAttr, ID: id, Name: name, Value: value}
}

func RemoveAttr(id uint64, name string) Op {
	return Op{Kind: OpRemoveAttr, ID: id, Name: name}
}

func SetText(id uint64, text string) Op {
	return Op{Kind: OpSetText, ID: id, Value: text}
}

func Listen(id uint64, event string) Op {
	return Op{Kind: OpListen, ID: id, Name: event}
}

func Insert(parent, id, ref uint64) Op {
	return Op{Kind: OpInsert, Parent: parent, ID: id, Ref: ref}
}

func Remove(parent, id uint64) Op {
	return Op{Kind: OpRemove, Parent: parent, ID: id}
}

func Clear(parent uint64) Op {
	return Op{Kind: OpClear, Parent: parent}
}

// EncodeOps encodes ops as a varint count followed by each op.
func EncodeOps(ops []Op) []byte {
	e := NewEncoderWithCap(16 * (len(ops) + 1))
	EncodeOpsTo(e, ops)
	return e.Bytes()
}

// EncodeOpsTo encodes ops using the provided encoder.
func EncodeOpsTo(e *Encoder, ops []Op) {
	e.WriteUvarint(uint64(len(ops)))
	for i := range ops {
		encodeOp(e, &ops[i])
	}
}

func encodeOp(e *Encoder, op *Op) {
	e.WriteByte(byte(op.Kind))
	switch op.Kind {
	case OpCreateElement:
		e.WriteUvarint(op.ID)
		e.WriteString(op.Tag)
	case OpCreateText, OpSetText:
		e.WriteUvarint(op.ID)
		e.WriteString(op.Value)
	case OpSetAttr:
		e.WriteUvarint(op.ID)
		e.WriteString(op.Name)
		e.WriteString(op.Value)
	case OpRemoveAttr, OpListen:
		e.WriteUvarint(op.ID)
		e.WriteString(op.Name)
	case OpInsert:
		e.WriteUvarint(op.Parent)
		e.WriteUvarint(op.ID)
		e.WriteUvarint(op.Ref)
	case OpRemove:
		e.WriteUvarint(op.Parent)
		e.WriteUvarint(op.ID)
	case OpClear:
		e.WriteUvarint(op.Parent)
	}
}

// DecodeOps decodes an ops payload.
func DecodeOps(data []byte) ([]Op, error) {
	return DecodeOpsFrom(NewDecoder(data))
}

// DecodeOpsFrom decodes ops from a decoder.
func DecodeOpsFrom(d *Decoder) ([]Op, error) {
	count, err := d.ReadCount()
	if err != nil {
		return nil, err
	}
	ops := make([]Op, count)
	for i := range ops {
		if err := decodeOp(d, &ops[i]); err != nil {
			return nil, fmt.Errorf("protocol: op %d: %w", i, err)
		}
	}
	return ops, nil
}

func decodeOp(d *Decoder, op *Op) error {
	b, err := d.ReadByte()
	if err != nil {
		return err
	}
	op.Kind = OpKind(b)

	switch op.Kind {
	case OpCreateElement:
		if op.ID, err = d.ReadUvarint(); err != nil {
			return err
		}
		op.Tag, err = d.ReadString()
	case OpCreateText, OpSetText:
		if op.ID, err = d.ReadUvarint(); err != nil {
			return err
		}
		op.Value, err = d.ReadString()
	case OpSetAttr:
		if op.ID, err = d.ReadUvarint(); err != nil {
			return err
		}
		if op.Name, err = d.ReadString(); err != nil {
			return err
		}
		op.Value, err = d.ReadString()
	case OpRemoveAttr, OpListen:
		if op.ID, err = d.ReadUvarint(); err != nil {
			return err
		}
		op.Name, err = d.ReadString()
	case OpInsert:
		if op.Parent, err = d.ReadUvarint(); err != nil {
			return err
		}
		if op.ID, err = d.ReadUvarint(); err != nil {
			return err
		}
		op.Ref, err = d.ReadUvarint()
	case OpRemove:
		if op.Parent, err = d.ReadUvarint(); err != nil {
			return err
		}
		op.ID, err = d.ReadUvarint()
	case OpClear:
		op.Parent, err = d.ReadUvarint()
	default:
		return fmt.Errorf("%w: 0x%02x", ErrUnknownOp, b)
	}
	return err
}
