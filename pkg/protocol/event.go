package protocol

// Event is a DOM event forwarded by the client.
type Event struct {
	Target uint64 // server node id of the event target
	Type   string // DOM event type, e.g. "click"
}

// EncodeEvent encodes an Event payload.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoderWithCap(16)
	e.WriteUvarint(ev.Target)
	e.WriteString(ev.Type)
	return e.Bytes()
}

// DecodeEvent decodes an Event payload.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	target, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	typ, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &Event{Target: target, Type: typ}, nil
}

// Hello is the first frame a session sends.
type Hello struct {
	Session string // session id
	Root    uint64 // node id of the mount container
}

// EncodeHello encodes a Hello payload.
func EncodeHello(h *Hello) []byte {
	e := NewEncoderWithCap(48)
	e.WriteString(h.Session)
	e.WriteUvarint(h.Root)
	return e.Bytes()
}

// DecodeHello decodes a Hello payload.
func DecodeHello(data []byte) (*Hello, error) {
	d := NewDecoder(data)
	session, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	root, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	return &Hello{Session: session, Root: root}, nil
}
