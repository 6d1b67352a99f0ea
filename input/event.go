package input

import "fmt"

// Kind classifies a decoded key press
type Kind uint8

const (
	KindPrintable Kind = iota
	KindEnter
	KindBackspace
	KindTab
	KindLeft
	KindRight
	KindUp
	KindDown
	KindHome
	KindEnd
	KindControl
)

// kindNames maps kinds to log-friendly names
var kindNames = map[Kind]string{
	KindPrintable: "printable",
	KindEnter:     "enter",
	KindBackspace: "backspace",
	KindTab:       "tab",
	KindLeft:      "left",
	KindRight:     "right",
	KindUp:        "up",
	KindDown:      "down",
	KindHome:      "home",
	KindEnd:       "end",
	KindControl:   "control",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Event is one logical key press
type Event struct {
	Kind  Kind
	Bytes []byte // raw run for KindPrintable, 1-4 bytes
	Byte  byte   // raw byte for KindControl
}

// Printable builds a printable event over a copy of run
func Printable(run ...byte) Event {
	b := make([]byte, len(run))
	copy(b, run)
	return Event{Kind: KindPrintable, Bytes: b}
}

// Control builds an unrecognized control event
func Control(b byte) Event {
	return Event{Kind: KindControl, Byte: b}
}

// Key builds a payload-free event
func Key(k Kind) Event {
	return Event{Kind: k}
}

func (e Event) String() string {
	switch e.Kind {
	case KindPrintable:
		return fmt.Sprintf("printable(% x)", e.Bytes)
	case KindControl:
		return fmt.Sprintf("control(%#02x)", e.Byte)
	}
	return e.Kind.String()
}
