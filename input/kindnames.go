package input

import "strings"

// kindUnbound is the "none" sentinel in key overrides; merging it removes the binding
const kindUnbound Kind = 0xff

// bindableKinds maps config names to the kinds a key can be bound to
var bindableKinds = map[string]Kind{
	"none":      kindUnbound,
	"enter":     KindEnter,
	"backspace": KindBackspace,
	"tab":       KindTab,
	"left":      KindLeft,
	"right":     KindRight,
	"up":        KindUp,
	"down":      KindDown,
	"home":      KindHome,
	"end":       KindEnd,
}

// KindByName resolves a bindable kind name, not case-sensitive.
// Printable and control are produced by the decoder itself and cannot be bound.
func KindByName(name string) (Kind, bool) {
	k, ok := bindableKinds[strings.ToLower(strings.TrimSpace(name))]
	if !ok || k == kindUnbound {
		return 0, false
	}
	return k, true
}
