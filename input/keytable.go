package input

// KeyTable maps host key encodings to event kinds.
// Bytes and sequences not listed decode as printable or control events.
type KeyTable struct {
	// One-byte keys, either host
	Single map[byte]Kind

	// Final byte of ESC [ sequences (vt host)
	CSI map[byte]Kind

	// Scan code following the 0xE0 prefix (conio host)
	Scan map[byte]Kind
}

// DefaultKeyTable returns the built-in bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Single: map[byte]Kind{
			'\r': KindEnter,
			'\n': KindEnter,
			0x08: KindBackspace,
			0x7f: KindBackspace,
			'\t': KindTab,
		},

		CSI: map[byte]Kind{
			'A': KindUp,
			'B': KindDown,
			'C': KindRight,
			'D': KindLeft,
			'H': KindHome,
			'F': KindEnd,
		},

		Scan: map[byte]Kind{
			75: KindLeft,
			77: KindRight,
			72: KindUp,
			80: KindDown,
			71: KindHome,
			79: KindEnd,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		Single: cloneKindMap(kt.Single),
		CSI:    cloneKindMap(kt.CSI),
		Scan:   cloneKindMap(kt.Scan),
	}
}

func cloneKindMap(m map[byte]Kind) map[byte]Kind {
	result := make(map[byte]Kind, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
