package input

import (
	"testing"

	"github.com/lixenwraith/tconsole/terminal"
)

func TestLoadKeyConfig(t *testing.T) {
	data := []byte(`
[single]
"0x15" = "backspace"
"\t" = "none"

[csi]
"1" = "home"

[scan]
"83" = "backspace"
"0x4B" = "right"
`)
	override, err := LoadKeyConfig(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	kt := MergeKeyTable(DefaultKeyTable(), override)

	tests := []struct {
		name     string
		table    map[byte]Kind
		key      byte
		expected Kind
		present  bool
	}{
		{"Single hex byte", kt.Single, 0x15, KindBackspace, true},
		{"Single unbound", kt.Single, '\t', 0, false},
		{"Single default kept", kt.Single, '\r', KindEnter, true},
		{"CSI added", kt.CSI, '1', KindHome, true},
		{"CSI default kept", kt.CSI, 'A', KindUp, true},
		{"Scan decimal", kt.Scan, 83, KindBackspace, true},
		{"Scan hex overrides default", kt.Scan, 75, KindRight, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.table[tt.key]
			if ok != tt.present {
				t.Fatalf("Expected present=%v, got %v", tt.present, ok)
			}
			if ok && got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMergeKeepsBase(t *testing.T) {
	base := DefaultKeyTable()
	override := &KeyTable{CSI: map[byte]Kind{'A': kindUnbound}}
	merged := MergeKeyTable(base, override)

	if _, ok := merged.CSI['A']; ok {
		t.Error("Expected 'A' unbound in merged table")
	}
	if base.CSI['A'] != KindUp {
		t.Error("Expected base table unchanged")
	}
	if merged := MergeKeyTable(base, nil); len(merged.CSI) != len(base.CSI) {
		t.Error("Expected nil override to copy base")
	}
}

func TestKeyConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		kc   KeyConfig
	}{
		{"Unknown kind", KeyConfig{CSI: map[string]string{"A": "jump"}}},
		{"Printable not bindable", KeyConfig{Single: map[string]string{"x": "printable"}}},
		{"CSI too long", KeyConfig{CSI: map[string]string{"1~": "home"}}},
		{"Single glyph lead", KeyConfig{Single: map[string]string{"0x81": "enter"}}},
		{"Single decimal", KeyConfig{Single: map[string]string{"21": "enter"}}},
		{"Scan out of range", KeyConfig{Scan: map[string]string{"300": "left"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.kc.Table(); err == nil {
				t.Error("Expected error")
			}
		})
	}

	if _, err := LoadKeyConfig([]byte("[csi\n")); err == nil {
		t.Error("Expected parse error")
	}
}

func TestKindByName(t *testing.T) {
	if k, ok := KindByName(" Home "); !ok || k != KindHome {
		t.Errorf("Expected home, got %v %v", k, ok)
	}
	if _, ok := KindByName("none"); ok {
		t.Error("Expected none not to resolve to a kind")
	}
	if _, ok := KindByName("control"); ok {
		t.Error("Expected control not to be bindable")
	}
}

func TestDecoderUsesKeyTable(t *testing.T) {
	override := &KeyTable{
		Single: map[byte]Kind{0x15: KindBackspace, '\t': kindUnbound},
		CSI:    map[byte]Kind{'A': KindHome},
	}
	src := &scriptedSource{data: []byte{0x15, '\t', 0x1b, '[', 'A'}}
	d := New(terminal.ProfileFor(terminal.HostVT), src, Options{Keys: MergeKeyTable(DefaultKeyTable(), override)})

	expected := []Event{Key(KindBackspace), Control('\t'), Key(KindHome)}
	for i, want := range expected {
		got, err := d.Next()
		if err != nil {
			t.Fatalf("event %d: unexpected error: %v", i, err)
		}
		if got.String() != want.String() {
			t.Errorf("event %d: expected %v, got %v", i, want, got)
		}
	}
}
