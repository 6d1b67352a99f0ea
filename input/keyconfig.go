package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyConfig is the [keys] config section: key encoding -> kind name.
// Single keys are one character or a 0xNN byte, csi keys one final character,
// scan keys a decimal or 0xNN scan code. The kind "none" removes a default binding.
type KeyConfig struct {
	Single map[string]string `toml:"single"`
	CSI    map[string]string `toml:"csi"`
	Scan   map[string]string `toml:"scan"`
}

// LoadKeyConfig parses standalone TOML keymap data into a sparse override table
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var kc KeyConfig
	if _, err := toml.Decode(string(data), &kc); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	return kc.Table()
}

// Empty reports whether no override is configured
func (kc KeyConfig) Empty() bool {
	return len(kc.Single) == 0 && len(kc.CSI) == 0 && len(kc.Scan) == 0
}

// Table resolves the section into a sparse override table.
// Returns error on unknown kind names or invalid key encodings.
func (kc KeyConfig) Table() (*KeyTable, error) {
	single, err := parseSection("single", kc.Single, resolveSingle)
	if err != nil {
		return nil, err
	}
	csi, err := parseSection("csi", kc.CSI, resolveCSI)
	if err != nil {
		return nil, err
	}
	scan, err := parseSection("scan", kc.Scan, resolveScan)
	if err != nil {
		return nil, err
	}
	return &KeyTable{Single: single, CSI: csi, Scan: scan}, nil
}

func parseSection(section string, data map[string]string, resolve func(string) (byte, error)) (map[byte]Kind, error) {
	if len(data) == 0 {
		return nil, nil
	}
	result := make(map[byte]Kind, len(data))
	for keyStr, name := range data {
		b, err := resolve(keyStr)
		if err != nil {
			return nil, fmt.Errorf("[keys.%s] key %q: %w", section, keyStr, err)
		}
		k, ok := bindableKinds[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("[keys.%s] key %q: unknown kind %q", section, keyStr, name)
		}
		result[b] = k
	}
	return result, nil
}

// resolveSingle accepts one ASCII character or a 0xNN byte below 0x80
func resolveSingle(s string) (byte, error) {
	if len(s) == 1 && s[0] < 0x80 {
		return s[0], nil
	}
	b, err := parseByte(s, true)
	if err != nil {
		return 0, err
	}
	if b >= 0x80 {
		return 0, fmt.Errorf("byte %#02x is a glyph lead byte", b)
	}
	return b, nil
}

// resolveCSI accepts one printable final character
func resolveCSI(s string) (byte, error) {
	if len(s) != 1 || s[0] < 0x20 || s[0] > 0x7e {
		return 0, fmt.Errorf("expected one printable character")
	}
	return s[0], nil
}

func resolveScan(s string) (byte, error) {
	return parseByte(s, false)
}

// parseByte parses 0xNN, or decimal unless hexOnly
func parseByte(s string, hexOnly bool) (byte, error) {
	lower := strings.ToLower(s)
	if rest, ok := strings.CutPrefix(lower, "0x"); ok {
		v, err := strconv.ParseUint(rest, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid byte %q", s)
		}
		return byte(v), nil
	}
	if hexOnly {
		return 0, fmt.Errorf("expected single character or 0xNN byte")
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q", s)
	}
	return byte(v), nil
}

// MergeKeyTable returns a new table with base values overridden by non-nil override maps.
// Override entries bound to "none" delete the key from the result.
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}
	mergeKindMap(result.Single, override.Single)
	mergeKindMap(result.CSI, override.CSI)
	mergeKindMap(result.Scan, override.Scan)
	return result
}

func mergeKindMap(base, override map[byte]Kind) {
	for k, v := range override {
		if v == kindUnbound {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
