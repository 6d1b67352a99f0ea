// Package terminal provides the raw byte source and ANSI screen sink for the console.
//
// Features:
//   - Non-canonical, non-echo input with per-read or per-session scope
//   - Two host encodings (vt and conio) selected once per console
//   - 24-bit, 256-color and 16-color foreground encodings
//   - Authoritative cursor query (DSR) on unix ttys
//   - Clean terminal restoration on panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
package terminal
