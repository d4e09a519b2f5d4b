// Package terminal provides direct ANSI terminal control for the
// dashboard runtime: raw-mode lifecycle, timeout-bounded key decoding,
// and cell-rectangle output.
//
// Features:
//   - Raw (non-canonical, no-echo) input with guaranteed restoration
//   - One key event per poll, with lone-ESC vs escape-sequence
//     disambiguation on byte-stream ttys
//   - True color (24-bit) and 256-color palette output
//   - Coalesced SGR emission for cell-rectangle blits
//   - Console-API input path on Windows, termios path on Unix
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with
// xterm-compatible terminals, and the Windows console with VT output.
package terminal
