// Package tui provides immediate-mode composition primitives for the
// terminal package.
//
// Core abstraction is Region, a rectangular window into a cell buffer.
// All drawing operations are relative to region bounds with automatic
// clipping, and text placement is display-width aware (wide runes
// occupy two cells).
//
// Design principles:
//   - Immediate mode: no retained widget state, the app owns the
//     render loop
//   - Region is a small value type; splitting and nesting allocate
//     nothing
//   - Text helpers measure display columns, not runes or bytes
package tui
