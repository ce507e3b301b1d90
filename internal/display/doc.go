// Package display implements the live viewer count screen.
//
// The display polls the backend for the current Twitch viewer count on
// a fixed interval and renders it as large block digits, shrinking the
// glyph size until the number fits the available terminal area.
package display
