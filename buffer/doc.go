// Package buffer implements the pure, grapheme-accurate document model that
// backs the live Markdown editor.
//
// Coordinates are 0-based (Row, GraphemeCol). Ranges are half-open selections
// in document coordinates: [Start, End). The table layer addresses the same
// document by byte offsets; see SliceText and ReplaceText.
package buffer
