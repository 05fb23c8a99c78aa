// Package table implements live editing of Markdown pipe tables.
//
// The package has four parts:
//   - Model parses a table's source text and applies structural edits to it
//     while preserving the exact text of rows it did not touch.
//   - Tracker maps tables in a document snapshot to Regions (byte ranges plus
//     a Model) and keeps the region under edit stable across rescans.
//   - Grid renders a Region as an editable grid and writes every change back
//     to the host buffer as one replace.
//   - Step, EntryFor and ExitOffset implement keyboard navigation between
//     cells and in or out of a table.
//
// Row indices are source-row indices throughout: row 0 is the header and
// row 1 is the separator line, which navigation skips.
package table
