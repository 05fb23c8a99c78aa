// Package editor provides a Bubble Tea Markdown editor component backed by
// the buffer package.
//
// The buffer text is the only source of truth. On every change the editor
// rescans table regions through table.Tracker and draws each one as an
// editable table.Grid in place of its source lines. Rules, quote marks,
// task checkboxes and spoilers are decorated through virtual text and
// highlight spans, which never touch the document.
package editor
