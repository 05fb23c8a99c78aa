// Package syntax supplies the parse tree the live renderer decorates: a flat,
// ordered stream of named byte spans over a document snapshot.
//
// The default Tree is backed by goldmark with the GFM table and task list
// extensions and an inline parser for ||spoiler|| spans.
package syntax
