// Package mapper aligns the headers extracted from a document with the
// columns a caller asked for.
//
// The local heuristic ([MapColumns]) is always available: it normalizes
// both sides and scores exact matches, substring containment, and
// alias-group hits. An optional semantic collaborator ([Semantic], or any
// [Mapper]) can be consulted first; every one of its failures falls back
// to the heuristic, so extraction never fails because the collaborator is
// unavailable.
//
// After mapping, [RefineIDColumns] can repair weak ID-column choices by
// classifying cell content, and [Project] restricts a table to the
// desired columns. [DropHeaderRows] removes stray repeated header rows
// from the top of the projected table.
package mapper
