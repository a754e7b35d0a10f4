// Package ident holds the identifier dictionary of the front end.
//
// Every name the tokenizer resolves is interned exactly once and receives a
// stable Slot. A slot carries a tagged payload: it is Unresolved for plain
// identifiers, Keyword(id) once a keyword was recognised, or Type(ref) for
// built-in types registered before any user text is read.
package ident
