// Package compile owns the units of one compilation: the unit table, the
// queue of top-level sources, the include stack and the tokenizer of the
// active unit. A Context is confined to one goroutine; independent
// contexts share nothing.
package compile
