// Package lexer implements the script tokenizer. It works over one
// source.Unit, produces token.Token values lazily with one token of
// lookahead and never stops on malformed input: problems become Error
// tokens plus diagnostics. Only capacity failures of the shared identifier
// dictionary or string blob abort lexing.
package lexer
