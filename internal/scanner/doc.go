// Package scanner decides whether a buffer of source lines is complete
// enough to be worth compiling. It strips double-quoted string literals and
// line comments, then counts parenthesis and brace depth over what remains.
//
// This is a heuristic, not a parser. Text such as ")(}{" has zero net depth
// and is reported as balanced even though no compiler will accept it.
package scanner
