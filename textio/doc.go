// Package textio is the line-oriented front end of the catalogue.
//
// Input is a count followed by that many base lines, then a count followed
// by that many stat lines:
//
//	2
//	Stop A: 55.61, 37.20, 3900m to B
//	Bus 1: A - B
//	1
//	Bus 1
//
// A bus written with ">" separators is a roundtrip; with "-" it runs to the
// last stop and back.
package textio
