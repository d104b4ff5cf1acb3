package fvar

import (
	"fmt"
	"strings"
)

// String prints depth(D)(c0,c1,...) with nested coefficients in the same
// form. A depth-0 series prints its scalar.
func (s Series[T]) String() string {
	var b strings.Builder
	s.format(&b)
	return b.String()
}

func (s Series[T]) format(b *strings.Builder) {
	if s.c == nil {
		b.WriteString(s.x.String())
		return
	}
	fmt.Fprintf(b, "depth(%d)(", s.Depth())
	for i, c := range s.c {
		if i > 0 {
			b.WriteByte(',')
		}
		c.format(b)
	}
	b.WriteByte(')')
}
