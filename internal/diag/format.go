package diag

import (
	"fmt"
	"strings"
)

// Format substitutes %0..%9 in template with args. "%%" is a literal percent.
// A placeholder without an argument or a stray '%' is an error.
func Format(template string, args []Arg) (string, error) {
	if !strings.Contains(template, "%") {
		return template, nil
	}
	var b strings.Builder
	b.Grow(len(template) + 16*len(args))
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(template) {
			return "", fmt.Errorf("trailing %% in %q", template)
		}
		i++
		next := template[i]
		switch {
		case next == '%':
			b.WriteByte('%')
		case next >= '0' && next <= '9':
			n := int(next - '0')
			if n >= len(args) {
				return "", fmt.Errorf("placeholder %%%d without argument in %q", n, template)
			}
			b.WriteString(args[n].String())
		default:
			return "", fmt.Errorf("bad placeholder %%%c in %q", next, template)
		}
	}
	return b.String(), nil
}
