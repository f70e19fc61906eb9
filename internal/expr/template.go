package expr

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// piece is either literal text or a conversion slot such as "%-8s".
type piece struct {
	text string
	verb string
}

func (p piece) isSlot() bool {
	return p.verb != ""
}

// parseTemplate splits a printf-style template into literals and slots.
// Only string conversions are accepted since every argument is rendered to
// text before substitution.
func parseTemplate(s string) ([]piece, error) {
	var pieces []piece
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			pieces = append(pieces, piece{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		c := s[i]
		if c != '%' {
			lit.WriteByte(c)
			i++
			continue
		}

		if i+1 >= len(s) {
			return nil, fmt.Errorf("%w: incomplete format at end of template", ErrFormatMismatch)
		}
		if s[i+1] == '%' {
			lit.WriteByte('%')
			i += 2
			continue
		}
		if s[i+1] == '(' {
			return nil, fmt.Errorf("%w: mapping keys are not supported", ErrFormatMismatch)
		}

		j := i + 1
		for j < len(s) && strings.IndexByte("-+# 0", s[j]) >= 0 {
			j++
		}
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j < len(s) && s[j] == '.' {
			j++
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
		}
		if j >= len(s) {
			return nil, fmt.Errorf("%w: incomplete format %q", ErrFormatMismatch, s[i:])
		}

		switch s[j] {
		case 's', 'v', 'q':
		default:
			r, _ := utf8.DecodeRuneInString(s[j:])
			return nil, fmt.Errorf("%w: unsupported format character %q in %q", ErrFormatMismatch, r, s[i:j+1])
		}

		flush()
		pieces = append(pieces, piece{verb: s[i+1 : j+1]})
		i = j + 1
	}
	flush()

	return pieces, nil
}

func countSlots(pieces []piece) int {
	n := 0
	for _, p := range pieces {
		if p.isSlot() {
			n++
		}
	}
	return n
}

func checkArity(slots, args int) error {
	switch {
	case slots > args:
		return fmt.Errorf("%w: not enough arguments (template has %d slots, got %d)", ErrFormatMismatch, slots, args)
	case slots < args:
		return fmt.Errorf("%w: not all arguments converted (template has %d slots, got %d)", ErrFormatMismatch, slots, args)
	}
	return nil
}

// slotVerbs returns the conversion of every slot, in order.
func slotVerbs(pieces []piece) []string {
	var verbs []string
	for _, p := range pieces {
		if p.isSlot() {
			verbs = append(verbs, p.verb)
		}
	}
	return verbs
}

// formatArg applies a slot's conversion to plain text.
func formatArg(verb, arg string) string {
	if verb == "s" || verb == "v" {
		return arg
	}
	return fmt.Sprintf("%"+verb, arg)
}

// substitute fills the slots of pieces with already formatted args, in order.
func substitute(pieces []piece, args []string) (string, error) {
	if err := checkArity(countSlots(pieces), len(args)); err != nil {
		return "", err
	}

	var sb strings.Builder
	next := 0
	for _, p := range pieces {
		if !p.isSlot() {
			sb.WriteString(p.text)
			continue
		}
		sb.WriteString(args[next])
		next++
	}
	return sb.String(), nil
}
