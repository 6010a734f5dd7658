package colour

import (
	"strconv"
	"strings"

	"github.com/matzehuels/pixelforge/pkg/errors"
)

// ExprKind tags the variant held by an [Expr].
type ExprKind int

const (
	ExprHex ExprKind = iota
	ExprRef
	ExprPercent
	ExprCall
)

// Expr is a parsed colour expression. Exactly one group of fields is
// meaningful, selected by Kind:
//
//   - ExprHex: Hex holds the literal including its leading #
//   - ExprRef: Name holds the referenced colour without the $ prefix
//   - ExprPercent: Percent holds the numeric value (20% is 20)
//   - ExprCall: Name is the function name and Args its arguments
type Expr struct {
	Kind    ExprKind
	Hex     string
	Name    string
	Percent float64
	Args    []Expr
}

// ParseExpr parses a colour expression.
func ParseExpr(input string) (Expr, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Expr{}, errors.New(errors.ErrCodeInvalidExpression, "empty colour expression")
	}

	switch {
	case strings.HasPrefix(s, "#"):
		return Expr{Kind: ExprHex, Hex: s}, nil

	case strings.HasSuffix(s, "%"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
		if err != nil {
			return Expr{}, errors.New(errors.ErrCodeInvalidExpression, "invalid percentage %q", s)
		}
		return Expr{Kind: ExprPercent, Percent: v}, nil

	case strings.Contains(s, "("):
		if !strings.HasSuffix(s, ")") {
			return Expr{}, errors.New(errors.ErrCodeInvalidExpression, "unclosed function call: %s", s)
		}
		open := strings.IndexByte(s, '(')
		name := strings.TrimSpace(s[:open])
		if name == "" {
			return Expr{}, errors.New(errors.ErrCodeInvalidExpression, "missing function name: %s", s)
		}
		args, err := parseArgs(s[open+1 : len(s)-1])
		if err != nil {
			return Expr{}, err
		}
		return Expr{Kind: ExprCall, Name: name, Args: args}, nil
	}

	return Expr{Kind: ExprRef, Name: strings.TrimPrefix(s, "$")}, nil
}

// parseArgs splits on commas at nesting depth zero. An empty list is
// allowed; an empty argument within a list is not.
func parseArgs(s string) ([]Expr, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var (
		args  []Expr
		depth int
		start int
	)
	flush := func(part string) error {
		part = strings.TrimSpace(part)
		if part == "" {
			return errors.New(errors.ErrCodeInvalidExpression, "empty argument in %q", s)
		}
		e, err := ParseExpr(part)
		if err != nil {
			return err
		}
		args = append(args, e)
		return nil
	}

	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errors.New(errors.ErrCodeInvalidExpression, "unbalanced parentheses in %q", s)
			}
		case ',':
			if depth == 0 {
				if err := flush(s[start:i]); err != nil {
					return nil, err
				}
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errors.New(errors.ErrCodeInvalidExpression, "unbalanced parentheses in %q", s)
	}
	if err := flush(s[start:]); err != nil {
		return nil, err
	}
	return args, nil
}

// Refs returns every colour name referenced by the expression, in the
// order they appear. Duplicates are kept.
func (e Expr) Refs() []string {
	switch e.Kind {
	case ExprRef:
		return []string{e.Name}
	case ExprCall:
		var out []string
		for _, a := range e.Args {
			out = append(out, a.Refs()...)
		}
		return out
	}
	return nil
}

// String renders the expression back to source form.
func (e Expr) String() string {
	switch e.Kind {
	case ExprHex:
		return e.Hex
	case ExprRef:
		return "$" + e.Name
	case ExprPercent:
		return strconv.FormatFloat(e.Percent, 'f', -1, 64) + "%"
	case ExprCall:
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			parts[i] = a.String()
		}
		return e.Name + "(" + strings.Join(parts, ", ") + ")"
	}
	return ""
}
