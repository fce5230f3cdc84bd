package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/fennwick/torq/pkg/inventory"
	"github.com/fennwick/torq/pkg/tool"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms Torq Lisp source before passing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal),
//     avoiding the need to register keyword symbols as globals.
//  2. ; line comments -> // comments (zygomys uses //).
//  3. Kebab-case to underscore outside keywords: max-size -> max_size,
//     since zygomys reads a hyphen as subtraction.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Copy double-quoted string literals untouched.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword". := stays untouched.
		if b[i] == ':' && i+1 < len(b) && b[i+1] != '=' && isLetter(b[i+1]) {
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, kwPrefix...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j
			continue
		}
		// Kebab identifiers: hyphen between identifier characters.
		if b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// isKW checks if a Sexp is a preprocessed keyword string, returning the
// keyword name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// kwFloat reads an optional keyword number, leaving dst untouched when
// the keyword is absent.
func kwFloat(pa kwArgs, name string, dst *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the Torq DSL builtins into a zygomys
// environment. The builtins populate the provided Inventory during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() first so that
// :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, inv *inventory.Inventory) {

	// -----------------------------------------------------------------------
	// (nut "m10" :size 10)
	// -----------------------------------------------------------------------
	env.AddFunction("nut", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("nut requires a name argument")
		}
		nutName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("nut: name: %w", err)
		}

		n := tool.Nut{}
		if err := kwFloat(pa, "size", &n.Size); err != nil {
			return zygo.SexpNull, fmt.Errorf("nut: %w", err)
		}
		if n.Size == 0 {
			return zygo.SexpNull, fmt.Errorf("nut %q requires :size", nutName)
		}

		if err := inv.AddNut(nutName, n); err != nil {
			return zygo.SexpNull, fmt.Errorf("nut: %w", err)
		}
		return &zygo.SexpStr{S: nutName}, nil
	})

	// -----------------------------------------------------------------------
	// (spanner "ten" :size 10 :length 160 :mass 0.3)
	// -----------------------------------------------------------------------
	env.AddFunction("spanner", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("spanner requires a name argument")
		}
		spannerName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("spanner: name: %w", err)
		}

		s := tool.SingleEnded{}
		if err := kwFloat(pa, "size", &s.Size); err != nil {
			return zygo.SexpNull, fmt.Errorf("spanner: %w", err)
		}
		if err := kwFloat(pa, "length", &s.Length); err != nil {
			return zygo.SexpNull, fmt.Errorf("spanner: %w", err)
		}
		if err := kwFloat(pa, "mass", &s.Mass); err != nil {
			return zygo.SexpNull, fmt.Errorf("spanner: %w", err)
		}
		if s.Size == 0 {
			return zygo.SexpNull, fmt.Errorf("spanner %q requires :size", spannerName)
		}

		if err := inv.AddSpanner(spannerName, s); err != nil {
			return zygo.SexpNull, fmt.Errorf("spanner: %w", err)
		}
		return &zygo.SexpStr{S: spannerName}, nil
	})

	// -----------------------------------------------------------------------
	// (adjustable "shifter" :max-size 24 :length 250 :mass 0.6)
	// -----------------------------------------------------------------------
	env.AddFunction("adjustable", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("adjustable requires a name argument")
		}
		spannerName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("adjustable: name: %w", err)
		}

		s := tool.Adjustable{}
		if err := kwFloat(pa, "max-size", &s.MaxSize); err != nil {
			return zygo.SexpNull, fmt.Errorf("adjustable: %w", err)
		}
		if err := kwFloat(pa, "length", &s.Length); err != nil {
			return zygo.SexpNull, fmt.Errorf("adjustable: %w", err)
		}
		if err := kwFloat(pa, "mass", &s.Mass); err != nil {
			return zygo.SexpNull, fmt.Errorf("adjustable: %w", err)
		}
		if s.MaxSize == 0 {
			return zygo.SexpNull, fmt.Errorf("adjustable %q requires :max-size", spannerName)
		}

		if err := inv.AddSpanner(spannerName, s); err != nil {
			return zygo.SexpNull, fmt.Errorf("adjustable: %w", err)
		}
		return &zygo.SexpStr{S: spannerName}, nil
	})

	// -----------------------------------------------------------------------
	// (fits "ten" "m10") -> bool
	// -----------------------------------------------------------------------
	env.AddFunction("fits", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("fits requires a spanner name and a nut name")
		}
		spannerName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fits: spanner: %w", err)
		}
		nutName, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fits: nut: %w", err)
		}

		s, ok := inv.Spanner(spannerName)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("fits: no spanner named %q", spannerName)
		}
		n, ok := inv.Nut(nutName)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("fits: no nut named %q", nutName)
		}

		return &zygo.SexpBool{Val: tool.Fits(s, n)}, nil
	})
}
