package engine

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	varPlaceholder = regexp.MustCompile(`@([^@]+)@`)
	colPlaceholder = regexp.MustCompile(`#([^#]+)#`)
	decimalComma   = regexp.MustCompile(`(\d),(\d)`)
	conditionalKw  = regexp.MustCompile(`(?i)\b(if|else)\b`)

	// One if/else-if/else branch with a braced return. Conditions and return
	// expressions are captured verbatim.
	branchPattern = regexp.MustCompile(`(?is)(if|else\s+if|else)\s*(?:\(([^)]*)\))?\s*\{\s*return\s*([^;{}]+?)\s*;?\s*\}`)
)

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// substitutePlaceholders replaces @name@ with the named global variable and
// #name# with the row's soil value, both coerced to numbers (0 when absent or
// non-numeric) so the compiled expression is always arithmetic.
func substitutePlaceholders(src string, vars map[string]float64, soil map[string]string) string {
	out := varPlaceholder.ReplaceAllStringFunc(src, func(m string) string {
		key := strings.TrimSpace(m[1 : len(m)-1])
		return formatNumber(vars[key])
	})
	out = colPlaceholder.ReplaceAllStringFunc(out, func(m string) string {
		key := strings.TrimSpace(m[1 : len(m)-1])
		n, _ := ToNumber(soil[key])
		return formatNumber(n)
	})
	return out
}

// rewriteConditional converts a chain of `if (cond) { return X }` /
// `else if (cond) { return Y }` / `else { return Z }` blocks into the
// equivalent nested ternary. A chain without a trailing else falls through
// to 0.
func rewriteConditional(code string) string {
	branches := branchPattern.FindAllStringSubmatch(code, -1)
	if len(branches) == 0 {
		return code
	}

	var b strings.Builder
	for i, m := range branches {
		kind := strings.ToLower(strings.Join(strings.Fields(m[1]), " "))
		cond := strings.TrimSpace(m[2])
		ret := strings.TrimSpace(m[3])
		if ret == "" {
			ret = "0"
		}

		if kind == "if" || kind == "else if" {
			b.WriteString("(" + cond + ") ? (" + ret + ") : ")
			if i == len(branches)-1 {
				b.WriteString("0")
			}
		} else {
			b.WriteString("(" + ret + ")")
		}
	}
	return b.String()
}

// Compile turns a user-authored formula into a plain numeric expression:
// placeholders substituted, decimal commas normalized, if/else blocks
// rewritten as ternaries. The result is ready for Evaluate.
func Compile(expr string, vars map[string]float64, soil map[string]string) string {
	out := substitutePlaceholders(expr, vars, soil)
	// Substituted values never contain commas, so this only touches literals
	// the user wrote with a decimal comma.
	out = decimalComma.ReplaceAllString(out, "$1.$2")
	if conditionalKw.MatchString(out) {
		out = rewriteConditional(out)
	}
	return out
}
