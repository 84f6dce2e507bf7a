package command

import "strings"

// SplitArguments splits a raw command line into arguments using the Windows
// command-line rules: whitespace separates arguments, double quotes group, and
// backslashes are literal unless they precede a double quote. 2n backslashes
// before a quote yield n backslashes and toggle quoting; 2n+1 yield n
// backslashes and a literal quote. Paths such as C:\src\dir survive intact.
func SplitArguments(raw string) []string {
	args := make([]string, 0)
	var cur strings.Builder
	inQuotes := false
	hasArg := false
	backslashes := 0

	flushBackslashes := func() {
		for ; backslashes > 0; backslashes-- {
			cur.WriteByte('\\')
		}
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '\\':
			backslashes++
			hasArg = true
		case c == '"':
			for ; backslashes >= 2; backslashes -= 2 {
				cur.WriteByte('\\')
			}
			if backslashes == 1 {
				backslashes = 0
				cur.WriteByte('"')
			} else {
				inQuotes = !inQuotes
			}
			hasArg = true
		case (c == ' ' || c == '\t' || c == '\n' || c == '\r') && !inQuotes:
			flushBackslashes()
			if hasArg {
				args = append(args, cur.String())
				cur.Reset()
				hasArg = false
			}
		default:
			flushBackslashes()
			cur.WriteByte(c)
			hasArg = true
		}
	}

	flushBackslashes()
	if hasArg {
		args = append(args, cur.String())
	}
	return args
}

// QuoteArgument quotes arg so SplitArguments returns it unchanged.
// Arguments without whitespace or quotes are returned as-is.
func QuoteArgument(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsAny(arg, " \t\n\r\"") {
		return arg
	}

	var b strings.Builder
	b.WriteByte('"')
	backslashes := 0
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		switch c {
		case '\\':
			backslashes++
		case '"':
			b.WriteString(strings.Repeat(`\`, backslashes*2+1))
			b.WriteByte('"')
			backslashes = 0
		default:
			b.WriteString(strings.Repeat(`\`, backslashes))
			b.WriteByte(c)
			backslashes = 0
		}
	}
	b.WriteString(strings.Repeat(`\`, backslashes*2))
	b.WriteByte('"')
	return b.String()
}

// JoinArguments quotes each argument and joins them with spaces.
func JoinArguments(args ...string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = QuoteArgument(a)
	}
	return strings.Join(quoted, " ")
}
