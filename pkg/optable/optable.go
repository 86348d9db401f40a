// Package optable maps JavaScript operator spellings to their target-syntax
// spellings.
//
// Only logical, equality and negation operators have explicit entries.
// Everything else falls back to the first two characters of the source
// spelling, which is right for arithmetic and relational operators but
// truncates longer ones: typeof becomes "ty", >>> becomes ">>" and
// instanceof becomes "in". That fallback is kept as-is.
package optable

// Entry is one explicit operator mapping.
type Entry struct {
	Source string
	Target string
}

// entries is ordered for display; table is derived from it.
var entries = []Entry{
	{Source: "!", Target: "not "},
	{Source: "||", Target: "or"},
	{Source: "&&", Target: "and"},
	{Source: "==", Target: "is"},
	{Source: "===", Target: "is"},
	{Source: "!=", Target: "is not"},
	{Source: "!==", Target: "is not"},
	{Source: "instacneof", Target: "instanceof"},
}

var table = func() map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Source] = e.Target
	}
	return m
}()

// fallbackWidth is how many leading characters an unmapped operator keeps.
const fallbackWidth = 2

// Translate returns the target spelling of op. It never fails.
func Translate(op string) string {
	if t, ok := table[op]; ok {
		return t
	}
	return Fallback(op)
}

// Lookup returns the explicit mapping for op, if there is one.
func Lookup(op string) (string, bool) {
	t, ok := table[op]
	return t, ok
}

// Fallback is the spelling Translate uses for an unmapped operator: its
// first two characters, counted in runes.
func Fallback(op string) string {
	r := []rune(op)
	if len(r) <= fallbackWidth {
		return op
	}
	return string(r[:fallbackWidth])
}

// Entries returns a copy of the explicit mappings in display order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
