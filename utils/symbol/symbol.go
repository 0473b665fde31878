package symbol

import "fmt"

// FormatID renders the 1-based collection sequence number as a ledger
// collection symbol. The numeric section is left-padded with zeros to a total
// width of 7-floor(log10(n)) characters; the padding shrinks by two zeros per
// order of magnitude and disappears entirely for n >= 1000.
func FormatID(id uint64) string {
	var section string
	switch {
	case id < 10:
		section = fmt.Sprintf("#000000%d", id)
	case id < 100:
		section = fmt.Sprintf("#0000%d", id)
	case id < 1_000:
		section = fmt.Sprintf("#00%d", id)
	default:
		section = fmt.Sprintf("#%d", id)
	}
	return "VEC-" + section
}
