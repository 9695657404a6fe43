package services

import (
	"fmt"
	"strings"
	"time"
)

// Dates on cost sheets are short form, quotation documents spell the month.
const (
	sheetDateLayout = "02/01/2006"
	quoteDateLayout = "02 January 2006"
)

// FormatGBP formats an amount as pounds sterling with thousands separators,
// e.g. 1234567.5 -> "£1,234,567.50".
func FormatGBP(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)
	whole, frac := parts[0], parts[1]

	grouped := groupThousands(whole)

	if negative {
		return "-£" + grouped + "." + frac
	}
	return "£" + grouped + "." + frac
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Initials folds a name string into initials. Multiple names joined by
// "and", "&" or "/" keep a slash between their initials:
// "Yazan Hunjul / Joe Salloum" -> "YH/JS".
func Initials(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	joined := strings.NewReplacer(" and ", "/", "&", "/").Replace(name)

	var out []string
	for _, person := range strings.Split(joined, "/") {
		var initials strings.Builder
		for _, part := range strings.Fields(person) {
			r := []rune(part)
			initials.WriteString(strings.ToUpper(string(r[0])))
		}
		if initials.Len() > 0 {
			out = append(out, initials.String())
		}
	}
	return strings.Join(out, "/")
}

// TitleCaseWords upper-cases the first letter of every word and lower-cases
// the rest, the casing the sheet headers use for free-text metadata.
func TitleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// SheetDate returns the date to stamp on generated sheets, defaulting to
// today when the project carries none.
func SheetDate(date string) string {
	if strings.TrimSpace(date) == "" {
		return time.Now().Format(sheetDateLayout)
	}
	return strings.TrimSpace(date)
}

// QuoteDate renders a sheet date in the long form quotation documents use,
// e.g. "02/06/2025" -> "02 June 2025". Unparseable input falls back to today.
func QuoteDate(date string) string {
	t, err := time.Parse(sheetDateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Now().Format(quoteDateLayout)
	}
	return t.Format(quoteDateLayout)
}

// CostSheetFilename names a generated workbook after the project number and
// date, slashes stripped: "P1234 Cost Sheet 02062025.xlsx".
func CostSheetFilename(projectNumber, date string) string {
	stamp := strings.ReplaceAll(SheetDate(date), "/", "")
	return fmt.Sprintf("%s Cost Sheet %s.xlsx", projectNumber, stamp)
}

// LightingDisplay folds the lighting dropdown values into the two families
// quotation documents distinguish. Unselected and unrecognised values show
// the placeholder.
func LightingDisplay(lighting string) string {
	s := strings.ToUpper(strings.TrimSpace(lighting))
	switch {
	case s == "" || s == "LIGHT SELECTION":
		return NotApplicable
	case strings.Contains(s, "LED STRIP"):
		return "LED STRIP"
	case strings.Contains(s, "SPOT"):
		return "LED SPOTS"
	default:
		return NotApplicable
	}
}
