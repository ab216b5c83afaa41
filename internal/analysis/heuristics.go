// heuristics.go - Line-level extraction heuristics for invoice OCR text

package analysis

import "regexp"

// The heuristics below are deterministic pattern rules, not semantic
// understanding of the document. Each one is a named predicate so the
// locale-specific patterns and keyword sets can be swapped without touching
// the extraction control flow.

// datePattern matches YYYY<sep>MM<DD> with a single separator family per
// line (2024/03/15, 2024-03-15, 2024.03.15). RE2 has no backreferences, so
// the same-separator rule is spelled out as an alternation.
var datePattern = regexp.MustCompile(`\d{4}(\.\d{2}\.\d{2}|/\d{2}/\d{2}|-\d{2}-\d{2})`)

// totalPattern matches a currency marker followed by optional whitespace and
// digits. The marker set covers the dollar sign variants and the NT/US
// currency prefixes seen on Taiwanese receipts. Intentionally loose: it can
// hit a non-total monetary line; recall is preferred over precision here.
var totalPattern = regexp.MustCompile(`(?:NT\$?|US\$?|[$＄])\s?\d+`)

// totalKeywordPattern is the optional stricter constraint: the matched line
// must also name a total-like field.
var totalKeywordPattern = regexp.MustCompile(`總計|合計|金額`)

// cjkPattern detects at least one CJK ideograph, used as a proxy for "this
// line is a product description rather than a barcode or number row".
var cjkPattern = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]`)

var digitPattern = regexp.MustCompile(`\d`)

// itemExcludePattern rejects lines that carry receipt bookkeeping terms
// (invoice, tax ID, store, date, total, amount, business entity) instead of
// purchased items.
var itemExcludePattern = regexp.MustCompile(`發票|統編|店|日期|總計|金額|營業人`)

// MatchesDateLine reports whether the line contains a YYYY-MM-DD style date
// with a consistent separator.
func MatchesDateLine(line string) bool {
	return datePattern.MatchString(line)
}

// MatchesTotalLine reports whether the line contains a currency-marked
// amount. When requireKeyword is true the line must additionally contain a
// total keyword.
func MatchesTotalLine(line string, requireKeyword bool) bool {
	if !totalPattern.MatchString(line) {
		return false
	}
	if requireKeyword {
		return totalKeywordPattern.MatchString(line)
	}
	return true
}

// IsItemLine reports whether the line looks like a purchased item: it must
// contain a CJK character and a digit, and must not contain any of the
// bookkeeping keywords.
func IsItemLine(line string) bool {
	return cjkPattern.MatchString(line) &&
		digitPattern.MatchString(line) &&
		!itemExcludePattern.MatchString(line)
}
