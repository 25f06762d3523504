package sanitize

import (
	"regexp"
	"strings"
)

// Style selects how a matched value is redacted.
type Style int

const (
	// StyleFull replaces the entire value with the configured redaction text.
	StyleFull Style = iota
	// StylePartial keeps a short prefix of the value and masks the rest.
	StylePartial
)

// String returns the style name as written in configuration files.
func (s Style) String() string {
	if s == StylePartial {
		return "partial"
	}
	return "full"
}

// Kind classifies the category of sensitive data a rule protects.
type Kind string

// Built-in rule categories.
const (
	KindEmail       Kind = "email"
	KindAddress     Kind = "address"
	KindOwnerName   Kind = "owner_name"
	KindCoordinates Kind = "coordinates"
	KindParcelID    Kind = "parcel_id"
	KindIPAddress   Kind = "ip_address"
	KindPhone       Kind = "phone"
	KindSSN         Kind = "ssn"
	KindCreditCard  Kind = "credit_card"
	KindCustom      Kind = "custom"
)

// Rule describes a single field-name redaction rule.
//
// Matching is purely syntactic on the key name; rules are never tested
// against a field's value.
type Rule struct {
	Kind Kind

	// Pattern is compared case-insensitively against the whole field name.
	// Ignored when Expr is set.
	Pattern string

	// Expr, when non-nil, is tested against the field name.
	Expr *regexp.Regexp

	Style Style

	// PreserveChars is the number of leading characters kept by StylePartial
	// rules. A partial rule with PreserveChars <= 0 falls back to full
	// redaction.
	PreserveChars int
}

// Matches reports whether the rule applies to the given field name.
func (r Rule) Matches(field string) bool {
	if r.Expr != nil {
		return r.Expr.MatchString(field)
	}
	return strings.EqualFold(field, r.Pattern)
}

// DefaultRules returns the built-in rule set in evaluation order. When more
// than one rule matches a field name, the first one in this order wins; there
// is no merging of redaction styles.
func DefaultRules() []Rule {
	return []Rule{
		{Kind: KindEmail, Pattern: "email", Style: StyleFull},
		{Kind: KindEmail, Expr: regexp.MustCompile(`(?i)(^|_)e?mail(_?address)?$`), Style: StyleFull},
		{Kind: KindAddress, Expr: regexp.MustCompile(`(?i)(property|street|mailing|site|situs)?_?address`), Style: StyleFull},
		{Kind: KindOwnerName, Expr: regexp.MustCompile(`(?i)owner_?name`), Style: StyleFull},
		{Kind: KindCoordinates, Expr: regexp.MustCompile(`(?i)^(lat|latitude|lng|lon|long|longitude)$`), Style: StyleFull},
		{Kind: KindCoordinates, Pattern: "coordinates", Style: StyleFull},
		{Kind: KindParcelID, Expr: regexp.MustCompile(`(?i)parcel(_?(id|number))?$`), Style: StylePartial, PreserveChars: 3},
		{Kind: KindIPAddress, Expr: regexp.MustCompile(`(?i)(^|_)ip(_?address)?$`), Style: StyleFull},
		{Kind: KindPhone, Expr: regexp.MustCompile(`(?i)phone`), Style: StylePartial, PreserveChars: 3},
		{Kind: KindSSN, Expr: regexp.MustCompile(`(?i)(^ssn$|social_?security)`), Style: StyleFull},
		{Kind: KindCreditCard, Expr: regexp.MustCompile(`(?i)(credit_?card|card_?number)`), Style: StylePartial, PreserveChars: 4},
	}
}

// match returns the first rule in order that applies to the field name.
func match(rules []Rule, field string) (Rule, bool) {
	for _, r := range rules {
		if r.Matches(field) {
			return r, true
		}
	}
	return Rule{}, false
}
