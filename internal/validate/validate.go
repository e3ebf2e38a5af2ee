package validate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"shelfwise/internal/domain"
)

var reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Errors maps a form field to its validation message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// Product checks and coerces the raw add-product form fields. On any failure
// it returns a zero ProductInput and the per-field messages; nothing partial.
func Product(name, price, quantity, sku, lowStockAt string) (domain.ProductInput, Errors) {
	errs := Errors{}
	var in domain.ProductInput

	in.Name = strings.TrimSpace(name)
	if in.Name == "" {
		errs["name"] = "Name is required"
	}

	switch p, err := strconv.ParseFloat(strings.TrimSpace(price), 64); {
	case err != nil:
		errs["price"] = "Price must be a number"
	case p < 0:
		errs["price"] = "Price must be non-negative"
	default:
		in.Price = p
	}

	switch q, err := strconv.Atoi(strings.TrimSpace(quantity)); {
	case err != nil:
		errs["quantity"] = "Quantity must be a whole number"
	case q < 0:
		errs["quantity"] = "Quantity must be non-negative"
	default:
		in.Quantity = q
	}

	if s := strings.TrimSpace(sku); s != "" {
		in.SKU = &s
	}

	if s := strings.TrimSpace(lowStockAt); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			errs["lowStockAt"] = "Low stock threshold must be a non-negative whole number"
		} else {
			in.LowStockAt = &n
		}
	}

	if len(errs) > 0 {
		return domain.ProductInput{}, errs
	}
	return in, nil
}

// Query trims a search query and caps its length; listing search never
// rejects, it just narrows.
func Query(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 72
}
