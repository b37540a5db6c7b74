package ecommerce

import (
	"errors"
	"strconv"
	"strings"
)

var errNoProductID = errors.New("ecommerce: product id is not defined")

// product is one Adobe product-string segment. Price is pre-multiplied by
// quantity at construction time.
type product struct {
	category string
	id       string
	quantity int
	price    float64
}

// newProduct builds a product from a stringified property map. identifier
// names the property holding the product id; "id" or empty defers to the
// spec fallbacks productId -> product_id -> id.
func newProduct(props map[string]string, identifier string) (product, error) {
	p := product{
		category: props["category"],
		quantity: 1,
	}

	if identifier != "" && identifier != "id" {
		p.id = props[identifier]
	}
	for _, key := range []string{"productId", "product_id", "id"} {
		if strings.TrimSpace(p.id) != "" {
			break
		}
		p.id = props[key]
	}
	if strings.TrimSpace(p.id) == "" {
		return product{}, errNoProductID
	}

	if q, ok := props["quantity"]; ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(q)); err == nil {
			p.quantity = parsed
		}
	}
	if raw, ok := props["price"]; ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			p.price = parsed
		}
	}
	p.price *= float64(p.quantity)
	return p, nil
}

// String serializes the product as "category;id;quantity;price", e.g.
// "athletic;shoes;1;10.0". Category is blank when absent.
func (p product) String() string {
	var b strings.Builder
	if strings.TrimSpace(p.category) != "" {
		b.WriteString(p.category)
	}
	b.WriteByte(';')
	if strings.TrimSpace(p.id) != "" {
		b.WriteString(p.id)
	}
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(p.quantity))
	b.WriteByte(';')
	b.WriteString(formatPrice(p.price))
	return b.String()
}

// formatPrice renders a price the way Adobe expects it in product strings:
// always with a decimal point, no trailing zero padding beyond one digit.
func formatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// products is the ordered product list contributed by one event.
type products []product

func (ps products) String() string {
	segments := make([]string, len(ps))
	for i, p := range ps {
		segments[i] = p.String()
	}
	return strings.Join(segments, ",")
}
