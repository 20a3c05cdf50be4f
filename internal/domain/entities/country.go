package entities

import "strings"

// Country is a quiz country and the ISO 3166-1 alpha-2 code of its flag.
type Country struct {
	Name string
	Code string
}

// Flag returns the flag emoji built from the regional indicator symbols of the code.
func (c Country) Flag() string {
	code := strings.ToUpper(c.Code)
	if len(code) != 2 {
		return "🏳"
	}

	var sb strings.Builder
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "🏳"
		}
		sb.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return sb.String()
}

var defaultCountries = []Country{
	{Name: "Estonia", Code: "EE"},
	{Name: "France", Code: "FR"},
	{Name: "Germany", Code: "DE"},
	{Name: "Ireland", Code: "IE"},
	{Name: "Italy", Code: "IT"},
	{Name: "Nigeria", Code: "NG"},
	{Name: "Poland", Code: "PL"},
	{Name: "Spain", Code: "ES"},
	{Name: "UK", Code: "GB"},
	{Name: "Ukraine", Code: "UA"},
	{Name: "US", Code: "US"},
}

// Catalog maps country identifiers to their flags.
type Catalog struct {
	countries []Country
	byName    map[string]Country
}

// NewCatalog builds a catalog; later duplicates of a name are ignored.
func NewCatalog(countries []Country) *Catalog {
	c := &Catalog{byName: make(map[string]Country, len(countries))}
	for _, country := range countries {
		if _, ok := c.byName[country.Name]; ok {
			continue
		}
		c.byName[country.Name] = country
		c.countries = append(c.countries, country)
	}
	return c
}

// DefaultCatalog returns the built-in list of 11 countries.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultCountries)
}

// Names returns the identifiers in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.countries))
	for _, country := range c.countries {
		names = append(names, country.Name)
	}
	return names
}

// Lookup returns the country with the given identifier.
func (c *Catalog) Lookup(name string) (Country, bool) {
	country, ok := c.byName[name]
	return country, ok
}

// Flag returns the flag emoji for name, or a white flag for unknown identifiers.
func (c *Catalog) Flag(name string) string {
	country, ok := c.byName[name]
	if !ok {
		return "🏳"
	}
	return country.Flag()
}

func (c *Catalog) Len() int { return len(c.countries) }
