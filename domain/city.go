package domain

import "sort"

// CityProfile holds the per-city cost assumptions.
type CityProfile struct {
	Name    string  `json:"name" toml:"name"`
	TaxRate float64 `json:"tax_rate" toml:"tax_rate"` // annual, fraction of price
	HOA     float64 `json:"hoa" toml:"hoa"`           // flat monthly fee
}

// CityTable is the closed set of supported cities. It is immutable once built.
type CityTable struct {
	profiles map[string]CityProfile
	names    []string
}

func NewCityTable(profiles []CityProfile) CityTable {
	t := CityTable{
		profiles: make(map[string]CityProfile, len(profiles)),
		names:    make([]string, 0, len(profiles)),
	}
	for _, p := range profiles {
		if _, dup := t.profiles[p.Name]; dup {
			continue
		}
		t.profiles[p.Name] = p
		t.names = append(t.names, p.Name)
	}
	sort.Strings(t.names)
	return t
}

func (t CityTable) Lookup(name string) (CityProfile, bool) {
	p, ok := t.profiles[name]
	return p, ok
}

func (t CityTable) Contains(name string) bool {
	_, ok := t.profiles[name]
	return ok
}

// Names returns the supported city names in sorted order.
func (t CityTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

func (t CityTable) Profiles() []CityProfile {
	out := make([]CityProfile, 0, len(t.names))
	for _, n := range t.names {
		out = append(out, t.profiles[n])
	}
	return out
}

func (t CityTable) Len() int {
	return len(t.names)
}
