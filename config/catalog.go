package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"home-budget/domain"
)

//go:embed defaults.toml
var defaultCatalog []byte

// Catalog is the city table and policy presets loaded once at start-up.
type Catalog struct {
	Cities   domain.CityTable
	Policies domain.PolicySet
}

type catalogFile struct {
	DefaultPolicy string               `toml:"default_policy"`
	Cities        []domain.CityProfile `toml:"cities"`
	Policies      []domain.Policy      `toml:"policies"`
}

// DefaultCatalog is the embedded catalog with no overlay.
func DefaultCatalog() (Catalog, error) {
	return LoadCatalog("", "")
}

// LoadCatalog reads the embedded defaults and, when path is set, overlays the file at path.
// Cities and policies in the overlay replace the defaults wholesale when present.
// activePolicy overrides default_policy when non-empty.
func LoadCatalog(path, activePolicy string) (Catalog, error) {
	var base catalogFile
	if _, err := toml.Decode(string(defaultCatalog), &base); err != nil {
		return Catalog{}, fmt.Errorf("decode embedded catalog: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var overlay catalogFile
		if _, err := toml.Decode(string(data), &overlay); err != nil {
			return Catalog{}, fmt.Errorf("decode catalog %s: %w", path, err)
		}
		if overlay.DefaultPolicy != "" {
			base.DefaultPolicy = overlay.DefaultPolicy
		}
		if len(overlay.Cities) > 0 {
			base.Cities = overlay.Cities
		}
		if len(overlay.Policies) > 0 {
			base.Policies = overlay.Policies
		}
	}

	if activePolicy != "" {
		base.DefaultPolicy = activePolicy
	}
	return buildCatalog(base)
}

func buildCatalog(f catalogFile) (Catalog, error) {
	if len(f.Cities) == 0 {
		return Catalog{}, fmt.Errorf("catalog defines no cities")
	}
	for _, c := range f.Cities {
		if c.Name == "" || c.TaxRate < 0 || c.HOA < 0 {
			return Catalog{}, fmt.Errorf("invalid city profile %+v", c)
		}
	}
	policies, err := domain.NewPolicySet(f.DefaultPolicy, f.Policies)
	if err != nil {
		return Catalog{}, err
	}
	return Catalog{
		Cities:   domain.NewCityTable(f.Cities),
		Policies: policies,
	}, nil
}
