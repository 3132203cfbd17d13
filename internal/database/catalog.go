package database

import (
	_ "embed"
	"fmt"

	"findjob-backend/internal/model"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm/clause"
)

//go:embed categories.yaml
var categoriesYAML []byte

type catalogFile struct {
	Categories []model.Category `yaml:"categories"`
}

// LoadCatalog parse a YAML category catalog.
func LoadCatalog(data []byte) ([]model.Category, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse category catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Categories))
	out := make([]model.Category, 0, len(f.Categories))
	for _, c := range f.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("parse category catalog: empty category name")
		}
		if _, dup := seen[c.Name]; dup {
			continue
		}
		seen[c.Name] = struct{}{}
		out = append(out, model.Category{Name: c.Name})
	}
	return out, nil
}

// SeedCategories insert the embedded catalog, skipping names that already exist.
func (d *DBinstanceStruct) SeedCategories() error {
	cats, err := LoadCatalog(categoriesYAML)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		return nil
	}
	return d.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&cats).Error
}
