// Package seeds loads the reference data — profiles and the POI
// inventory — from a YAML file. It runs out-of-process (cmd/seed); the
// serving path treats these rows as pre-existing.
package seeds

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pois-treasure/poi-backend/internal/pois"
	"github.com/pois-treasure/poi-backend/internal/profiles"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileSeed struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Rules       map[string]int `yaml:"rules"`
}

type poiSeed struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	WKT      string `yaml:"wkt"`
}

type seedFile struct {
	Profiles []profileSeed `yaml:"profiles"`
	POIs     []poiSeed     `yaml:"pois"`
}

// Run loads the seed file and upserts its contents. Re-running is safe:
// existing profiles are left untouched and POIs are matched by
// name+category before insert.
func Run(d *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for _, p := range file.Profiles {
		if p.Name == "" {
			return fmt.Errorf("profile seed with empty name")
		}
		rules := profiles.Rules{}
		for category, count := range p.Rules {
			if count > 0 {
				rules[category] = count
			}
		}
		profile := profiles.Profile{
			Name:        p.Name,
			Description: p.Description,
			Rules:       rules,
		}
		err := d.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&profile).Error
		if err != nil {
			return fmt.Errorf("seed profile %q: %w", p.Name, err)
		}
	}

	for _, p := range file.POIs {
		if p.Name == "" || p.Category == "" || p.WKT == "" {
			return fmt.Errorf("poi seed %q missing name, category or wkt", p.Name)
		}
		poi := pois.POI{Name: p.Name, Category: p.Category, WKTGeometry: p.WKT}
		err := d.Where("name = ? AND category = ?", p.Name, p.Category).
			FirstOrCreate(&poi).Error
		if err != nil {
			return fmt.Errorf("seed poi %q: %w", p.Name, err)
		}
	}

	return nil
}
