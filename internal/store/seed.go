package store

import (
	"fmt"
	"os"
	"time"

	"health-insights/internal/insights"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	HealthData   *insights.HealthSnapshot `yaml:"healthData"`
	Goals        []insights.Goal          `yaml:"goals"`
	Achievements []insights.Achievement   `yaml:"achievements"`
}

// LoadSeed reads a YAML dataset from path. Sections missing from the file
// are taken from insights.SampleData(now).
func LoadSeed(path string, now time.Time) (insights.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return insights.Dataset{}, fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return insights.Dataset{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	ds := insights.SampleData(now)
	if f.HealthData != nil {
		ds.HealthData = *f.HealthData
	}
	if f.Goals != nil {
		ds.Goals = f.Goals
	}
	if f.Achievements != nil {
		ds.Achievements = f.Achievements
	}

	if err := insights.Validate(ds.HealthData); err != nil {
		return insights.Dataset{}, fmt.Errorf("seed file %s: %w", path, err)
	}
	if err := insights.ValidateGoals(ds.Goals); err != nil {
		return insights.Dataset{}, fmt.Errorf("seed file %s: %w", path, err)
	}
	if err := insights.ValidateAchievements(ds.Achievements); err != nil {
		return insights.Dataset{}, fmt.Errorf("seed file %s: %w", path, err)
	}

	return ds, nil
}
