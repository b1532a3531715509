package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFile is the top-level YAML structure of a pathway catalogue seed.
type SeedFile struct {
	Version   int           `yaml:"version"`
	Countries []CountrySeed `yaml:"countries,omitempty"`
	Pathways  []PathwaySeed `yaml:"pathways"`
}

type CountrySeed struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// PathwaySeed defines one pathway. ID is the canonical pathway id.
type PathwaySeed struct {
	ID                string          `yaml:"id"`
	Name              string          `yaml:"name"`
	Description       string          `yaml:"description,omitempty"`
	EstimatedDuration string          `yaml:"estimated_duration,omitempty"`
	TargetRole        string          `yaml:"target_role,omitempty"`
	Country           string          `yaml:"country,omitempty"`
	Status            string          `yaml:"status,omitempty"`
	Milestones        []MilestoneSeed `yaml:"milestones,omitempty"`
}

// MilestoneSeed defines one milestone. Required defaults to true and Order
// to the 1-based position in the list.
type MilestoneSeed struct {
	Name               string   `yaml:"name"`
	Description        string   `yaml:"description,omitempty"`
	Category           string   `yaml:"category,omitempty"`
	Required           *bool    `yaml:"required,omitempty"`
	Order              *int     `yaml:"order,omitempty"`
	EvidenceTypes      []string `yaml:"evidence_types,omitempty"`
	ResourceURL        string   `yaml:"resource_url,omitempty"`
	Alternatives       []string `yaml:"alternatives,omitempty"`
	EstimatedDuration  string   `yaml:"estimated_duration,omitempty"`
	CostEstimate       string   `yaml:"cost_estimate,omitempty"`
	VerificationStatus string   `yaml:"verification_status,omitempty"`
	LastVerified       string   `yaml:"last_verified,omitempty"`
	Status             string   `yaml:"status,omitempty"`
}

// LoadSeed reads and parses a seed YAML file.
func LoadSeed(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed YAML. Unknown keys are rejected so typos in
// editorial files surface instead of being dropped.
func ParseSeed(data []byte) (*SeedFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var seed SeedFile
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing seed file: empty document")
		}
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &seed, nil
}
