package portfolio

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var sampleSeed []byte

// Seed is the initial content of a session.
type Seed struct {
	Template     string       `yaml:"template"`
	Profile      Profile      `yaml:"profile"`
	Projects     []Project    `yaml:"projects"`
	Skills       []Skill      `yaml:"skills"`
	Achievements Achievements `yaml:"achievements"`
	Activities   []Activity   `yaml:"activities"`
}

// SampleSeed returns the built-in sample portfolio.
func SampleSeed() (*Seed, error) {
	return ParseSeed(sampleSeed)
}

func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, errors.Wrap(err, "parsing seed")
	}
	return &seed, nil
}

// LoadSeed reads a seed file. The special name "sample" selects the built-in
// seed and "" or "none" an empty session.
func LoadSeed(path string) (*Seed, error) {
	switch path {
	case "", "none":
		return nil, nil
	case "sample":
		return SampleSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading seed %s", path)
	}
	return ParseSeed(data)
}
