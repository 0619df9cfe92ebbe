package badge

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dukerupert/taskquest/internal/apperr"
	"github.com/dukerupert/taskquest/internal/model"
)

type fileCatalog struct {
	Badges []fileBadge `yaml:"badges"`
}

type fileBadge struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Icon        string           `yaml:"icon,omitempty"`
	Type        Type             `yaml:"type"`
	Price       int              `yaml:"price,omitempty"`
	Requirement *fileRequirement `yaml:"requirement,omitempty"`
}

type fileRequirement struct {
	Kind       RequirementKind  `yaml:"kind"`
	Threshold  int              `yaml:"threshold"`
	Difficulty model.Difficulty `yaml:"difficulty,omitempty"`
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return ParseCatalog(f)
}

// ParseCatalog decodes a YAML catalog of the form
//
//	badges:
//	  - id: hard_5
//	    name: Challenge Accepted
//	    type: earnable
//	    requirement: {kind: difficulty, difficulty: HARD, threshold: 5}
func ParseCatalog(r io.Reader) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	defs := make([]Definition, 0, len(fc.Badges))
	for _, b := range fc.Badges {
		d := Definition{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			Icon:        b.Icon,
			Type:        b.Type,
			Price:       b.Price,
		}
		if b.Requirement != nil {
			req, err := b.Requirement.build()
			if err != nil {
				return nil, fmt.Errorf("badge %q: %w", b.ID, err)
			}
			d.Requirement = req
		}
		defs = append(defs, d)
	}

	c, err := NewCatalog(defs)
	if err != nil {
		return nil, apperr.InvalidState("%v", err)
	}
	return c, nil
}

func (r fileRequirement) build() (Requirement, error) {
	switch r.Kind {
	case KindTasksCompleted:
		return TasksCompleted{Count: r.Threshold}, nil
	case KindPoints:
		return Points{Total: r.Threshold}, nil
	case KindDifficulty:
		if !r.Difficulty.Valid() {
			return nil, apperr.InvalidState("unknown difficulty %q", r.Difficulty)
		}
		return DifficultyCount{Difficulty: r.Difficulty, Count: r.Threshold}, nil
	case KindSpeed:
		return Speed{PerDay: r.Threshold}, nil
	case KindStreak:
		return Streak{Days: r.Threshold}, nil
	case KindCollaboration:
		return Collaboration{Count: r.Threshold}, nil
	default:
		return nil, apperr.InvalidState("unknown requirement kind %q", r.Kind)
	}
}

// WriteYAML encodes c in the format ParseCatalog reads.
func (c *Catalog) WriteYAML(w io.Writer) error {
	fc := fileCatalog{Badges: make([]fileBadge, 0, len(c.defs))}
	for _, d := range c.defs {
		b := fileBadge{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Icon:        d.Icon,
			Type:        d.Type,
			Price:       d.Price,
		}
		if d.Requirement != nil {
			b.Requirement = &fileRequirement{Kind: d.Requirement.Kind(), Threshold: d.Requirement.Threshold()}
			if dc, ok := d.Requirement.(DifficultyCount); ok {
				b.Requirement.Difficulty = dc.Difficulty
			}
		}
		fc.Badges = append(fc.Badges, b)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}
