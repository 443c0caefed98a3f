// Package submission defines the immutable per-run submission context:
// company profile, reported activities, evidence file names, and signer.
//
// A submission replaces the original wizard's ambient session state. Each
// run constructs its own value, validates it, and passes it through the
// pipeline; nothing is shared between runs.
package submission

import (
	"fmt"
	"os"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/carbonops/carbonpack/internal/activity"
)

// Profile is the company block echoed verbatim into the disclosure.
type Profile struct {
	Name     string  `yaml:"name"`
	Country  string  `yaml:"country"`
	Period   string  `yaml:"period"`
	Revenue  float64 `yaml:"revenue"`
	Currency string  `yaml:"currency"`
}

// ActivityInput is one reported quantity. Built-in keys take their label,
// unit, and category from the activity catalogue; free-form keys (custom
// factor overlays) must supply their own.
type ActivityInput struct {
	Key      string  `yaml:"key"`
	Quantity float64 `yaml:"quantity"`
	Label    string  `yaml:"label,omitempty"`
	Unit     string  `yaml:"unit,omitempty"`
	Category string  `yaml:"category,omitempty"`
}

// Submission is one supplier's complete disclosure input.
type Submission struct {
	// Reference identifies the submission in the rendered pack footer.
	// Assigned a ULID on load when absent.
	Reference string `yaml:"reference,omitempty"`

	Company Profile `yaml:"company"`

	// Signer is the full legal name of the authorized signer.
	Signer string `yaml:"signer"`

	// EvidenceFiles are attached file names. Only names and count are
	// consumed; contents are never read.
	EvidenceFiles []string `yaml:"evidence_files,omitempty"`

	// Activities are the reported quantities, in input order.
	Activities []ActivityInput `yaml:"activities"`
}

// minSignerLen is the shortest accepted signer name.
const minSignerLen = 3

// Validation sentinel errors.
var (
	ErrCompanyNameRequired = fmt.Errorf("company name is required")
	ErrRevenueRequired     = fmt.Errorf("annual revenue must be greater than 0")
	ErrSignerRequired      = fmt.Errorf("signer name of at least %d characters is required", minSignerLen)
	ErrActivityKeyRequired = fmt.Errorf("activity key is required")
)

// Validate enforces the user-facing requirements the calculator and builder
// deliberately do not check: non-empty company, positive revenue, and a
// plausible signer name. Call it before running the pipeline.
func (s *Submission) Validate() error {
	if s.Company.Name == "" {
		return ErrCompanyNameRequired
	}
	if s.Company.Revenue <= 0 {
		return ErrRevenueRequired
	}
	if len(s.Signer) < minSignerLen {
		return ErrSignerRequired
	}
	for i, a := range s.Activities {
		if a.Key == "" {
			return fmt.Errorf("activity %d: %w", i, ErrActivityKeyRequired)
		}
	}
	return nil
}

// Entries converts the reported activities into calculator entries, in input
// order. Built-in keys resolve display attributes from the catalogue;
// explicit fields on the input win over catalogue defaults.
func (s *Submission) Entries() []activity.Entry {
	entries := make([]activity.Entry, 0, len(s.Activities))
	for _, in := range s.Activities {
		entry := activity.Entry{
			FactorKey: in.Key,
			Label:     in.Label,
			Quantity:  in.Quantity,
			Unit:      in.Unit,
			Category:  in.Category,
		}
		if kind, ok := activity.KindForKey(in.Key); ok {
			def := kind.Definition()
			if entry.Label == "" {
				entry.Label = def.Label
			}
			if entry.Unit == "" {
				entry.Unit = def.Unit
			}
			if entry.Category == "" {
				entry.Category = def.Category()
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// Load reads a submission from a YAML file and assigns a reference when the
// file does not carry one. Load does not validate; callers decide when to
// run Validate.
func Load(path string) (*Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading submission: %w", err)
	}

	var sub Submission
	if err := yaml.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("parsing submission %s: %w", path, err)
	}

	if sub.Reference == "" {
		sub.Reference = NewReference()
	}
	return &sub, nil
}

// NewReference returns a fresh submission reference ULID.
func NewReference() string {
	return ulid.Make().String()
}
