// Package migration runs an identity-migration analysis over free-text
// organisation input: it classifies the directory groups, infers roles,
// recommends licence groups and lays out the migration plan.
package migration

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/ziadkadry99/rolemap/internal/orgstructure"
)

var (
	// ErrIncompleteInput is the single notice shown when any input field is
	// blank. No partial analysis is attempted.
	ErrIncompleteInput = errors.New("please fill in all required fields to generate a migration plan")
	// ErrUnknownTemplate is returned for template names with no sample input.
	ErrUnknownTemplate = errors.New("unknown template")
)

// Input is the raw text a user submits, one entry per line.
type Input struct {
	Organization string `json:"organization" validate:"required"`
	Groups       string `json:"groups" validate:"required"`
	Applications string `json:"applications" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims surrounding whitespace from every field.
func (in Input) Normalize() Input {
	return Input{
		Organization: strings.TrimSpace(in.Organization),
		Groups:       strings.TrimSpace(in.Groups),
		Applications: strings.TrimSpace(in.Applications),
	}
}

// Validate reports ErrIncompleteInput, naming the blank fields, when any
// field is empty after trimming.
func (in Input) Validate() error {
	err := validate.Struct(in.Normalize())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validating input")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return errors.WithDetailf(ErrIncompleteInput, "blank: %s", strings.Join(fields, ", "))
}

// FromTemplate returns the sample input named name.
func FromTemplate(name string) (Input, error) {
	t, ok := orgstructure.LookupTemplate(name)
	if !ok {
		return Input{}, errors.Wrapf(ErrUnknownTemplate, "%q (available: %s)", name, strings.Join(orgstructure.TemplateNames(), ", "))
	}
	return Input{
		Organization: t.Organization,
		Groups:       t.GroupsText(),
		Applications: t.ApplicationsText(),
	}, nil
}
