package migration

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ziadkadry99/rolemap/internal/classify"
	"github.com/ziadkadry99/rolemap/internal/orgstructure"
)

// Summary counts what an analysis found.
type Summary struct {
	Units        int `json:"units"`
	Groups       int `json:"groups"`
	Applications int `json:"applications"`
	Roles        int `json:"roles"`
	Categories   int `json:"categories"`
}

// PermissionSet is a category of existing groups and the permission set
// that replaces them.
type PermissionSet struct {
	classify.Bucket
	Name       string `json:"name"`
	Assignment string `json:"assignment"`
}

// Analysis is the result of one run. It is immutable once returned.
type Analysis struct {
	ID           string                  `json:"id"`
	CreatedAt    time.Time               `json:"created_at"`
	Department   orgstructure.Department `json:"department"`
	Archetype    orgstructure.Archetype  `json:"archetype"`
	Groups       []string                `json:"groups"`
	Applications []string                `json:"applications"`
	Summary      Summary                 `json:"summary"`
	Roles        []orgstructure.Role     `json:"roles"`
	Buckets      *classify.Buckets       `json:"-"`
	Permissions  []PermissionSet         `json:"permissions"`
	Licenses     []LicenseRecommendation `json:"licenses"`
	Plan         []Step                  `json:"plan"`
	Total        string                  `json:"total_timeframe"`
}

// Analyzer runs analyses. The zero value uses random ids and the wall clock.
type Analyzer struct {
	NewID func() string
	Now   func() time.Time
}

// Analyze runs an analysis with the default Analyzer.
func Analyze(in Input) (*Analysis, error) {
	return Analyzer{}.Analyze(in)
}

// Analyze validates in and analyses it. Blank fields yield
// ErrIncompleteInput and nothing else.
func (a Analyzer) Analyze(in Input) (*Analysis, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	newID, now := a.NewID, a.Now
	if newID == nil {
		newID = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}

	dept := orgstructure.ParseDepartment(in.Organization)
	groups := orgstructure.Lines(in.Groups)
	apps := orgstructure.Lines(in.Applications)
	roles := orgstructure.InferDepartmentRoles(dept, groups)
	buckets := classify.Categorize(groups)

	permissions := lo.Map(buckets.List(), func(b classify.Bucket, _ int) PermissionSet {
		return PermissionSet{
			Bucket:     b,
			Name:       dept.Name + "-" + string(b.Category),
			Assignment: "Assigned to roles that require " + strings.ToLower(string(b.Category)) + " access",
		}
	})

	return &Analysis{
		ID:           newID(),
		CreatedAt:    now().UTC(),
		Department:   dept,
		Archetype:    orgstructure.DetectArchetype(dept.Name),
		Groups:       groups,
		Applications: apps,
		Summary: Summary{
			Units:        len(dept.Lines),
			Groups:       len(groups),
			Applications: len(apps),
			Roles:        len(roles),
			Categories:   buckets.Len(),
		},
		Roles:       roles,
		Buckets:     buckets,
		Permissions: permissions,
		Licenses:    lo.Map(apps, func(app string, _ int) LicenseRecommendation { return RecommendLicense(app) }),
		Plan:        Plan(dept.Name, apps),
		Total:       TotalTimeframe,
	}, nil
}
