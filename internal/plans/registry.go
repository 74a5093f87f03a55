// Package plans is the static subscription plan catalog. Billing itself is an
// external collaborator; this registry only answers "what limits does plan X
// carry", loaded once at startup from an embedded YAML file. A limit of -1
// means unlimited.
package plans

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/plans.yaml
var configFiles embed.FS

// DefaultPlan is assigned to newly created organizations.
const DefaultPlan = "free"

// Plan describes one subscription tier and its resource limits.
type Plan struct {
	ID                     string `yaml:"id" json:"id"`
	Name                   string `yaml:"name" json:"name"`
	MaxProjects            int64  `yaml:"max_projects" json:"max_projects"`
	MaxMembers             int64  `yaml:"max_members" json:"max_members"`
	MaxDocumentsPerProject int64  `yaml:"max_documents_per_project" json:"max_documents_per_project"`
}

// Allows reports whether the plan permits one more unit on top of current.
func allows(limit, current int64) bool {
	return limit < 0 || current < limit
}

// AllowsProject reports whether another project fits under the plan.
func (p *Plan) AllowsProject(current int64) bool { return allows(p.MaxProjects, current) }

// AllowsMember reports whether another organization member fits under the plan.
func (p *Plan) AllowsMember(current int64) bool { return allows(p.MaxMembers, current) }

// AllowsDocument reports whether another document fits under the plan.
func (p *Plan) AllowsDocument(current int64) bool {
	return allows(p.MaxDocumentsPerProject, current)
}

// Registry holds the plan catalog loaded from the embedded YAML file.
type Registry struct {
	plans map[string]*Plan
	order []string
}

// NewRegistry loads the embedded plan catalog.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/plans.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read plan catalog: %w", err)
	}

	var file struct {
		Plans []Plan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan catalog: %w", err)
	}
	if len(file.Plans) == 0 {
		return nil, fmt.Errorf("plan catalog is empty")
	}

	r := &Registry{plans: make(map[string]*Plan, len(file.Plans))}
	for i := range file.Plans {
		p := &file.Plans[i]
		r.plans[p.ID] = p
		r.order = append(r.order, p.ID)
	}

	if _, ok := r.plans[DefaultPlan]; !ok {
		return nil, fmt.Errorf("plan catalog missing default plan %q", DefaultPlan)
	}

	return r, nil
}

// Get returns a plan by ID. Unknown plan IDs fall back to the default plan so
// a stale plan column never grants unlimited resources.
func (r *Registry) Get(id string) *Plan {
	if p, ok := r.plans[id]; ok {
		return p
	}
	return r.plans[DefaultPlan]
}

// List returns all plans in catalog order.
func (r *Registry) List() []Plan {
	out := make([]Plan, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.plans[id])
	}
	return out
}
