package catalog

// Infrastructure tags with fixed recommendation weight.
const (
	InfraNone      = "none"
	InfraOnPremise = "on-premise"
	InfraCloud     = "cloud"
	InfraHybrid    = "hybrid"
)

// Profile describes the prospect's organization, built incrementally across
// the conversational wizard steps. Immutable once submission begins.
type Profile struct {
	CompanySize    CompanySize `json:"company_size,omitempty"`
	EmployeeCount  int         `json:"employee_count,omitempty"`
	Infrastructure []string    `json:"infrastructure,omitempty"`
	Challenges     []string    `json:"challenges,omitempty"`
}

// HasInfrastructure reports whether the tag was declared. Tags are a set.
func (p *Profile) HasInfrastructure(tag string) bool {
	for _, t := range p.Infrastructure {
		if t == tag {
			return true
		}
	}
	return false
}

// HasChallenge reports whether the challenge tag was declared.
func (p *Profile) HasChallenge(tag string) bool {
	for _, t := range p.Challenges {
		if t == tag {
			return true
		}
	}
	return false
}
