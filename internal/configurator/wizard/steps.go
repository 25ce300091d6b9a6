package wizard

// Requirement is a gate that must hold before the wizard may leave a step.
type Requirement int

const (
	RequireNone Requirement = iota
	RequireCompanySize
	RequireInfrastructure
	RequireChallenges
	RequireServiceSelected
	RequireConfigComplete
	RequireContact
)

// Effect runs when a step is entered.
type Effect int

const (
	EffectRecommend Effect = iota
	EffectWatchPrice
	EffectSummarize
)

// Step is one screen of the wizard. Terminal steps submit on advance instead
// of moving forward.
type Step struct {
	Name     string
	Requires []Requirement
	OnEnter  []Effect
	Terminal bool
}

// Variant names accepted by NewMachine.
const (
	VariantClassic        = "classic"
	VariantConversational = "conversational"
)

// ClassicSteps is the four-screen flow: pick, configure, identify, review.
func ClassicSteps() []Step {
	return []Step{
		{Name: "services", Requires: []Requirement{RequireServiceSelected}},
		{Name: "configuration", Requires: []Requirement{RequireConfigComplete}, OnEnter: []Effect{EffectWatchPrice}},
		{Name: "contact", Requires: []Requirement{RequireContact}},
		{Name: "summary", OnEnter: []Effect{EffectSummarize}, Terminal: true},
	}
}

// ConversationalSteps is the guided seven-screen flow that profiles the
// prospect before recommending services.
func ConversationalSteps() []Step {
	return []Step{
		{Name: "welcome"},
		{Name: "company-size", Requires: []Requirement{RequireCompanySize}},
		{Name: "infrastructure", Requires: []Requirement{RequireInfrastructure}},
		{Name: "challenges", Requires: []Requirement{RequireChallenges}},
		{Name: "recommendations", Requires: []Requirement{RequireServiceSelected}, OnEnter: []Effect{EffectRecommend}},
		{Name: "configuration", Requires: []Requirement{RequireConfigComplete}, OnEnter: []Effect{EffectWatchPrice}},
		{Name: "contact", Requires: []Requirement{RequireContact}, OnEnter: []Effect{EffectSummarize}, Terminal: true},
	}
}

func stepsForVariant(variant string) []Step {
	switch variant {
	case VariantConversational:
		return ConversationalSteps()
	default:
		return ClassicSteps()
	}
}
