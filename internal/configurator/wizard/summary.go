package wizard

import (
	"strconv"

	"it-configurator/internal/configurator/catalog"
	"it-configurator/internal/configurator/session"
)

// SummaryLine is one labeled configuration value on the review screen.
type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SummaryService is one selected service with its readable configuration.
type SummaryService struct {
	Service     string        `json:"service"`
	Name        string        `json:"name"`
	Recommended bool          `json:"recommended"`
	Lines       []SummaryLine `json:"lines"`
}

// buildSummary renders the selected services for the review screen. Unset
// values and switched-off toggles are omitted.
func buildSummary(store *session.Store) []SummaryService {
	var out []SummaryService
	for _, key := range store.SelectedKeys() {
		sel, _ := store.Selection(key)
		wire := sel.Options.Wire()

		var lines []SummaryLine
		for _, opt := range catalog.AllOptions(key) {
			value, ok := formatValue(wire[opt])
			if !ok {
				continue
			}
			lines = append(lines, SummaryLine{Label: catalog.OptionLabel(opt), Value: value})
		}

		out = append(out, SummaryService{
			Service:     string(key),
			Name:        key.DisplayName(),
			Recommended: sel.Recommended,
			Lines:       lines,
		})
	}
	return out
}

func formatValue(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, x != ""
	case int:
		return strconv.Itoa(x), x > 0
	case bool:
		return "Yes", x
	default:
		return "", false
	}
}
