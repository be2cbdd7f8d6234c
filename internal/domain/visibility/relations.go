package visibility

import (
	"maps"
	"slices"
)

// Template identifiers with built-in relation tables.
const (
	TemplateISAD = "isad"
	TemplateRAD  = "rad"
)

// Relations maps a hidden-field setting name to the field patterns it hides.
// A nil or empty pattern list marks an element with no index field.
type Relations map[string][]string

// Patterns returns the patterns for a setting name. ok is false when the
// setting is unknown or has no associated index field.
func (r Relations) Patterns(name string) (patterns []string, ok bool) {
	p := r[name]
	return p, len(p) > 0
}

// Registry maps a description template to its relation table.
type Registry map[string]Relations

// Relations returns the table for a template, or nil when none is registered.
func (r Registry) Relations(template string) Relations {
	return r[template]
}

// Templates returns registered template ids, sorted.
func (r Registry) Templates() []string {
	return slices.Sorted(maps.Keys(r))
}

// Merge returns a copy of r with other's tables added. A table in other
// replaces the whole table of the same template in r.
func (r Registry) Merge(other Registry) Registry {
	out := make(Registry, len(r)+len(other))
	maps.Copy(out, r)
	maps.Copy(out, other)
	return out
}

// DefaultRegistry returns the ISAD(G) and RAD tables.
func DefaultRegistry() Registry {
	return Registry{
		TemplateISAD: {
			"isad_archival_history":               {"i18n.%s.archivalHistory"},
			"isad_immediate_source":               {"i18n.%s.acquisition"},
			"isad_appraisal_destruction":          {"i18n.%s.appraisal"},
			"isad_notes":                          nil,
			"isad_physical_condition":             {"i18n.%s.physicalCharacteristics"},
			"isad_control_description_identifier": nil,
			"isad_control_institution_identifier": {"i18n.%s.institutionResponsibleIdentifier"},
			"isad_control_rules_conventions":      {"i18n.%s.rules"},
			"isad_control_status":                 nil,
			"isad_control_level_of_detail":        nil,
			"isad_control_dates":                  {"i18n.%s.revisionHistory"},
			"isad_control_languages":              nil,
			"isad_control_scripts":                nil,
			"isad_control_sources":                {"i18n.%s.sources"},
			"isad_control_archivists_notes":       nil,
		},
		TemplateRAD: {
			"rad_archival_history":               {"i18n.%s.archivalHistory"},
			"rad_physical_condition":             {"i18n.%s.physicalCharacteristics"},
			"rad_immediate_source":               {"i18n.%s.acquisition"},
			"rad_general_notes":                  nil,
			"rad_conservation_notes":             nil,
			"rad_control_description_identifier": nil,
			"rad_control_institution_identifier": {"i18n.%s.institutionResponsibleIdentifier"},
			"rad_control_rules_conventions":      {"i18n.%s.rules"},
			"rad_control_status":                 nil,
			"rad_control_level_of_detail":        nil,
			"rad_control_dates":                  {"i18n.%s.revisionHistory"},
			"rad_control_language":               nil,
			"rad_control_script":                 nil,
			"rad_control_sources":                {"i18n.%s.sources"},
		},
	}
}
