// Package searchscope computes the index fields a full-text search may
// target for a content type, hiding the fields a public user is not allowed
// to see.
//
// Fields are collected from an index mapping (text leaves included in _all,
// localized i18n containers fanned out per active culture) and filtered by
// the element_visibility settings of the active description template.
//
//	client, err := searchscope.New(
//		searchscope.WithMappingsFile("config/mappings.yaml"),
//		searchscope.WithSettingsFile("config/settings.yaml"),
//	)
//	fields, err := client.Fields(ctx, "informationObject", false)
package searchscope
