// Package templating renders PLANTS configuration files from a text template
// and a preset.Store. It uses valyala/fasttemplate with configurable
// delimiters (default "{{" and "}}"); a placeholder names an option key, and
// vector options may be indexed by component, as in {{pocket[0]}}.
//
// Rendering is all-or-nothing: an unknown preset or a placeholder without a
// matching key fails the whole call and no partial text is returned.
package templating
