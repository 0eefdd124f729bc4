// Package xmlcodec owns the XML fragment contract shared by every EPP type.
//
// Ownership boundary:
// - token writer with verbatim prefixed names and namespace declarations
// - parsed element tree with alias-tolerant lookup
// - ordered tag-name dispatch for multi-shape sections
//
// Lookup rule: a (namespace, local) query first matches elements in that
// namespace and, failing that, any element with the same local name. Registries
// send both prefixed and bare forms of the same element.
package xmlcodec
