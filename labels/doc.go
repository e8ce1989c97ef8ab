// Package labels implements the global Labels table shared by every
// factor of a FactoredTransitionSystem: an integer-identified,
// cost-carrying action abstraction with a strict active/reduced
// lifecycle (SPEC_FULL.md §3 "Label", §4.5).
//
// Reduced labels are tombstoned, never reused and never resurrected —
// their identifiers stay stable so indices held by LabelGroups across
// every live factor remain valid.
package labels
