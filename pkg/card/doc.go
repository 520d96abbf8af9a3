// Package card implements the draggable card panel state machine.
//
// A PanelController owns the panel geometry and backdrop opacity, turns
// gesture samples into live offset updates and snap decisions, and negotiates
// the panel height with the ContentHost it embeds. Rendering is left to a
// Surface supplied by the host toolkit.
package card
