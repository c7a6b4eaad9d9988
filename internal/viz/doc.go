// Package viz renders vector state for the terminal: lipgloss styles, slot
// bars showing live elements against slack, and asciigraph plots of growth
// traces.
package viz
