// SPDX-License-Identifier: Apache-2.0
package config

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the application color scheme
type Theme struct {
	Primary   string // Warm ember orange
	Secondary string // Pale gold
	Muted     string // Muted warm gray
	Success   string
	Info      string
	Warning   string
	Error     string
}

// CurrentTheme is the active theme used throughout the application
var CurrentTheme = Theme{
	Primary:   "#F28C28", // Ember orange
	Secondary: "#E8C170", // Pale gold
	Muted:     "#8A8178", // Warm gray
	Success:   "#9ECE6A", // Soft green
	Info:      "#E8C170", // Same as secondary for consistency
	Warning:   "#FFD700", // Gold/yellow for warnings
	Error:     "#FF6B6B", // Soft red for errors
}

// Color getters return lipgloss.Color for easy styling

func (t Theme) GetPrimaryColor() lipgloss.Color {
	return lipgloss.Color(t.Primary)
}

func (t Theme) GetSecondaryColor() lipgloss.Color {
	return lipgloss.Color(t.Secondary)
}

func (t Theme) GetMutedColor() lipgloss.Color {
	return lipgloss.Color(t.Muted)
}

func (t Theme) GetSuccessColor() lipgloss.Color {
	return lipgloss.Color(t.Success)
}

func (t Theme) GetInfoColor() lipgloss.Color {
	return lipgloss.Color(t.Info)
}

func (t Theme) GetWarningColor() lipgloss.Color {
	return lipgloss.Color(t.Warning)
}

func (t Theme) GetErrorColor() lipgloss.Color {
	return lipgloss.Color(t.Error)
}

// Common style builders for consistent UI

func (t Theme) SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetSuccessColor()).Bold(true)
}

func (t Theme) InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetInfoColor())
}

func (t Theme) WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetWarningColor())
}

func (t Theme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetErrorColor())
}

func (t Theme) SubtleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.GetMutedColor())
}

// Message formatters with theme-appropriate icons

func (t Theme) SuccessMessage(text string) string {
	return t.SuccessStyle().Render("✓ " + text)
}

func (t Theme) InfoMessage(text string) string {
	return t.InfoStyle().Render("ℹ " + text)
}

func (t Theme) WarningMessage(text string) string {
	return t.WarningStyle().Render("⚠ " + text)
}

func (t Theme) ErrorMessage(text string) string {
	return t.ErrorStyle().Render("✗ " + text)
}

// Indicator helpers for consistent symbols across UI

// CleanIndicator marks packages whose links already match the registry
func (t Theme) CleanIndicator() string {
	return t.SuccessStyle().Render("●")
}

// PendingIndicator marks packages with pending link operations
func (t Theme) PendingIndicator() string {
	return t.WarningStyle().Render("○")
}

// ConflictIndicator marks packages blocked by a conflicting target
func (t Theme) ConflictIndicator() string {
	return t.ErrorStyle().Render("✗")
}

// MissingIndicator marks registry entries with no package directory
func (t Theme) MissingIndicator() string {
	return t.SubtleStyle().Render("?")
}
