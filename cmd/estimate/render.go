package main

import (
	"delivery-emissions-service/internal/services"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const boxWidth = 80

// renderResult writes the route, weather, and emission figures as one box.
func renderResult(w io.Writer, res *services.PredictionResult) error {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("42"))
	labelStyle := lipgloss.NewStyle().Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("33")).
		Padding(0, 1).
		Width(boxWidth)

	r := res.Record
	e := res.Estimate

	var b strings.Builder
	b.WriteString(titleStyle.Render("DELIVERY ESTIMATE"))
	b.WriteString("\n\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label+":"), value)
	}

	row("Route", fmt.Sprintf("%s → %s", r.StartLocation, r.EndLocation))
	row("Distance", fmt.Sprintf("%.2f km", r.DistanceKm))
	row("Duration", fmt.Sprintf("%.2f min", r.TimeMin))
	row("Vehicle", fmt.Sprintf("%s, %.1f kg cargo", r.Vehicle, r.CargoWeightKg))
	row("Conditions", fmt.Sprintf("%s traffic, %s weather", r.TrafficLevel, r.UserSelectedWeather))
	b.WriteString("\n")
	row("Weather at start", res.StartWeather)
	row("Weather at destination", res.EndWeather)
	b.WriteString("\n")
	row("Fuel used", fmt.Sprintf("%.2f L", e.FuelUsedLiters))
	row("Fuel cost", fmt.Sprintf("₹%.2f", e.FuelCost))
	row("Predicted CO₂", fmt.Sprintf("%.2f kg", e.ModelCO2Kg))
	row("Formula CO₂", fmt.Sprintf("%.2f kg", e.FormulaCO2Kg))
	b.WriteString(noteStyle.Render(fmt.Sprintf("%d route points", len(res.Path))))

	_, err := fmt.Fprintln(w, boxStyle.Render(b.String()))
	return err
}
