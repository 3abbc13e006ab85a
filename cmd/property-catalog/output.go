package main

import (
	"fmt"
	"io"
	"property-catalog/internal/core/domain"
	"sort"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/message"
)

func formatPrice(p *message.Printer, price float64) string {
	return p.Sprintf("%.2f", price)
}

func printProperties(w io.Writer, p *message.Printer, properties []domain.Property) {
	if len(properties) == 0 {
		fmt.Fprintln(w, "No properties found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tPRICE\tACTIVE\tADDRESS")
	for _, prop := range properties {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
			prop.ID, prop.Name, prop.Type, formatPrice(p, prop.PriceProperty), prop.Active, prop.AddressProperty)
	}
	tw.Flush()
}

func printProperty(w io.Writer, p *message.Printer, prop *domain.Property) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", prop.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", prop.Name)
	fmt.Fprintf(tw, "Type:\t%s\n", prop.Type)
	fmt.Fprintf(tw, "Price:\t%s\n", formatPrice(p, prop.PriceProperty))
	fmt.Fprintf(tw, "Address:\t%s\n", prop.AddressProperty)
	fmt.Fprintf(tw, "Active:\t%t\n", prop.Active)
	if prop.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", prop.Description)
	}
	if prop.ImageURL != "" {
		fmt.Fprintf(tw, "Image:\t%s\n", prop.ImageURL)
	}
	if prop.IDOwner != "" {
		fmt.Fprintf(tw, "Owner:\t%s\n", prop.IDOwner)
	}
	if !prop.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Created:\t%s\n", prop.CreatedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()
}

func printCategories(w io.Writer, categories []domain.Category) {
	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOLOR")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, c.Color)
	}
	tw.Flush()
}

// formatFieldErrors - по строке на поле, поля по алфавиту.
func formatFieldErrors(fieldErrors map[string][]string) string {
	if len(fieldErrors) == 0 {
		return ""
	}
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, fmt.Sprintf("  %s: %s", field, strings.Join(fieldErrors[field], "; ")))
	}
	return strings.Join(lines, "\n")
}
