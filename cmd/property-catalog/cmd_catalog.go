package main

import (
	"fmt"
	"property-catalog/internal/core/domain"

	"github.com/spf13/cobra"
)

func runList(cmd *cobra.Command, args []string) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	catalog := s.app.Catalog()
	catalog.SetFilter(filter)
	// Refresh отменяет отложенную перезагрузку и грузит сразу с новым фильтром
	catalog.Refresh(s.context(cmd))
	if apiErr := s.takeError(); apiErr != nil {
		return userError(apiErr)
	}

	printProperties(cmd.OutOrStdout(), s.printer, catalog.Snapshot().Properties)
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	property, err := s.app.Catalog().View(s.context(cmd), args[0])
	if err != nil {
		return userError(err)
	}
	printProperty(cmd.OutOrStdout(), s.printer, property)
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	categories, err := s.app.API().GetCategories(s.context(cmd))
	if err != nil {
		return userError(err)
	}
	printCategories(cmd.OutOrStdout(), categories)
	return nil
}

// filterFromFlags учитывает только явно заданные флаги.
func filterFromFlags(cmd *cobra.Command) (domain.PropertyFilter, error) {
	var filter domain.PropertyFilter
	flags := cmd.Flags()

	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		filter.Name = domain.Ptr(v)
	}
	if flags.Changed("address") {
		v, _ := flags.GetString("address")
		filter.Address = domain.Ptr(v)
	}
	if flags.Changed("type") {
		v, _ := flags.GetString("type")
		filter.Type = domain.Ptr(v)
	}
	if flags.Changed("price-min") {
		v, _ := flags.GetFloat64("price-min")
		filter.PriceMin = domain.Ptr(v)
	}
	if flags.Changed("price-max") {
		v, _ := flags.GetFloat64("price-max")
		filter.PriceMax = domain.Ptr(v)
	}
	if flags.Changed("active") {
		v, _ := flags.GetBool("active")
		filter.Active = domain.Ptr(v)
	}

	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		return filter, fmt.Errorf("--price-min (%v) must not exceed --price-max (%v)", *filter.PriceMin, *filter.PriceMax)
	}
	return filter, nil
}
