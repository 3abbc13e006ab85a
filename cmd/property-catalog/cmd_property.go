package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"property-catalog/internal/core/domain"

	"github.com/spf13/cobra"
)

func runCreate(cmd *cobra.Command, args []string) error {
	input := inputFromFlags(cmd)

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	created, err := s.app.Catalog().Create(s.context(cmd), input)
	if err != nil {
		return userError(err)
	}
	printProperty(cmd.OutOrStdout(), s.printer, created)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	patch := patchFromFlags(cmd)
	if patch.IsEmpty() {
		return errors.New("nothing to update: set at least one field flag")
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	updated, err := s.app.Catalog().Update(s.context(cmd), args[0], patch)
	if err != nil {
		return userError(err)
	}
	printProperty(cmd.OutOrStdout(), s.printer, updated)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.app.Catalog().Delete(s.context(cmd), args[0]); err != nil {
		return userError(err)
	}
	return nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open image: %w", err)
	}
	defer file.Close()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	uploaded, err := s.app.Catalog().UploadImage(s.context(cmd), filepath.Base(path), file)
	if err != nil {
		return userError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), uploaded.ImageURL)
	return nil
}

func inputFromFlags(cmd *cobra.Command) domain.PropertyInput {
	flags := cmd.Flags()
	var input domain.PropertyInput
	input.Name, _ = flags.GetString("name")
	input.Description, _ = flags.GetString("description")
	input.AddressProperty, _ = flags.GetString("address")
	input.Type, _ = flags.GetString("type")
	input.PriceProperty, _ = flags.GetFloat64("price")
	input.ImageURL, _ = flags.GetString("image-url")
	input.Active, _ = flags.GetBool("active")
	input.IDOwner, _ = flags.GetString("owner")
	return input
}

// patchFromFlags - в патч попадают только явно заданные флаги.
func patchFromFlags(cmd *cobra.Command) domain.PropertyPatch {
	flags := cmd.Flags()
	var patch domain.PropertyPatch

	stringField := func(flag string, dst **string) {
		if flags.Changed(flag) {
			v, _ := flags.GetString(flag)
			*dst = domain.Ptr(v)
		}
	}
	stringField("name", &patch.Name)
	stringField("description", &patch.Description)
	stringField("address", &patch.AddressProperty)
	stringField("type", &patch.Type)
	stringField("image-url", &patch.ImageURL)
	stringField("owner", &patch.IDOwner)

	if flags.Changed("price") {
		v, _ := flags.GetFloat64("price")
		patch.PriceProperty = domain.Ptr(v)
	}
	if flags.Changed("active") {
		v, _ := flags.GetBool("active")
		patch.Active = domain.Ptr(v)
	}
	return patch
}
