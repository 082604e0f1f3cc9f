package commands

import (
	"errors"
	"fmt"
	"os"

	"pet_discovery/internal/models"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML layout accepted by import.
type seedFile struct {
	Companies []models.Company `yaml:"companies"`
}

func importCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file.yml]",
		Short: "Insert or update companies from a YAML file in one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			companies, err := readSeed(args[0])
			if err != nil {
				return err
			}
			if err := a.companies.UpsertAll(cmd.Context(), companies); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d companies into %s\n", len(companies), a.dbPath)
			return nil
		},
	}
}

// readSeed parses and validates a seed file. Nothing is imported when any entry is invalid.
func readSeed(path string) ([]models.Company, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var errs []error
	seen := make(map[int]bool, len(f.Companies))
	for i, c := range f.Companies {
		switch {
		case c.ID < 1:
			errs = append(errs, fmt.Errorf("entry %d: id must be positive", i+1))
		case seen[c.ID]:
			errs = append(errs, fmt.Errorf("entry %d: duplicate id %d", i+1, c.ID))
		case c.Name == "":
			errs = append(errs, fmt.Errorf("entry %d (id %d): name is required", i+1, c.ID))
		case !c.RepService.Known():
			errs = append(errs, fmt.Errorf("entry %d (id %d): unknown rep_service %q", i+1, c.ID, c.RepService))
		}
		seen[c.ID] = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return f.Companies, nil
}
