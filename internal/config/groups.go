package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type groupsFile struct {
	Groups map[string]string `yaml:"groups"`
}

// LoadGroups reads the lead-route to MailerLite group ID mapping, e.g.:
//
//	groups:
//	  giveaway.k8s: "123456789"
//	  giveaway.tf-explained: "987654321"
//
// A missing file is not an error: submissions for unmapped routes simply
// sync without a group.
func LoadGroups(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("open groups file: %w", err)
	}
	defer f.Close()

	var parsed groupsFile
	if err := yaml.NewDecoder(f).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse groups file %s: %w", path, err)
	}

	if parsed.Groups == nil {
		parsed.Groups = map[string]string{}
	}
	return parsed.Groups, nil
}
