package pacbucket

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PackageList is the on-disk format of the tracked-package file:
//
//	packages:
//	  - localsend-bin
//	  - visual-studio-code-bin
type PackageList struct {
	Packages []string `yaml:"packages"`
}

// LoadPackageList reads the tracked AUR package names from a YAML file.
func LoadPackageList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read package list: %w", err)
	}

	var list PackageList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse package list %s: %w", path, err)
	}

	return list.Packages, nil
}
