package pacbucket

// FindUpdates compares the AUR version of each tracked package against the
// version already stored in the repository. A package is an update when no
// version is stored at all or when the AUR version orders newer. Tracked
// packages absent from aurVersions are skipped; the caller decides whether a
// missing AUR entry is worth warning about.
func FindUpdates(tracked []string, aurVersions, storedVersions map[string]string) []Update {
	var updates []Update

	for _, name := range tracked {
		aurVer, ok := aurVersions[name]
		if !ok {
			continue
		}

		storedVer, ok := storedVersions[name]
		if !ok {
			updates = append(updates, Update{Name: name, AURVersion: aurVer})
			continue
		}

		if CompareVersions(aurVer, storedVer) > 0 {
			updates = append(updates, Update{Name: name, AURVersion: aurVer, StoredVersion: storedVer})
		}
	}

	return updates
}
