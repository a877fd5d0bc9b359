package scheduling

// NormalizeTeams assigns engine-local identities to the input teams. When
// shuffle is set, the input order is permuted with the generator first, so
// that IDs are numbered after the shuffle. The same (entries, seed, shuffle)
// triple always yields the same ID-to-name binding. The caller's slice is
// never touched.
func NormalizeTeams(entries []TeamEntry, gen *Generator, shuffle bool) []Team {
	working := make([]TeamEntry, len(entries))
	copy(working, entries)

	if shuffle {
		gen.Shuffle(len(working), func(i, j int) {
			working[i], working[j] = working[j], working[i]
		})
	}

	teams := make([]Team, len(working))
	for i, e := range working {
		teams[i] = Team{
			ID:       i + 1,
			Name:     e.Name,
			PoolHint: e.PoolHint,
		}
	}
	return teams
}
