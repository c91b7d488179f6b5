package ui

import "github.com/refbonus-admin/pkg/api"

// retainSelection keeps prev when it still appears in ids, otherwise falls
// back to the first id (0 when the list is empty). Used to repopulate every
// "pick a referrer" control after a referrer refresh.
func retainSelection(ids []int64, prev int64) int64 {
	for _, id := range ids {
		if id == prev {
			return prev
		}
	}
	if len(ids) > 0 {
		return ids[0]
	}
	return 0
}

func referrerIDs(refs []api.Referrer) []int64 {
	ids := make([]int64, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}

// seedCPM yields the default value for the CPM-edit field: the selected
// referrer's current base rate, else the first referrer's.
func seedCPM(refs []api.Referrer, selected int64) float64 {
	for _, r := range refs {
		if r.ID == selected {
			return r.BaseCPM
		}
	}
	if len(refs) > 0 {
		return refs[0].BaseCPM
	}
	return 0
}
