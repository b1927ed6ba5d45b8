package profile

import "sort"

// Directory is an immutable snapshot of all profiles for one request, built
// from a bulk fetch. Besides the id lookup it carries an explicit handle
// index so mention resolution does not depend on map iteration order:
// candidates for each handle are ordered by profile creation time, oldest
// first, so the first-created profile wins a handle collision.
type Directory struct {
	byID     map[string]Profile
	byHandle map[string][]string
	ids      []string
}

func NewDirectory(profiles []Profile) *Directory {
	sorted := append([]Profile(nil), profiles...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	d := &Directory{
		byID:     make(map[string]Profile, len(sorted)),
		byHandle: make(map[string][]string, len(sorted)),
		ids:      make([]string, 0, len(sorted)),
	}
	for _, p := range sorted {
		if _, ok := d.byID[p.ID]; ok {
			continue
		}
		d.byID[p.ID] = p
		d.ids = append(d.ids, p.ID)

		handle := p.Handle()
		if handle == "" {
			continue
		}
		d.byHandle[handle] = append(d.byHandle[handle], p.ID)
	}

	return d
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.ids)
}

func (d *Directory) Get(id string) (Profile, bool) {
	if d == nil {
		return Profile{}, false
	}
	p, ok := d.byID[id]
	return p, ok
}

// All returns the directory's profiles in creation order.
func (d *Directory) All() []Profile {
	if d == nil {
		return nil
	}
	out := make([]Profile, 0, len(d.ids))
	for _, id := range d.ids {
		out = append(out, d.byID[id])
	}
	return out
}

// ResolveHandle returns the id of the first-created profile whose handle
// matches, skipping excludeID. The second return reports whether any
// candidate matched.
func (d *Directory) ResolveHandle(handle, excludeID string) (string, bool) {
	if d == nil || handle == "" {
		return "", false
	}
	for _, id := range d.byHandle[handle] {
		if id == excludeID {
			continue
		}
		return id, true
	}
	return "", false
}
