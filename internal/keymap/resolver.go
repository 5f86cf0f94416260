package keymap

import "strings"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings []Binding
	byKey    map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys (for help/documentation)
}

// NewResolver creates a resolver from bindings. When a key appears twice,
// the first binding wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: bindings,
		byKey:    make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			if _, taken := r.byKey[key]; taken {
				continue
			}
			r.byKey[key] = b.Action
			r.byAction[b.Action] = append(r.byAction[b.Action], key)
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.byKey[key]
}

// KeysFor returns the keys bound to an action (for help/documentation).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// HelpEntry is one line of the help view.
type HelpEntry struct {
	Keys        string
	Description string
}

// Help lists bindings in declaration order with their keys joined for
// display. The space key is shown as "space".
func (r *Resolver) Help() []HelpEntry {
	entries := make([]HelpEntry, 0, len(r.bindings))
	seen := make(map[Action]bool)
	for _, b := range r.bindings {
		if seen[b.Action] {
			continue
		}
		seen[b.Action] = true
		keys := dedupe(displayKeys(r.byAction[b.Action]))
		if len(keys) == 0 {
			continue
		}
		entries = append(entries, HelpEntry{
			Keys:        strings.Join(keys, "/"),
			Description: b.Description,
		})
	}
	return entries
}

func displayKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return out
}

// dedupe removes duplicate strings from a slice.
func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
