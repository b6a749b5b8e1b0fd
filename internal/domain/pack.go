package domain

import "sync/atomic"

// ReloadablePack is an IconPack whose names can be swapped while editors
// keep classifying against it.
type ReloadablePack struct {
	cur atomic.Pointer[packSnapshot]
}

type packSnapshot struct {
	pack  *StaticIconPack
	label string
}

// NewReloadablePack wraps p. A nil p is an empty pack.
func NewReloadablePack(p *StaticIconPack, label string) *ReloadablePack {
	r := &ReloadablePack{}
	r.Swap(p, label)
	return r
}

// Swap replaces the current names and label.
func (r *ReloadablePack) Swap(p *StaticIconPack, label string) {
	if p == nil {
		p = NewStaticIconPack(nil)
	}
	r.cur.Store(&packSnapshot{pack: p, label: label})
}

func (r *ReloadablePack) Has(name string) bool { return r.cur.Load().pack.Has(name) }
func (r *ReloadablePack) Names() []string      { return r.cur.Load().pack.Names() }

// Label is the selector group heading of the pack.
func (r *ReloadablePack) Label() string { return r.cur.Load().label }
