package notifycenter

import "strings"

// Separator joins a prefix and a notification name.
const Separator = "."

// PrefixedCenter qualifies every notification name with a fixed prefix and
// delegates to its parent center. It owns no registrations.
type PrefixedCenter struct {
	parent Center
	prefix string
}

var _ Center = (*PrefixedCenter)(nil)

// NewPrefixed wraps parent so that name becomes prefix + "." + name.
// Leading and trailing separators are stripped from prefix, so ".com.example."
// and "com.example" behave the same.
func NewPrefixed(parent Center, prefix string) *PrefixedCenter {
	return &PrefixedCenter{
		parent: parent,
		prefix: strings.Trim(prefix, Separator),
	}
}

// Prefix returns the normalized prefix.
func (p *PrefixedCenter) Prefix() string { return p.prefix }

// Name returns the fully qualified form of name.
func (p *PrefixedCenter) Name(name string) string {
	return p.prefix + Separator + name
}

func (p *PrefixedCenter) Observe(name string, queue Queue, handler Handler) (*Token, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return p.parent.Observe(p.Name(name), queue, handler)
}

func (p *PrefixedCenter) AddObserver(target any, name string, handler Handler) error {
	if isNil(target) {
		return nil
	}
	if name == "" {
		return ErrEmptyName
	}
	return p.parent.AddObserver(target, p.Name(name), handler)
}

func (p *PrefixedCenter) RemoveObserver(target any) {
	p.parent.RemoveObserver(target)
}

func (p *PrefixedCenter) RemoveObserverForName(target any, name string) {
	if name == "" {
		p.parent.RemoveObserverForName(target, "")
		return
	}
	p.parent.RemoveObserverForName(target, p.Name(name))
}

func (p *PrefixedCenter) Post(name string) {
	if name == "" {
		return
	}
	p.parent.Post(p.Name(name))
}

func (p *PrefixedCenter) PostNotification(n Notification) {
	p.Post(n.Name)
}
