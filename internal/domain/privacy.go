package domain

// AccessMode selects which privacy levels a read surface may return.
// Every privacy-filtered read resolves its visible levels through
// Levels() so the predicate cannot drift between call sites.
type AccessMode int

const (
	// AccessAll returns public, internal, and private rows.
	AccessAll AccessMode = iota
	// AccessInternalAndPublic hides private rows.
	AccessInternalAndPublic
	// AccessPublicOnly returns public rows only.
	AccessPublicOnly
)

// Levels returns the privacy levels visible under the mode, most open
// first. Unknown modes degrade to public-only.
func (m AccessMode) Levels() []PrivacyLevel {
	switch m {
	case AccessAll:
		return []PrivacyLevel{PrivacyPublic, PrivacyInternal, PrivacyPrivate}
	case AccessInternalAndPublic:
		return []PrivacyLevel{PrivacyPublic, PrivacyInternal}
	default:
		return []PrivacyLevel{PrivacyPublic}
	}
}

// Allows reports whether rows at the given privacy level are visible
// under the mode.
func (m AccessMode) Allows(level PrivacyLevel) bool {
	for _, l := range m.Levels() {
		if l == level {
			return true
		}
	}
	return false
}

// AccessModeFor maps the include flags of a read surface to a mode.
// includePrivate implies internal visibility.
func AccessModeFor(includeInternal, includePrivate bool) AccessMode {
	switch {
	case includePrivate:
		return AccessAll
	case includeInternal:
		return AccessInternalAndPublic
	default:
		return AccessPublicOnly
	}
}
