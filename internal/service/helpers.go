package service

import (
	"github.com/alexanderramin/mosaic/internal/domain"
)

// apply copies a provided update value over the current one. A nil
// source means the caller left the field untouched.
func apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// applyPtr repoints an optional field at a provided value, keeping the
// current pointer when the caller left it untouched.
func applyPtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// applyTags normalizes and stores a provided tag set. A nil set means
// unchanged; an empty non-nil set clears the tags.
func applyTags(dst *[]string, src []string) {
	if src != nil {
		*dst = domain.NormalizeTags(src)
	}
}

// resolvePrivacy picks the caller's privacy level or falls back to the
// profile default.
func resolvePrivacy(p *domain.PrivacyLevel, fallback domain.PrivacyLevel) domain.PrivacyLevel {
	if p != nil {
		return *p
	}
	return fallback
}

// dedupeIDs drops repeated ids, keeping first-seen order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
