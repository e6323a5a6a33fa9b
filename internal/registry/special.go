// Package registry classifies registration IDs that are exempt from the
// one-check-in-per-day constraint.
package registry

import (
	"strconv"
	"strings"
)

// defaultEntries maps the human-readable special codes to their numeric
// registration IDs. Scanning hardware may submit either form.
var defaultEntries = map[string]int64{
	"FB001-80017860": 80017860,
	"FB002-80027860": 80027860,
	"FB003-80037860": 80037860,
	"FB004-80047860": 80047860,
	"FB005-80057860": 80057860,
	"FB006-80067860": 80067860,
	"FB007-80077860": 80077860,
	"FB008-80087860": 80087860,
	"FB009-80097860": 80097860,
	"FB010-80107860": 80107860,
	"FB011-80117860": 80117860,
	"FB012-80127860": 80127860,
	"FB013-80137860": 80137860,
	"FB014-80147860": 80147860,
	"FB015-80157860": 80157860,
	"FB016-80167860": 80167860,
	"FB017-80177860": 80177860,
	"FB018-80187860": 80187860,
	"FB019-80197860": 80197860,
	"FB020-80207860": 80207860,
	"FB021-80217860": 80217860,
	"FB022-80227860": 80227860,
	"FB023-80237860": 80237860,
	"FB024-80247860": 80247860,
	"FB025-80257860": 80257860,
	"FB026-80267860": 80267860,
	"FB027-80277860": 80277860,
	"FB028-80287860": 80287860,
	"FB029-80297860": 80297860,
	"FB030-80307860": 80307860,
	"FB031-80317860": 80317860,
	"FB032-80327860": 80327860,
	"FB033-80337860": 80337860,
	"FB034-80347860": 80347860,
}

// Registry is an immutable bidirectional code↔id lookup table.
type Registry struct {
	byCode map[string]int64
	byID   map[int64]string
}

// New builds a registry from explicit entries. Pass nil to get the built-in
// table.
func New(entries map[string]int64) *Registry {
	if len(entries) == 0 {
		entries = defaultEntries
	}
	r := &Registry{
		byCode: make(map[string]int64, len(entries)),
		byID:   make(map[int64]string, len(entries)),
	}
	for code, id := range entries {
		r.byCode[code] = id
		r.byID[id] = code
	}
	return r
}

// Default returns a registry over the built-in table.
func Default() *Registry {
	return New(nil)
}

// IsSpecial reports whether the registration ID belongs to the special list.
// Exact code match is tried first so unrelated IDs that share digits after
// stripping cannot produce a false positive on the fast path.
func (r *Registry) IsSpecial(registrationID string) bool {
	if _, ok := r.byCode[registrationID]; ok {
		return true
	}
	id, ok := numericPart(registrationID)
	if !ok {
		return false
	}
	_, ok = r.byID[id]
	return ok
}

// CodeFor returns the canonical special code for a registration ID.
func (r *Registry) CodeFor(registrationID string) (string, bool) {
	if _, ok := r.byCode[registrationID]; ok {
		return registrationID, true
	}
	id, ok := numericPart(registrationID)
	if !ok {
		return "", false
	}
	code, ok := r.byID[id]
	return code, ok
}

// numericPart strips all non-digit characters and parses what remains.
func numericPart(s string) (int64, bool) {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
