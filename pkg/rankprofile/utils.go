/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package rankprofile

import (
	"fmt"

	"golang.org/x/exp/slices"
)

func (k RankSettingKind) String() string {
	if k < RankSettingKind_count {
		return rankSettingKindNames[k]
	}
	return fmt.Sprintf("RankSettingKind(%d)", k)
}

func (s RankSetting) String() string {
	return fmt.Sprintf("%s(%s): %v", s.Kind, s.Field, s.Value)
}

func containsSetting(settings []RankSetting, field string, kind RankSettingKind) bool {
	return slices.IndexFunc(settings, func(s RankSetting) bool {
		return s.Field == field && s.Kind == kind
	}) >= 0
}

// Returns a followed by items of b missed in a, without duplicates
func union(a, b []string) []string {
	res := make([]string, 0, len(a)+len(b))
	for _, s := range append(slices.Clone(a), b...) {
		if !slices.Contains(res, s) {
			res = append(res, s)
		}
	}
	return res
}

// Returns knob of the nearest profile in inheritance chain which sets it
func resolveKnob[T any](p *RankProfile, get func(*RankProfile) *T, def T) T {
	for q := p; q != nil; q = q.inherited() {
		if v := get(q); v != nil {
			return *v
		}
	}
	return def
}
