// Package normalize converts raw external draft picks into the internal
// pick representation.
package normalize

import (
	"github.com/commishtools/draftgrade/internal/domain/model"
)

// DefaultLeagueSize is assumed when the draft source does not report a
// team count.
const DefaultLeagueSize = 12

// Resolver maps an external platform user id to a league member handle.
// The second return is false when no member has linked that account.
type Resolver func(externalUserID string) (string, bool)

// Pick normalizes one raw pick. The returned bool is false when the picking
// user has no member mapping; such picks are expected and silently dropped.
func Pick(raw model.RawPick, leagueSize int, resolve Resolver) (model.NormalizedPick, bool) {
	if leagueSize <= 0 {
		leagueSize = DefaultLeagueSize
	}
	user, ok := resolve(raw.ExternalUser)
	if !ok {
		return model.NormalizedPick{}, false
	}
	return model.NormalizedPick{
		Round:          raw.Round,
		PickInRound:    raw.PickInRound,
		Overall:        model.OverallPick(raw.Round, raw.PickInRound, leagueSize),
		ExternalPlayer: raw.ExternalPlayer,
		ExternalUser:   raw.ExternalUser,
		User:           user,
		PlayerName:     playerName(raw.Metadata),
		ADP:            raw.ADP,
		HasADP:         raw.HasADP,
	}, true
}

func playerName(meta map[string]string) string {
	first, last := "Unknown", "Player"
	if meta != nil {
		if v, ok := meta["first_name"]; ok && v != "" {
			first = v
		}
		if v, ok := meta["last_name"]; ok && v != "" {
			last = v
		}
	}
	return first + " " + last
}
