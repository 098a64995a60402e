package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/smiley-shop/smiley/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// ProfileAuthState customer auth snapshot.
// token_invalid_before is a Unix second timestamp, 0 means unset.
// Server-side cache only; avoids re-reading the profile on every request.
type ProfileAuthState struct {
	ProfileID          uint   `json:"profile_id"`
	EmailConfirmed     bool   `json:"email_confirmed"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

func profileAuthStateKey(profileID uint) string {
	return fmt.Sprintf("auth:profile:%d", profileID)
}

// BuildProfileAuthState builds a snapshot from a profile
func BuildProfileAuthState(profile *models.Profile) *ProfileAuthState {
	if profile == nil {
		return nil
	}
	state := &ProfileAuthState{
		ProfileID:      profile.ID,
		EmailConfirmed: profile.EmailConfirmedAt != nil,
		TokenVersion:   profile.TokenVersion,
		UpdatedAt:      time.Now().Unix(),
	}
	if profile.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = profile.TokenInvalidBefore.Unix()
	}
	return state
}

// GetProfileAuthState reads a snapshot
func GetProfileAuthState(ctx context.Context, profileID uint) (*ProfileAuthState, bool, error) {
	if profileID == 0 {
		return nil, false, nil
	}
	var state ProfileAuthState
	hit, err := GetJSON(ctx, profileAuthStateKey(profileID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetProfileAuthState writes a snapshot
func SetProfileAuthState(ctx context.Context, state *ProfileAuthState) error {
	if state == nil || state.ProfileID == 0 {
		return nil
	}
	return SetJSON(ctx, profileAuthStateKey(state.ProfileID), state, authStateCacheTTL)
}

// DelProfileAuthState drops a snapshot
func DelProfileAuthState(ctx context.Context, profileID uint) error {
	if profileID == 0 {
		return nil
	}
	return Del(ctx, profileAuthStateKey(profileID))
}
