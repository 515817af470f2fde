package config

import (
	"fmt"

	"github.com/teslashibe/go-folio/pkg/animator"
	"github.com/teslashibe/go-folio/pkg/rig"
)

// NewAnimator builds the character named by a rig and an animator preset.
func NewAnimator(rigName, preset string) (*animator.Animator, error) {
	r, err := rig.Preset(rigName)
	if err != nil {
		return nil, &Error{Field: "rig", Value: rigName, Reason: err.Error()}
	}
	cfg, ok := animator.ConfigPreset(preset)
	if !ok {
		return nil, &Error{Field: "preset", Value: preset, Reason: "want default, calm or lively"}
	}
	anim, err := animator.New(cfg, r)
	if err != nil {
		return nil, fmt.Errorf("animator: %w", err)
	}
	return anim, nil
}

// Animator builds the character this configuration names.
func (c *Config) Animator() (*animator.Animator, error) {
	return NewAnimator(c.Rig, c.Preset)
}
