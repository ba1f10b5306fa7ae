package config

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

const profileItem = "tuning"

// ItemStore is the key/value storage a Profile writes to. *gdata.Manager
// satisfies it.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// Profile persists the last applied tuning between runs.
type Profile struct {
	store ItemStore
}

// OpenProfile opens the per-user data directory for appName.
func OpenProfile(appName string) (*Profile, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open profile %s: %w", appName, err)
	}
	return NewProfile(m), nil
}

func NewProfile(store ItemStore) *Profile {
	return &Profile{store: store}
}

// Load returns the saved tuning, or nil when nothing was saved yet.
func (p *Profile) Load() (*Tuning, error) {
	data, err := p.store.LoadItem(profileItem)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if data == nil {
		// No saved tuning yet, use defaults
		return nil, nil
	}

	t, err := ParseTuning(data)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if err := t.Validate(); err != nil {
		log.Printf("[tuning] Ignoring saved profile: %v", err)
		return nil, nil
	}
	return &t, nil
}

// Save stores t as the profile tuning.
func (p *Profile) Save(t Tuning) error {
	data, err := t.Marshal()
	if err != nil {
		return err
	}
	if err := p.store.SaveItem(profileItem, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
