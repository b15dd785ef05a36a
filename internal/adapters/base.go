package adapters

import (
	"voxport/internal/history"
)

// BaseAdapter provides common functionality for provider adapters
type BaseAdapter struct {
	platformName string
}

// NewBaseAdapter creates a new BaseAdapter
func NewBaseAdapter(platformName string) BaseAdapter {
	return BaseAdapter{
		platformName: platformName,
	}
}

// CheckCredential ensures a key was supplied before making API calls
func (b *BaseAdapter) CheckCredential(cred history.Credential) error {
	if cred.Empty() {
		return ErrMissingCredential
	}
	return nil
}

// PlatformName returns the name of the platform
func (b *BaseAdapter) PlatformName() string {
	return b.platformName
}
