// Package office manages activation of the UniOffice document library.
//
// Both the DOCX paragraph reader and the DOCX writer report themselves
// unavailable until a license key has been activated.
package office

import (
	"errors"
	"fmt"
	"sync"

	"github.com/unidoc/unioffice/common/license"
)

// ErrNoLicenseKey is returned by Activate when the key is empty.
var ErrNoLicenseKey = errors.New("unioffice license key not configured")

var (
	mu        sync.RWMutex
	activated bool
)

// Activate registers a metered license key with UniOffice.
// It is safe to call more than once; the first successful activation wins.
func Activate(key string) error {
	if key == "" {
		return ErrNoLicenseKey
	}

	mu.Lock()
	defer mu.Unlock()

	if activated {
		return nil
	}
	if err := license.SetMeteredKey(key); err != nil {
		return fmt.Errorf("failed to activate unioffice license: %w", err)
	}
	activated = true
	return nil
}

// Licensed reports whether UniOffice has been activated in this process.
func Licensed() bool {
	mu.RLock()
	defer mu.RUnlock()
	return activated
}
