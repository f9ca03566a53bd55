//go:build !legacyecc

package platform

// LegacyECCEnabled reports whether the legacy ECC signer is built in.
// Build with -tags legacyecc to enable it.
const LegacyECCEnabled = false
