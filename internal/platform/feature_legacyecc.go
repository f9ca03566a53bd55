//go:build legacyecc

package platform

// LegacyECCEnabled reports whether the legacy ECC signer is built in.
const LegacyECCEnabled = true
