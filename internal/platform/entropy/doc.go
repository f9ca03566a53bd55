// Package entropy provides the deterministic random bit generator the
// device's crypto subsystem draws from, the entropy sources that seed it,
// and the locked bridge that exposes it to the legacy ECC signer.
//
// Bridge and LegacySlot compile in every build. Only the legacyecc build
// tag decides whether the platform installs them.
//
// A DRBG refuses to produce output until every registered source has
// contributed at least its threshold of bytes:
//
//	drbg := entropy.NewDRBG()
//	if err := drbg.AddEntropySource(entropy.PlatformSource, entropy.DefaultThreshold); err != nil {
//	    return err
//	}
//	key := make([]byte, 32)
//	if err := drbg.GetBytes(key); err != nil {
//	    return err
//	}
package entropy
