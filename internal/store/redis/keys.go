package redis

const (
	// KeyPrefixConfig is the prefix for published configurations
	KeyPrefixConfig = "docnav:config:"
	// KeyAllConfigs is the set of published configuration ids
	KeyAllConfigs = "docnav:configs:all"

	fingerprintSuffix = ":fingerprint"
)

// ConfigKey returns the key holding the normalized configuration JSON.
func ConfigKey(id string) string {
	return KeyPrefixConfig + id
}

// FingerprintKey returns the key holding the payload fingerprint of a configuration.
func FingerprintKey(id string) string {
	return KeyPrefixConfig + id + fingerprintSuffix
}

// AllConfigsKey returns the key for the set of all configuration ids
func AllConfigsKey() string {
	return KeyAllConfigs
}
