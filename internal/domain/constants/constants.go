// Package constants holds provider and driver identifiers selected through configuration.
package constants

const (
	// PubSubProviderLocal pushes events to a local HTTP endpoint in Pub/Sub push format.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

const (
	StorageDriverMongo  = "mongo"
	StorageDriverMemory = "memory"
)

const (
	MediaProviderImageKit = "imagekit"
	MediaProviderBlob     = "blob"
)

// EnvProduction is the env value that switches cookies to Secure and SameSite=None.
const EnvProduction = "production"
