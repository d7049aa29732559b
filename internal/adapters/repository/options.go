package repository

// Option configures Load.
type Option func(*loader)

// WithObjectStore enables s3:// dataset paths against the given endpoint.
func WithObjectStore(cfg ObjectStoreConfig) Option {
	return func(l *loader) {
		l.objectStore = cfg
	}
}
