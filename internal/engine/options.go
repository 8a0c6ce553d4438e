package engine

// DefaultSite is the replica number used when WithSite is not given.
const DefaultSite = 1

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSite sets the replica number the engine mints command IDs with.
func WithSite(site uint64) Option {
	return func(e *Engine) {
		e.siteNum = site
	}
}

// WithContent seeds the engine with initial local content. The seeding
// insert is a normal command batch; retrieve it with SeedCommands to ship
// to replicas that should share the content.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithReadOnly creates an engine that rejects local edits. Remote batches
// still integrate.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
