package migrate

import "fmt"

// Slot says which side of a migration a credential belongs to.
type Slot string

const (
	CurrentSlot Slot = "current"
	NewSlot     Slot = "new"
)

// Credentials are an API key plus the documentation version it should operate on.
type Credentials struct {
	Slot    Slot
	APIKey  string
	Version string
}

// Config is resolved once at startup and never changes during a run.
type Config struct {
	// Root of the REST API; empty means ReadMe's hosted API.
	APIURL string

	Current Credentials
	New     Credentials

	// Perform every read, skip every write.
	DryRun bool

	// Maximum mappings in flight at once; zero or less means no limit.
	Workers int
}

// ApplyDefaults fills the new-side credentials from the current side where unset, so that
// migrating within one project only needs one key.
func (c *Config) ApplyDefaults() {
	c.Current.Slot = CurrentSlot
	c.New.Slot = NewSlot
	if c.New.APIKey == "" {
		c.New.APIKey = c.Current.APIKey
	}
	if c.New.Version == "" {
		c.New.Version = c.Current.Version
	}
}

func (c *Config) Validate() error {
	if c.Current.APIKey == "" {
		return fmt.Errorf("migrate: no API key configured, use --current-api-key or CURRENT_README_API_KEY")
	}
	if c.New.APIKey == "" {
		return fmt.Errorf("migrate: no API key configured for the new project, use --new-api-key or NEW_README_API_KEY")
	}
	return nil
}

// SameProject reports whether both sides use one API key, and therefore one project.
func (c *Config) SameProject() bool {
	return c.Current.APIKey == c.New.APIKey
}
