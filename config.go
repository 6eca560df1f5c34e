package webmd

// TableMode selects how HTML tables are serialized.
type TableMode string

// TableMode constants for Config.
const (
	// TableFlatten emits each cell on its own line with a blank line
	// between rows.
	TableFlatten TableMode = "flatten"

	// TableGrid emits a GitHub-flavored pipe table.
	TableGrid TableMode = "grid"
)

// Config controls Markdown output. A Config is a plain value passed into
// every conversion; nothing in the pipeline keeps a shared copy, so
// concurrent conversions with different settings do not interfere.
type Config struct {
	// EmDelimiter wraps emphasized text: "_" or "*".
	EmDelimiter string

	// StrongDelimiter wraps strong text: "**" or "__".
	StrongDelimiter string

	// BulletMarker starts every list item: "*", "-" or "+".
	BulletMarker string

	// Fence opens and closes code blocks: "```" or "~~~".
	Fence string

	// Tables selects the table serialization mode.
	Tables TableMode

	// NumberOrderedLists renders <ol> items as "1.", "2.", ... instead of
	// the bullet marker.
	NumberOrderedLists bool
}

// DefaultConfig returns the configuration used when the caller has no
// preference.
func DefaultConfig() Config {
	return Config{
		EmDelimiter:     "_",
		StrongDelimiter: "**",
		BulletMarker:    "*",
		Fence:           "```",
		Tables:          TableFlatten,
	}
}

// WithDefaults returns a copy of c with every empty field taken from
// DefaultConfig. A zero Config becomes the default configuration.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.EmDelimiter == "" {
		c.EmDelimiter = d.EmDelimiter
	}
	if c.StrongDelimiter == "" {
		c.StrongDelimiter = d.StrongDelimiter
	}
	if c.BulletMarker == "" {
		c.BulletMarker = d.BulletMarker
	}
	if c.Fence == "" {
		c.Fence = d.Fence
	}
	if c.Tables == "" {
		c.Tables = d.Tables
	}
	return c
}

// Validate returns an error if the configuration contains invalid fields.
func (c Config) Validate() error {
	switch c.EmDelimiter {
	case "_", "*":
	default:
		return Errorf(EINVALID, "emphasis delimiter must be _ or *, got %q", c.EmDelimiter)
	}
	switch c.StrongDelimiter {
	case "**", "__":
	default:
		return Errorf(EINVALID, "strong delimiter must be ** or __, got %q", c.StrongDelimiter)
	}
	switch c.BulletMarker {
	case "*", "-", "+":
	default:
		return Errorf(EINVALID, "bullet marker must be *, - or +, got %q", c.BulletMarker)
	}
	switch c.Fence {
	case "```", "~~~":
	default:
		return Errorf(EINVALID, "code fence must be ``` or ~~~, got %q", c.Fence)
	}
	switch c.Tables {
	case TableFlatten, TableGrid:
	default:
		return Errorf(EINVALID, "table mode must be %q or %q, got %q", TableFlatten, TableGrid, c.Tables)
	}
	return nil
}
