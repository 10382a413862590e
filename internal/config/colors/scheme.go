package colors

// ColorScheme defines all configurable color values of the CLI output
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "kanagawa")
	Preset string `yaml:"preset"`

	// Primary accent color (used for card borders, field names, headers)
	Accent string `yaml:"accent"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/secondary text
	Normal string `yaml:"normal"`

	// Annotation state
	Completed   string `yaml:"completed"`
	Overlapping string `yaml:"overlapping"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "kanagawa":
		return Kanagawa()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	c.MergeMissing(preset)
}

// MergeMissing copies every color of from into c that c leaves empty
func (c *ColorScheme) MergeMissing(from *ColorScheme) {
	for _, f := range c.fields(from) {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
}

// MergeFrom overrides c with every color from sets
func (c *ColorScheme) MergeFrom(from ColorScheme) {
	if from.Preset != "" {
		c.Preset = from.Preset
	}
	for _, f := range c.fields(&from) {
		if f.src != "" {
			*f.dst = f.src
		}
	}
}

type colorField struct {
	dst *string
	src string
}

func (c *ColorScheme) fields(from *ColorScheme) []colorField {
	return []colorField{
		{&c.Accent, from.Accent},
		{&c.Title, from.Title},
		{&c.Subtle, from.Subtle},
		{&c.Normal, from.Normal},
		{&c.Completed, from.Completed},
		{&c.Overlapping, from.Overlapping},
		{&c.InfoFg, from.InfoFg},
		{&c.InfoBg, from.InfoBg},
		{&c.WarningFg, from.WarningFg},
		{&c.WarningBg, from.WarningBg},
		{&c.ErrorFg, from.ErrorFg},
		{&c.ErrorBg, from.ErrorBg},
	}
}
