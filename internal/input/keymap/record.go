package keymap

// Record is one binding as written in a configuration source:
//
//	key: "ctrl+k ctrl+c"
//	command: ToggleComment
//	when: [editor-focused]
//	platform: linux
//
// Records are validated and merged by Load.
type Record struct {
	Key      string   `yaml:"key" toml:"key" json:"key"`
	Command  string   `yaml:"command" toml:"command" json:"command"`
	When     []string `yaml:"when,omitempty" toml:"when,omitempty" json:"when,omitempty"`
	Platform string   `yaml:"platform,omitempty" toml:"platform,omitempty" json:"platform,omitempty"`
}

// IsUnbind reports whether the record removes a default binding.
func (r Record) IsUnbind() bool {
	return CommandID(r.Command) == Unbound
}
