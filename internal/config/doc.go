// Package config loads keychord's engine settings.
//
// Settings are read with viper from an optional file (YAML, TOML or JSON),
// layered over Defaults and under KEYCHORD_-prefixed environment
// variables:
//
//	chord_timeout: 1500ms
//	chord_policy: wait
//	platform: macos
//	user_keymap: ~/.config/keychord/keymap.yaml
//	watch: true
//	cancel_keys: [escape]
//
// Keymap files themselves are parsed by the loader subpackage and watched
// for changes by the watcher subpackage.
package config
