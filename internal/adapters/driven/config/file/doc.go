// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based settings storage
//   - CredentialsStore: INI-based Pileus credentials (config.ini)
//   - Watcher: reloads both files when they change on disk
package file
