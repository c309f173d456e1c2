package driven

// ScriptStore saves setup scripts returned by onboarding calls.
type ScriptStore interface {
	// Save writes the script into the "<name>_<id>" folder and returns the file path.
	Save(folder, script string) (string, error)
}

// FolderOpener opens a folder in the platform file browser.
type FolderOpener interface {
	Open(path string) error
}
