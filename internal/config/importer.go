package config

// ImportConfig controls the CSV inbox importer. An empty Dir disables it.
type ImportConfig struct {
	Dir      string
	Interval Duration
}

// Enabled reports whether an inbox directory is configured.
func (c ImportConfig) Enabled() bool {
	return c.Dir != ""
}

func loadImport() ImportConfig {
	return ImportConfig{
		Dir:      envOrDefault(envImportDir, ""),
		Interval: durationEnvOrDefault(envImportInterval, defaultImportInterval),
	}
}
