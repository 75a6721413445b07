// Package paths resolves the directories savekeep reads and writes.
//
// Everything savekeep persists lives under a base directory:
//
//	<base>/
//	├── config.json            profiles and the active profile
//	└── backups/
//	    └── {profile}/
//	        ├── backup_sets.json
//	        └── {stem}_{YYMMDD_HHMMSS}{.ext}...
//
// The base directory defaults to the directory of the running executable
// ([DefaultBaseDir]) and falls back to the XDG data home when the
// executable path is unavailable. The optional settings.yaml is searched
// in the working directory and in [SettingsDir].
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance.
package paths
