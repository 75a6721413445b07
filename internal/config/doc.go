// Package config provides application settings for the savekeep CLI.
//
// Settings tune how savekeep runs. They are separate from the profile
// document (config.json beside the executable), which records profiles and
// the active profile and is owned by package profile.
//
// # Settings File
//
// settings.yaml is searched in $SAVEKEEP_CONFIG_DIR, the working directory,
// and ~/.config/savekeep (the XDG config home). Every key is optional:
//
//	base_dir: ~/Games/savekeep   # default: the executable's directory
//	poll_interval: 2s            # watch re-list interval
//	log_level: info              # overrides -v/-q when set
//	prune_keep: 10               # default for backup prune --keep
//
// Each key can be overridden from the environment with the SAVEKEEP_ prefix,
// e.g. SAVEKEEP_POLL_INTERVAL=5s.
//
// # Loading
//
//	config.Init()
//	s, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	base := s.ResolvedBaseDir()
//
// Load validates the result; [Validate] can also be called directly.
package config
