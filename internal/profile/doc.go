// Package profile manages savekeep profiles and the active-profile selection.
//
// A profile names one game: the folder its save files live in and a backup
// folder derived from the profile name, <base>/backups/<name>. The backup
// folder is never stored; it is computed and created on first access.
//
// All profiles are kept in one JSON document, config.json, in the base
// directory:
//
//	{
//	  "active_profile": "Elden Ring",
//	  "profiles": {
//	    "Elden Ring": {"save_folder": "/home/me/saves/er"}
//	  }
//	}
//
// A [ConfigStore] loads the document once and rewrites it in full after
// every mutation. An absent or malformed document loads as an empty
// configuration with a warning; it is never fatal. Mutations are guarded
// by a mutex so the store can be shared between the CLI and the watch
// poller.
package profile
