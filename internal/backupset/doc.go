// Package backupset maintains the backup set metadata of a backup folder.
//
// Every backup folder holds a single backup_sets.json document keyed by set
// id:
//
//	{
//	  "250401_152655": {
//	    "id": "250401_152655",
//	    "date": "2025-04-01 15:26:55",
//	    "description": "Before the boss fight",
//	    "files": ["save_250401_152655.sav", "meta_250401_152655.dat"]
//	  }
//	}
//
// The document is rewritten in full on every change (read, modify, atomic
// write). It is sized for tens to low hundreds of sets and a single writer.
package backupset
