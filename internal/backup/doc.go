// Package backup runs savekeep's backup and restore operations.
//
// A backup copies a profile's save files into its backup folder. Every
// copy in one operation carries the same timestamp token in its name:
//
//	save.sav      -> save_250401_152655.sav
//	options.ini   -> options_250401_152655.ini
//
// and the copies are recorded together as one backup set in the folder's
// backup_sets.json (see package backupset):
//
//	<base>/backups/
//	└── {profile}/
//	    ├── backup_sets.json
//	    ├── save_250401_152655.sav
//	    └── options_250401_152655.ini
//
// # Creating Backups
//
// Use [Manager.Backup]. Files that fail to copy are reported, not fatal:
//
//	mgr := backup.NewManager(backup.WithLogger(logger))
//	report, err := mgr.Backup(ctx, backup.BackupRequest{
//	    BackupFolder: folder,
//	    SaveFolder:   p.SaveFolder,
//	    Files:        []string{"save.sav", "options.ini"},
//	    Description:  "before the final boss",
//	})
//	if err != nil {
//	    return err // the set could not be recorded
//	}
//	if report.Err() != nil {
//	    // some files were not copied
//	}
//
// # Restoring Backups
//
// Use [Manager.Restore] to copy a set back under the original names,
// optionally limited to some of its files:
//
//	report, err := mgr.Restore(ctx, backup.RestoreRequest{
//	    BackupFolder: folder,
//	    SaveFolder:   p.SaveFolder,
//	    SetID:        "250401_152655",
//	    Only:         []string{"save.sav"},
//	})
//
// # Concurrency
//
// A Manager runs one operation at a time. Each operation logs under a
// fresh operation id ("op") so interleaved logs from several processes can
// be told apart. There is no cross-process locking.
package backup
