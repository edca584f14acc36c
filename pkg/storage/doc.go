// Package storage manages the output directory tree.
//
// The output root is wiped and recreated only through the explicit
// ResetOutputRoot call. Images land in one subdirectory per query and are
// written through a temporary file that is renamed into place, reporting
// progress per chunk.
//
//	manager := storage.NewManager("./images")
//	if err := manager.ResetOutputRoot(); err != nil {
//	    return err
//	}
//	path, err := manager.Save(body, "cats", "0_20240101_120000.jpg", onProgress)
package storage
