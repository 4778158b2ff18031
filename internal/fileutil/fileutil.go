package fileutil

import "os"

// OwnerReadWrite is the file permission mode for diff report files
// containing potentially sensitive API surface details (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// DirPerm is the permission mode for report output directories.
const DirPerm os.FileMode = 0o755
