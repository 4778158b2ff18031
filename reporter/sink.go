package reporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oasdelta/deltaerrors"
	"github.com/erraggy/oasdelta/internal/fileutil"
)

// FileName returns the report artifact name for a repository and date,
// in the form {repoName}-{date}-open-api-diff.md.
func FileName(repoName, date string) string {
	return fmt.Sprintf("%s-%s-open-api-diff.md", repoName, date)
}

// Save writes a rendered report under dir using the artifact naming
// scheme and returns the full path written. The directory is created if
// missing. On failure a *deltaerrors.RenderError is returned; the
// rendered text is still in the caller's hands, so writing it elsewhere
// remains possible.
func (r *Reporter) Save(dir, repoName, date, content string) (string, error) {
	if err := os.MkdirAll(dir, fileutil.DirPerm); err != nil {
		return "", &deltaerrors.RenderError{
			Path:    dir,
			Message: "failed to create output directory",
			Cause:   err,
		}
	}

	path := filepath.Join(dir, FileName(repoName, date))
	if err := os.WriteFile(path, []byte(content), fileutil.OwnerReadWrite); err != nil {
		return "", &deltaerrors.RenderError{
			Path:    path,
			Message: "failed to write report",
			Cause:   err,
		}
	}

	r.log().Info("report written", "path", path, "bytes", len(content))
	return path, nil
}
