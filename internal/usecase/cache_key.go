package usecase

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

const (
	courseCachePattern  = "courses:*"
	courseListCacheKey  = "courses:list"
	leaderboardCacheKey = "leaderboard:top"
	resumeCheckPrefix   = "ats:"
)

func courseCacheKey(id uuid.UUID) string {
	return "courses:item:" + id.String()
}

// resumeCheckCacheKey fingerprints the detected document type, the uploaded bytes and the
// job description, so re-checking the same file against the same posting skips extraction.
func resumeCheckCacheKey(mime string, file []byte, jobDescription string) string {
	d := xxhash.New()
	_, _ = d.WriteString(mime)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(file)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(jobDescription)
	return resumeCheckPrefix + strconv.FormatUint(d.Sum64(), 16)
}
