package state

// UploadStatus tracks whether an upload request is outstanding.
type UploadStatus int

const (
	UploadIdle UploadStatus = iota
	UploadInFlight
)

// UploadJob is the single in-flight multi-file upload.
type UploadJob struct {
	Status UploadStatus
	Names  []string
	Bytes  int64
}

// Start marks the job in flight. It refuses an empty file set and a second
// upload while one is outstanding.
func (u *UploadJob) Start(names []string, bytes int64) bool {
	if len(names) == 0 || u.Status == UploadInFlight {
		return false
	}
	u.Status = UploadInFlight
	u.Names = append([]string(nil), names...)
	u.Bytes = bytes
	return true
}

// Finish returns the job to idle and reports whether the catalog should be
// refreshed.
func (u *UploadJob) Finish(err error) bool {
	if u.Status != UploadInFlight {
		return false
	}
	u.Status = UploadIdle
	u.Names = nil
	u.Bytes = 0
	return err == nil
}

// InFlight reports whether the upload affordance is busy.
func (u *UploadJob) InFlight() bool {
	return u.Status == UploadInFlight
}
