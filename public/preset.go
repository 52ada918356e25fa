package public

const (
	FileLockName = "flock"
)
