package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	LanguageEnglish    = "en"
	LanguageVietnamese = "vi"
)

// Audio upload constants for pronunciation recordings.
const (
	MimeAudio       = "audio/"
	MimeOctetStream = "application/octet-stream"
)

var AllowedAudioExtensions = []string{".wav", ".mp3", ".ogg", ".webm", ".m4a"}
