package config

import "strings"

// Compressed audio container extensions that get re-encoded to WAV before
// the models see them.
var compressedExts = map[string]bool{
	".m4a":  true,
	".mp3":  true,
	".aac":  true,
	".ogg":  true,
	".opus": true,
	".flac": true,
	".wma":  true,
}

// IsCompressedExtension returns true if the file extension indicates a
// compressed audio container.
func IsCompressedExtension(ext string) bool {
	return compressedExts[strings.ToLower(ext)]
}
