package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, revealing folders, playlist listing and yt-dlp setup.
