package download

// Package download implements the sequential download job built on top of
// yt-dlp (via github.com/lrstanley/go-ytdlp). It owns the job lifecycle, the
// cooperative pause/cancel control, the shared speed sample and its poller,
// and pushes structured status updates to a StatusSink.
