package tracklist

// Package tracklist reads ordered lists of track names from spreadsheets and
// plain text files, and imports them from online playlists.
