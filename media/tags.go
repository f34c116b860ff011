package media

import (
	"fmt"

	"github.com/bogem/id3v2"
)

// WriteTags stamps artist and title onto an mp3 so players show the real
// track name instead of the uuid file name.
func WriteTags(path, artist, title string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("id3 open error: %w", err)
	}
	defer tag.Close()

	tag.SetVersion(3)
	tag.SetArtist(artist)
	tag.SetTitle(title)

	return tag.Save()
}
