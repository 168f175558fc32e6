package intf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// describe returns a one-line description of a playlist item. Local files
// carrying metadata tags are described by them; everything else by the
// input specification itself.
func describe(spec string) string {
	info, err := os.Stat(spec)
	if err != nil || info.IsDir() {
		return spec
	}
	file, err := os.Open(spec)
	if err != nil {
		return spec
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return filepath.Base(spec)
	}
	title := strings.TrimSpace(metadata.Title())
	if title == "" {
		title = filepath.Base(spec)
	}
	if artist := strings.TrimSpace(metadata.Artist()); artist != "" {
		title = artist + " - " + title
	}
	return fmt.Sprintf("%s [%s]", title, metadata.FileType())
}
