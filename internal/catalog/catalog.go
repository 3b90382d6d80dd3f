// Package catalog defines the fixed set of ambient sounds soundfetch knows
// how to fetch.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// DriveFolderID is the shared cloud-storage folder holding the source files.
const DriveFolderID = "1otf8TUyzd7VUNnyobl49pds6QMwG3k_k"

// Extension is the file extension of every catalog sound.
const Extension = ".mp3"

// Sound is one entry of the catalog.
type Sound struct {
	// Name is the logical sound name, e.g. "rain".
	Name string
	// FileName is the expected file name inside the sounds directory.
	FileName string
	// DriveID is the external file identifier. Empty means unset.
	DriveID string
	// Fallbacks are public URLs tried after the configured sources.
	Fallbacks []string
}

// HasDriveID reports whether an external identifier is configured.
func (s Sound) HasDriveID() bool {
	return s.DriveID != ""
}

// UnknownSoundError is returned when a name is not part of the catalog.
type UnknownSoundError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownSoundError) Error() string {
	return fmt.Sprintf("unknown sound %q", e.Name)
}

// Catalog is an ordered list of sounds.
type Catalog struct {
	sounds []Sound
}

func fallbacks(pixabayDate, pixabayName, soundjayName string) []string {
	return []string{
		"https://cdn.pixabay.com/download/audio/" + pixabayDate + "/audio_bb630cc098.mp3?filename=" + pixabayName + "-116927.mp3",
		"https://www.soundjay.com/misc/sounds/" + soundjayName + "-01.mp3",
	}
}

func sound(name string, fb []string) Sound {
	return Sound{Name: name, FileName: name + Extension, Fallbacks: fb}
}

// Default returns the built-in catalog. No external identifiers are set.
func Default() *Catalog {
	return New([]Sound{
		sound("rain", fallbacks("2022/03/10", "rain-and-thunder-ambient", "rain")),
		sound("ocean", fallbacks("2021/08/09", "ocean-waves-ambient", "ocean-waves")),
		sound("forest", fallbacks("2021/08/09", "forest-ambient", "forest")),
		sound("river", fallbacks("2021/08/09", "river-stream-ambient", "river")),
		sound("birds", fallbacks("2021/08/09", "birds-chirping-ambient", "birds")),
		sound("wind", fallbacks("2021/08/09", "wind-ambient", "wind")),
		sound("fireplace", fallbacks("2021/08/09", "fireplace-crackling-ambient", "fireplace")),
		sound("meditation", fallbacks("2021/08/09", "meditation-ambient", "meditation")),
		sound("piano", fallbacks("2021/08/09", "piano-ambient", "piano")),
		sound("ambient", fallbacks("2021/08/09", "ambient-music", "ambient")),
	})
}

// New builds a catalog from sounds, keeping their order.
func New(sounds []Sound) *Catalog {
	cp := make([]Sound, len(sounds))
	copy(cp, sounds)
	return &Catalog{sounds: cp}
}

// Sounds returns a copy of the catalog entries in order.
func (c *Catalog) Sounds() []Sound {
	out := make([]Sound, len(c.sounds))
	copy(out, c.sounds)
	return out
}

// Len returns the number of sounds.
func (c *Catalog) Len() int {
	return len(c.sounds)
}

// Names returns the logical names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.sounds))
	for i, s := range c.sounds {
		names[i] = s.Name
	}
	return names
}

// FileNames returns the expected file names in catalog order.
func (c *Catalog) FileNames() []string {
	names := make([]string, len(c.sounds))
	for i, s := range c.sounds {
		names[i] = s.FileName
	}
	return names
}

// Lookup finds a sound by logical name.
func (c *Catalog) Lookup(name string) (Sound, bool) {
	for _, s := range c.sounds {
		if s.Name == name {
			return s, true
		}
	}
	return Sound{}, false
}

// LookupFile finds a sound by its file name.
func (c *Catalog) LookupFile(fileName string) (Sound, bool) {
	for _, s := range c.sounds {
		if s.FileName == fileName {
			return s, true
		}
	}
	return Sound{}, false
}

// WithDriveIDs returns a copy of the catalog with external identifiers
// overlaid from ids, keyed by logical name. Blank values leave the entry
// unset. Unknown names are an error.
func (c *Catalog) WithDriveIDs(ids map[string]string) (*Catalog, error) {
	out := New(c.sounds)

	keys := make([]string, 0, len(ids))
	for k := range ids {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range keys {
		idx := -1
		for i, s := range out.sounds {
			if s.Name == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, &UnknownSoundError{Name: name}
		}
		out.sounds[idx].DriveID = strings.TrimSpace(ids[name])
	}
	return out, nil
}
