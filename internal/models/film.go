// Package models contains data structures for the application's domain models.
package models

// MaxDescriptionLength is the longest accepted film description, in characters.
const MaxDescriptionLength = 200

// Film is a catalogue entry that users can like.
type Film struct {
	ID          int64  `json:"id" yaml:"-"`
	Name        string `json:"name" yaml:"name" validate:"notblank"`
	Description string `json:"description" yaml:"description" validate:"max=200"`
	ReleaseDate Date   `json:"releaseDate" yaml:"releaseDate" validate:"required,cinema_era"`
	Duration    int    `json:"duration" yaml:"duration" validate:"gt=0"`
	Likes       IDSet  `json:"likes" yaml:"-" validate:"-"`
}

// LikeCount is the number of distinct users who liked the film.
func (f *Film) LikeCount() int {
	return len(f.Likes)
}

// Clone returns a deep copy so callers never share the like set.
func (f *Film) Clone() *Film {
	out := *f
	out.Likes = f.Likes.Clone()
	return &out
}
