package domain

import "time"

const (
	MediumDVD    = "DVD"
	MediumBluRay = "Blu-Ray"
)

// Film is unique by title.
type Film struct {
	Document    `bson:",inline"`
	Title       string     `json:"title" bson:"title"`
	Rating      *int       `json:"rating,omitempty" bson:"rating,omitempty"`
	Genre       string     `json:"genre,omitempty" bson:"genre,omitempty"`
	Length      int        `json:"length,omitempty" bson:"length,omitempty"`
	Language    string     `json:"language,omitempty" bson:"language,omitempty"`
	Medium      string     `json:"medium" bson:"medium"`
	Price       float64    `json:"price" bson:"price"`
	Rented      bool       `json:"rented" bson:"rented"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty" bson:"releaseDate,omitempty"`
	Actors      []string   `json:"actors,omitempty" bson:"actors,omitempty"`
}

func (f *Film) UniqueKey() string { return f.Title }
