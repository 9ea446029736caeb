package domain

import "time"

const (
	BookKindKindle = "KINDLE"
	BookKindPrint  = "PRINT"

	TagJavaScript = "JAVASCRIPT"
	TagTypeScript = "TYPESCRIPT"
)

// Author is a person credited on a book.
type Author struct {
	LastName  string `json:"lastName" bson:"lastName"`
	FirstName string `json:"firstName" bson:"firstName"`
}

// Book is unique by title.
type Book struct {
	Document  `bson:",inline"`
	Title     string     `json:"title" bson:"title"`
	Kind      string     `json:"kind,omitempty" bson:"kind,omitempty"`
	Rating    *int       `json:"rating,omitempty" bson:"rating,omitempty"`
	Publisher string     `json:"publisher" bson:"publisher"`
	Date      *time.Time `json:"date,omitempty" bson:"date,omitempty"`
	Price     float64    `json:"price" bson:"price"`
	Discount  float64    `json:"discount,omitempty" bson:"discount,omitempty"`
	Available bool       `json:"available" bson:"available"`
	ISBN      string     `json:"isbn,omitempty" bson:"isbn,omitempty"`
	Homepage  string     `json:"homepage,omitempty" bson:"homepage,omitempty"`
	Email     string     `json:"email,omitempty" bson:"email,omitempty"`
	Keywords  []string   `json:"keywords,omitempty" bson:"keywords,omitempty"`
	Authors   []Author   `json:"authors,omitempty" bson:"authors,omitempty"`
}

func (b *Book) UniqueKey() string { return b.Title }
