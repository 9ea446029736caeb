package domain

const (
	ArticleKindClothing = "CLOTHING"
	ArticleKindDigital  = "DIGITAL"

	TagHot    = "HOT"
	TagNotHot = "NOT_HOT"
)

// FanArticle is merchandise, unique by title.
type FanArticle struct {
	Document     `bson:",inline"`
	Title        string   `json:"title" bson:"title"`
	Kind         string   `json:"kind" bson:"kind"`
	Rating       *int     `json:"rating,omitempty" bson:"rating,omitempty"`
	Manufacturer string   `json:"manufacturer" bson:"manufacturer"`
	Price        float64  `json:"price" bson:"price"`
	Available    bool     `json:"available" bson:"available"`
	Email        string   `json:"email,omitempty" bson:"email,omitempty"`
	Keywords     []string `json:"keywords,omitempty" bson:"keywords,omitempty"`
}

func (a *FanArticle) UniqueKey() string { return a.Title }
