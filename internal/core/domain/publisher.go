package domain

// Publisher is unique by name.
type Publisher struct {
	Document `bson:",inline"`
	Name     string `json:"name" bson:"name"`
	City     string `json:"city,omitempty" bson:"city,omitempty"`
	Founded  int    `json:"founded,omitempty" bson:"founded,omitempty"`
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
	Homepage string `json:"homepage,omitempty" bson:"homepage,omitempty"`
}

func (p *Publisher) UniqueKey() string { return p.Name }
