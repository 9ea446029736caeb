package domain

// Address is a postal address.
type Address struct {
	Street  string `json:"street" bson:"street"`
	ZipCode string `json:"zipCode" bson:"zipCode"`
	City    string `json:"city" bson:"city"`
}

// Customer is unique by last name.
type Customer struct {
	Document   `bson:",inline"`
	Name       string  `json:"name" bson:"name"`
	FirstName  string  `json:"firstName" bson:"firstName"`
	Email      string  `json:"email,omitempty" bson:"email,omitempty"`
	Address    Address `json:"address" bson:"address"`
	Newsletter bool    `json:"newsletter" bson:"newsletter"`
}

func (c *Customer) UniqueKey() string { return c.Name }
